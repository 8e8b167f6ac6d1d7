// Package permissions models the per-module capability grants the auth API
// returns for a session.
//
// A Set is keyed by stable module ids (module, or module/submodule), with
// display names carried as data on the Capability record. Sets are built
// whole from a single API payload and replace the previous set atomically —
// there is no partial merge path.
package permissions
