// Package authclient is the HTTP client for the auth API and the outbound
// request authenticator in front of it.
//
// Every request the client issues passes through a BearerTransport, which
// attaches the current bearer credential and stamps an X-Request-ID. The
// credential itself lives in a Credential holder that only the session
// manager writes; the client and transport treat it as read-only.
//
// When the server answers 401 on a request that carried the live credential,
// the transport invokes the registered unauthorized hook. The session layer
// uses that hook to force a logout; the hook is invoked per failing request,
// and the session layer collapses concurrent reports into one transition.
//
// Bearer-only endpoints (logout, refresh, permissions) short-circuit with
// ErrNotAuthenticated when no credential is installed, so a request with a
// missing Authorization header is never put on the wire.
package authclient
