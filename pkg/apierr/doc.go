// Package apierr normalizes the auth API's ad hoc error envelopes into one
// typed client error.
//
// The server answers failures with several shapes depending on the code
// path: a bare {message}, an {error} that is sometimes a string and
// sometimes an object, or a validation {errors: [...]} array. Decode maps
// all of them into *APIError at the transport boundary so nothing above it
// ever inspects a raw body.
//
// Transport failures (server unreachable, timeouts) are a separate category
// wrapped with ErrUnavailable: they call for a retry, not a re-login, and
// must never be conflated with a rejected credential.
package apierr
