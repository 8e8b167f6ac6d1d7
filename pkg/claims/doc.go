// Package claims decodes session tokens issued by the auth API into a typed
// claims object, without verifying signatures.
//
// The client deliberately does not verify token signatures: the server
// re-verifies the token on every request, and the client has no business
// holding verification keys. What the client does need is the identity
// payload and the embedded expiry, so it can render the signed-in user and
// drop stale tokens before they hit the wire.
//
// Decoding never panics on malformed input; it returns ErrMalformedToken.
// A token without an expiry claim is treated as already expired — the auth
// API always stamps one, so its absence means the token is not one of ours.
package claims
