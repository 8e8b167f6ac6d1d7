package authclient

import "errors"

var (
	// ErrNotAuthenticated indicates a bearer-only call was attempted with no
	// credential installed. The request is never issued.
	ErrNotAuthenticated = errors.New("authclient: not authenticated")

	// ErrInvalidCredentials indicates the login payload failed client-side
	// validation before any request was made.
	ErrInvalidCredentials = errors.New("authclient: invalid credentials payload")

	// ErrEmptyToken indicates the server answered success without a token.
	ErrEmptyToken = errors.New("authclient: server returned no token")

	// ErrMissingBaseURL indicates the client was constructed without an API
	// base URL.
	ErrMissingBaseURL = errors.New("authclient: missing base URL")
)
