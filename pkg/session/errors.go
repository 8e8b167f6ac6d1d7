package session

import "errors"

var (
	// ErrNotAuthenticated indicates a token-dependent operation was called
	// on a signed-out session. No request was issued.
	ErrNotAuthenticated = errors.New("session: not authenticated")

	// ErrLoginInFlight indicates a second login attempt while one is pending
	ErrLoginInFlight = errors.New("session: login already in progress")

	// ErrRefreshInFlight indicates a second refresh while one is pending
	ErrRefreshInFlight = errors.New("session: refresh already in progress")

	// ErrSessionExpired indicates the server rejected a previously valid
	// token mid-session and the client was force-logged-out.
	ErrSessionExpired = errors.New("session: session expired")

	// ErrNoClient indicates the manager was built without an API client
	ErrNoClient = errors.New("session: no API client configured")
)
