package claims

import "errors"

var (
	// ErrMalformedToken indicates the token could not be decoded
	ErrMalformedToken = errors.New("claims: malformed token")

	// ErrExpiredToken indicates the token decoded fine but is past its expiry
	ErrExpiredToken = errors.New("claims: token is expired")
)
