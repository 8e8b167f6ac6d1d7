package tokenstore

import "errors"

var (
	// ErrNoToken indicates the store holds no persisted token
	ErrNoToken = errors.New("tokenstore: no token stored")

	// ErrEmptyToken indicates Save was called with an empty string
	ErrEmptyToken = errors.New("tokenstore: empty token")

	// ErrUnavailable indicates the backing medium could not be reached
	ErrUnavailable = errors.New("tokenstore: storage unavailable")
)
