package tokenstore

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	boltBucket = []byte("authkit")
	boltKey    = []byte("session_token")
)

// Bolt implements Store on top of a bbolt database. Useful when the host
// application already keeps its local state in bbolt and wants the session
// token to live in the same file.
type Bolt struct {
	db       *bbolt.DB
	ownsFile bool
}

// NewBolt wraps an already-open bbolt database. Closing the database is the
// caller's responsibility.
func NewBolt(db *bbolt.DB) *Bolt {
	return &Bolt{db: db}
}

// NewBoltFromFile opens (or creates) a bbolt database at path and returns a
// store backed by it. Close releases the database.
func NewBoltFromFile(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: opening bbolt db: %w", ErrUnavailable, err)
	}
	return &Bolt{db: db, ownsFile: true}, nil
}

// Close closes the underlying database if this store opened it.
func (b *Bolt) Close() error {
	if !b.ownsFile {
		return nil
	}
	return b.db.Close()
}

// Save persists the token under the fixed bucket/key.
func (b *Bolt) Save(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return err
		}
		return bucket.Put(boltKey, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Load returns the persisted token, or ErrNoToken when absent.
func (b *Bolt) Load(ctx context.Context) (string, error) {
	var token string
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if bucket == nil {
			return nil
		}
		token = string(bucket.Get(boltKey))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Clear removes the persisted token.
func (b *Bolt) Clear(ctx context.Context) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if bucket == nil {
			return nil
		}
		return bucket.Delete(boltKey)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}
