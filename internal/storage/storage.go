package storage

import (
	"context"
	"errors"
)

var (
	// ErrLinkNotFound is returned when no object exists for the requested key.
	ErrLinkNotFound = errors.New("link not found")

	// ErrStoreUnavailable is returned when the backend cannot be reached.
	ErrStoreUnavailable = errors.New("link store unavailable")
)

// LinkStore reads the raw content stored under a lookup key.
type LinkStore interface {
	Get(ctx context.Context, key string) (string, error)
}

// LinkWriter uploads and removes links. The resolver never writes; this is
// what out of band tooling uses.
type LinkWriter interface {
	Put(ctx context.Context, key, url string) error
	Delete(ctx context.Context, key string) error
}

// Pinger reports whether the backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is a backend that supports both reads and writes.
type Store interface {
	LinkStore
	LinkWriter
}
