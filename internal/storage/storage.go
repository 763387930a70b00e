package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no value is stored under the slug.
	ErrNotFound = errors.New("slug not found")
	// ErrClosed is returned by a store that has already been closed.
	ErrClosed = errors.New("store closed")
)

// Store maps slugs to opaque encoded records.
type Store interface {
	Put(ctx context.Context, slug string, value []byte) error
	Get(ctx context.Context, slug string) ([]byte, error)
	Ping(ctx context.Context) error
	Close() error
}
