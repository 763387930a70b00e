// Package level implements storage.Store on top of an embedded LevelDB
// database.
//
// goleveldb handles concurrent callers on its own, but every engine call is
// still made under a single mutex so that reads and writes of a slug are
// totally ordered by lock acquisition. The lock is held only for the engine
// call itself.
package level

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/MikhailRaia/shortlink/internal/storage"
)

// DefaultPath is the database directory, relative to the working directory.
const DefaultPath = "./db"

// Storage is a LevelDB-backed storage.Store.
type Storage struct {
	path string
	db   *leveldb.DB
	mu   sync.Mutex
}

// Open opens the database rooted at path, creating it if absent.
func Open(path string) (*Storage, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}

	return &Storage{
		path: path,
		db:   db,
	}, nil
}

// Put writes value under slug with the engine's default write options.
func (s *Storage) Put(ctx context.Context, slug string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	err := s.db.Put([]byte(slug), value, nil)
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to put %q: %w", slug, translate(err))
	}
	return nil
}

// Get returns the value stored under slug or storage.ErrNotFound.
func (s *Storage) Get(ctx context.Context, slug string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	value, err := s.db.Get([]byte(slug), nil)
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %q: %w", slug, translate(err))
	}
	return value, nil
}

// Ping reports whether the database is open and readable.
func (s *Storage) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	_, err := s.db.GetProperty("leveldb.stats")
	s.mu.Unlock()

	return translate(err)
}

// Close releases the database. Calls after the first return storage.ErrClosed.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return translate(s.db.Close())
}

// Path returns the directory the database lives in.
func (s *Storage) Path() string {
	return s.path
}

func translate(err error) error {
	if errors.Is(err, leveldb.ErrClosed) {
		return storage.ErrClosed
	}
	return err
}
