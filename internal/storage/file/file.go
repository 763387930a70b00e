package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MikhailRaia/shortlink/internal/storage"
)

// entry is one line of the append-only log.
type entry struct {
	Slug  string `json:"slug"`
	Value []byte `json:"value"`
}

// Storage implements storage.Store backed by an append-only JSONL file. The
// whole log is replayed into memory on open; later lines win.
type Storage struct {
	filePath string
	file     *os.File
	records  map[string][]byte
	mu       sync.Mutex
}

// NewStorage opens (or creates) the log at filePath.
func NewStorage(filePath string) (*Storage, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	s := &Storage{
		filePath: filePath,
		records:  make(map[string][]byte),
	}

	if err := s.loadFromFile(); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for writing: %w", err)
	}
	s.file = file

	return s, nil
}

func (s *Storage) loadFromFile() error {
	file, err := os.OpenFile(s.filePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var e entry
		if err := json.Unmarshal(line, &e); err != nil {
			return fmt.Errorf("failed to unmarshal entry: %w", err)
		}

		s.records[e.Slug] = e.Value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	return nil
}

// Put appends the mapping to the log, then makes it visible to Get.
func (s *Storage) Put(_ context.Context, slug string, value []byte) error {
	data, err := json.Marshal(entry{Slug: slug, Value: value})
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return storage.ErrClosed
	}

	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	s.records[slug] = append([]byte(nil), value...)
	return nil
}

func (s *Storage) Get(_ context.Context, slug string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil, storage.ErrClosed
	}

	value, found := s.records[slug]
	if !found {
		return nil, storage.ErrNotFound
	}

	return append([]byte(nil), value...), nil
}

func (s *Storage) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return storage.ErrClosed
	}
	return nil
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return storage.ErrClosed
	}

	err := s.file.Close()
	s.file = nil
	return err
}
