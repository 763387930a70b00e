package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/MikhailRaia/shortlink/internal/storage"
)

// Storage implements storage.Store in a PostgreSQL table. Concurrency is left
// to the connection pool and the database.
type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	if dsn == "" {
		return nil, errors.New("database connection string is empty")
	}

	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{
		pool: pool,
	}

	if err := s.createTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) createTable(ctx context.Context) error {
	createTableQuery := `
		CREATE TABLE IF NOT EXISTS records (
			slug TEXT PRIMARY KEY,
			value BYTEA NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`

	if _, err := s.pool.Exec(ctx, createTableQuery); err != nil {
		return fmt.Errorf("failed to create records table: %w", err)
	}
	return nil
}

func (s *Storage) Put(ctx context.Context, slug string, value []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO records (slug, value) VALUES ($1, $2)
		 ON CONFLICT (slug) DO UPDATE SET value = EXCLUDED.value`,
		slug, value)
	if err != nil {
		return fmt.Errorf("error inserting record into database: %w", err)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, slug string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, "SELECT value FROM records WHERE slug = $1", slug).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("error querying database: %w", err)
	}

	return value, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
