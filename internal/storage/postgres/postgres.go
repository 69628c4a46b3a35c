package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/MikhailRaia/link-shortener/internal/storage"
)

// Storage keeps links in a single PostgreSQL table.
type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	if dsn == "" {
		return nil, errors.New("database connection string is empty")
	}

	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, classifyError(err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, classifyError(err)
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
		CREATE TABLE IF NOT EXISTS links (
			key TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`

	if _, err := s.pool.Exec(ctx, createTableQuery); err != nil {
		return fmt.Errorf("creating links table: %w", err)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	var url string
	err := s.pool.QueryRow(ctx, "SELECT url FROM links WHERE key = $1", key).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", storage.ErrLinkNotFound, key)
		}
		return "", classifyError(err)
	}

	return url, nil
}

func (s *Storage) Put(ctx context.Context, key, url string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO links (key, url) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET url = EXCLUDED.url
	`, key, url)
	if err != nil {
		return fmt.Errorf("upserting link %q: %w", key, classifyError(err))
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM links WHERE key = $1", key); err != nil {
		return fmt.Errorf("deleting link %q: %w", key, classifyError(err))
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return classifyError(err)
	}
	return nil
}

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// classifyError marks connectivity problems with storage.ErrStoreUnavailable
// and leaves every other error untouched.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgerrcode.IsConnectionException(pgErr.Code) || pgerrcode.IsOperatorIntervention(pgErr.Code) {
			return fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
		}
		return err
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}

	return err
}
