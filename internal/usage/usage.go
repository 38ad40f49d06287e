// Package usage provides PostgreSQL-backed login analytics. Recording is
// best-effort: callers log failures and carry on, the user-facing flow never
// depends on this store being reachable.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a PostgreSQL connection pool for the users table.
type Store struct {
	pool *pgxpool.Pool
}

// UserRow is one row of the usage report.
type UserRow struct {
	Email      string    `json:"email"`
	LoginCount int64     `json:"login_count"`
	FirstSeen  time.Time `json:"first_seen"`
	LastSeen   time.Time `json:"last_seen"`
}

// Report aggregates the usage table for the stats endpoint.
type Report struct {
	TotalUsers int64     `json:"total_users"`
	Active24h  int64     `json:"active_24h"`
	Users      []UserRow `json:"users"`
}

// Connect establishes a connection pool to the database and ensures the
// users table exists.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{pool: pool}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS users (
			email       TEXT PRIMARY KEY,
			login_count BIGINT NOT NULL DEFAULT 1,
			first_seen  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_seen   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure users table: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// RecordLogin upserts a login event for the given email, incrementing the
// login count on repeat visits. Guest logins all land on the shared guest
// email.
func (s *Store) RecordLogin(ctx context.Context, email string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (email) VALUES ($1)
		 ON CONFLICT (email) DO UPDATE
		 SET login_count = users.login_count + 1, last_seen = NOW()`,
		email,
	)
	if err != nil {
		return fmt.Errorf("failed to record login for %s: %w", email, err)
	}
	return nil
}

// Stats returns the aggregated usage report, most recently seen users first.
func (s *Store) Stats(ctx context.Context) (*Report, error) {
	report := &Report{Users: []UserRow{}}

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE last_seen > NOW() - INTERVAL '24 hours')
		 FROM users`,
	).Scan(&report.TotalUsers, &report.Active24h)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate usage: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT email, login_count, first_seen, last_seen
		 FROM users ORDER BY last_seen DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row UserRow
		if err := rows.Scan(&row.Email, &row.LoginCount, &row.FirstSeen, &row.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		report.Users = append(report.Users, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return report, nil
}
