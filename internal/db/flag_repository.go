package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/aispawner/internal/flags"
)

// FlagRepository stores worker flags in the worker_flags table.
// Implements flags.Source.
type FlagRepository struct {
	pool *pgxpool.Pool
}

// NewFlagRepository creates a new flag repository
func NewFlagRepository(pool *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{pool: pool}
}

// LoadAll loads all worker flags
func (r *FlagRepository) LoadAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name, value FROM worker_flags`)
	if err != nil {
		return nil, fmt.Errorf("loading worker flags: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning worker flag row: %w", err)
		}
		values[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating worker flag rows: %w", err)
	}

	return values, nil
}

// Get loads a single flag. Returns flags.ErrNotFound if it is not set.
func (r *FlagRepository) Get(ctx context.Context, name string) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM worker_flags WHERE name = $1`, name).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("worker flag %q: %w", name, flags.ErrNotFound)
		}
		return "", fmt.Errorf("loading worker flag %q: %w", name, err)
	}
	return value, nil
}

// Set creates or updates a flag
func (r *FlagRepository) Set(ctx context.Context, name, value string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO worker_flags (name, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, name, value)
	if err != nil {
		return fmt.Errorf("setting worker flag %q: %w", name, err)
	}
	return nil
}

// Delete removes a flag. Returns flags.ErrNotFound if it was not set.
func (r *FlagRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM worker_flags WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting worker flag %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("worker flag %q: %w", name, flags.ErrNotFound)
	}
	return nil
}
