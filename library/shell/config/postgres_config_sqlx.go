package config

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// NewPostgresSQLX creates a configured *sqlx.DB (lib/pq) for the journal database and pings it.
func NewPostgresSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := tuneAndPing(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}
