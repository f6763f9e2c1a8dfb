// Package config loads the library configuration and builds the infrastructure it describes:
// the slog logger, the Redis client for the redis persister, and the PostgreSQL connections
// (pgx.Pool, sql.DB, sqlx.DB) for the postgres journal.
//
// This package is part of the shell (infrastructure) layer.
package config
