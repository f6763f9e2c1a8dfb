package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/catalog/flatfileengine"
	"github.com/AntonStoeckl/smart-library-go/catalog/redisengine"
	"github.com/AntonStoeckl/smart-library-go/journal"
	"github.com/AntonStoeckl/smart-library-go/journal/postgresjournal"
	"github.com/AntonStoeckl/smart-library-go/library/shell/config"
)

func noop() {}

// buildPersister returns the configured catalog.Persister and a function releasing its resources.
func buildPersister(ctx context.Context, cfg config.FileConfig, logger *slog.Logger) (catalog.Persister, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		client, err := config.NewRedisClient(ctx, cfg.Storage)
		if err != nil {
			return nil, noop, err
		}

		engine, err := redisengine.NewEngine(
			client,
			redisengine.WithKeyPrefix(cfg.Storage.RedisKeyPrefix),
			redisengine.WithLogger(logger),
		)
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}

		return engine, func() { _ = client.Close() }, nil

	default:
		engine, err := flatfileengine.NewEngine(
			cfg.Storage.DataDir,
			flatfileengine.WithBooksFileName(cfg.Storage.BooksFile),
			flatfileengine.WithUsersFileName(cfg.Storage.UsersFile),
			flatfileengine.WithLogger(logger),
		)
		if err != nil {
			return nil, noop, err
		}

		return engine, noop, nil
	}
}

// buildJournal returns the configured journal, or nil when the journal is disabled.
func buildJournal(ctx context.Context, cfg config.FileConfig, logger *slog.Logger) (journal.Journal, func(), error) {
	switch cfg.Journal.Backend {
	case config.JournalMemory:
		return journal.NewMemoryJournal(), noop, nil

	case config.JournalPostgres:
		return buildPostgresJournal(ctx, cfg.Journal, logger)

	default:
		return nil, noop, nil
	}
}

func buildPostgresJournal(ctx context.Context, cfg config.JournalConfig, logger *slog.Logger) (journal.Journal, func(), error) {
	options := []postgresjournal.Option{
		postgresjournal.WithTableName(cfg.TableName),
		postgresjournal.WithLogger(logger),
	}

	var j postgresjournal.Journal
	var closeDB func()

	switch cfg.Driver {
	case config.DriverSQL:
		db, err := config.NewPostgresSQLDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		closeDB = func() { _ = db.Close() }

		j, err = postgresjournal.NewJournalFromSQLDB(db, options...)
		if err != nil {
			closeDB()
			return nil, noop, err
		}

	case config.DriverSQLX:
		db, err := config.NewPostgresSQLX(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		closeDB = func() { _ = db.Close() }

		j, err = postgresjournal.NewJournalFromSQLX(db, options...)
		if err != nil {
			closeDB()
			return nil, noop, err
		}

	default:
		pool, err := config.NewPostgresPGXPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		closeDB = pool.Close

		j, err = postgresjournal.NewJournalFromPGXPool(pool, options...)
		if err != nil {
			closeDB()
			return nil, noop, err
		}
	}

	if err := j.CreateTable(ctx); err != nil {
		closeDB()
		return nil, noop, fmt.Errorf("create journal table: %w", err)
	}

	return j, closeDB, nil
}
