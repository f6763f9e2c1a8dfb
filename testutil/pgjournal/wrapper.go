// Package pgjournal connects tests to a real PostgreSQL journal.
//
// The database comes from LIBRARY_TEST_DATABASE_URL; tests are skipped when it is not set.
// ADAPTER_TYPE selects the driver: pgx.pool (default), sql.db or sqlx.db.
package pgjournal

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/smart-library-go/journal/postgresjournal"
	"github.com/AntonStoeckl/smart-library-go/library/shell/config"
)

const (
	DSNEnv     = "LIBRARY_TEST_DATABASE_URL"
	AdapterEnv = "ADAPTER_TYPE"
	TableName  = "circulation_journal_test"

	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

// Wrapper holds a journal on a fresh, empty test table.
type Wrapper struct {
	journal postgresjournal.Journal
	exec    func(ctx context.Context, statement string) error
}

// Journal returns the wrapped journal.
func (w *Wrapper) Journal() postgresjournal.Journal {
	return w.journal
}

// CleanUp empties the test table and resets its sequence.
func (w *Wrapper) CleanUp(t testing.TB) {
	t.Helper()

	statement := "TRUNCATE TABLE " + pgx.Identifier{TableName}.Sanitize() + " RESTART IDENTITY"
	require.NoError(t, w.exec(context.Background(), statement), "error cleaning up the journal table")
}

// NewWrapper connects with the driver selected by ADAPTER_TYPE, creates the test table if needed
// and empties it. The connection is closed when the test finishes.
func NewWrapper(t testing.TB) *Wrapper {
	t.Helper()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", DSNEnv)
	}

	ctx := context.Background()
	options := []postgresjournal.Option{postgresjournal.WithTableName(TableName)}
	w := &Wrapper{}

	switch adapterType := strings.ToLower(os.Getenv(AdapterEnv)); adapterType {
	case typePGXPool, "":
		pool, err := config.NewPostgresPGXPool(ctx, dsn)
		require.NoError(t, err, "error connecting to DB pool in test setup")
		t.Cleanup(pool.Close)

		w.journal, err = postgresjournal.NewJournalFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating journal")
		w.exec = func(ctx context.Context, statement string) error {
			_, err := pool.Exec(ctx, statement)
			return err
		}

	case typeSQLDB:
		db, err := config.NewPostgresSQLDB(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")
		t.Cleanup(func() { _ = db.Close() })

		w.journal, err = postgresjournal.NewJournalFromSQLDB(db, options...)
		require.NoError(t, err, "error creating journal")
		w.exec = func(ctx context.Context, statement string) error {
			_, err := db.ExecContext(ctx, statement)
			return err
		}

	case typeSQLXDB:
		db, err := config.NewPostgresSQLX(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")
		t.Cleanup(func() { _ = db.Close() })

		w.journal, err = postgresjournal.NewJournalFromSQLX(db, options...)
		require.NoError(t, err, "error creating journal")
		w.exec = func(ctx context.Context, statement string) error {
			_, err := db.ExecContext(ctx, statement)
			return err
		}

	default:
		t.Fatalf("unsupported adapter type from env: %s", adapterType)
	}

	require.NoError(t, w.journal.CreateTable(ctx), "error creating the journal table")
	w.CleanUp(t)

	return w
}
