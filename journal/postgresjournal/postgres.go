package postgresjournal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/smart-library-go/journal"
	"github.com/AntonStoeckl/smart-library-go/journal/postgresjournal/internal/adapters"
)

const (
	defaultTableName  = "circulation_journal"
	dialectPostgres   = "postgres"
	colSequenceNumber = "sequence_number"
	colEntryType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"
	castJsonb         = "?::jsonb"
	containsJsonb     = "? @> ?::jsonb"
)

var jsonAPI = jsoniter.ConfigFastest

// Journal is a journal.Journal backed by one PostgreSQL table.
type Journal struct {
	db        adapters.DBAdapter
	tableName string
	logger    Logger
}

var _ journal.Journal = Journal{}

type queryResultRow struct {
	sequenceNumber int64
	entryType      string
	occurredAt     time.Time
	payload        []byte
	metadata       []byte
}

// NewJournalFromPGXPool creates a Journal using a pgx pool.
func NewJournalFromPGXPool(db *pgxpool.Pool, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapter(db), options...)
}

// NewJournalFromSQLDB creates a Journal using a sql.DB.
func NewJournalFromSQLDB(db *sql.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLAdapter(db), options...)
}

// NewJournalFromSQLX creates a Journal using a sqlx.DB.
func NewJournalFromSQLX(db *sqlx.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLXAdapter(db), options...)
}

func newJournal(db adapters.DBAdapter, options ...Option) (Journal, error) {
	j := Journal{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(&j); err != nil {
			return Journal{}, err
		}
	}

	return j, nil
}

// CreateTable creates the journal table and a GIN index on the payload if they do not exist.
func (j Journal) CreateTable(ctx context.Context) error {
	table := pgx.Identifier{j.tableName}.Sanitize()
	index := pgx.Identifier{j.tableName + "_payload_idx"}.Sanitize()

	statements := []string{
		fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (
	%s BIGSERIAL PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TIMESTAMPTZ NOT NULL,
	%s JSONB NOT NULL,
	%s JSONB NOT NULL
)`,
			table, colSequenceNumber, colEntryType, colOccurredAt, colPayload, colMetadata,
		),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING GIN (%s jsonb_path_ops)`, index, table, colPayload),
	}

	for _, statement := range statements {
		start := time.Now()
		_, err := j.db.Exec(ctx, statement)
		j.logSQL(statement, logActionCreateTable, time.Since(start))

		if err != nil {
			j.logError(logMsgDBExecFailed, err, logAttrQuery, statement)
			return err
		}
	}

	j.logInfo(logMsgTableCreated, logAttrTable, j.tableName)

	return nil
}

// Query returns all entries matching the filter, ordered by sequence number.
func (j Journal) Query(ctx context.Context, filter journal.Filter) (journal.Entries, error) {
	sqlQuery, err := j.buildSelectQuery(filter)
	if err != nil {
		j.logError(logMsgBuildQueryFailed, err)
		return nil, err
	}

	start := time.Now()
	rows, err := j.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	j.logSQL(sqlQuery, logActionQuery, duration)

	if err != nil {
		j.logError(logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		return nil, errors.Join(journal.ErrQueryingEntriesFailed, err)
	}
	defer j.closeRows(rows)

	entries, err := j.scanEntries(rows)
	if err != nil {
		return nil, err
	}

	j.logInfo(logMsgQueryCompleted, logAttrEntryCount, len(entries), logAttrDurationMS, toMilliseconds(duration))

	return entries, nil
}

func (j Journal) scanEntries(rows adapters.DBRows) (journal.Entries, error) {
	entries := make(journal.Entries, 0)
	row := queryResultRow{}

	for rows.Next() {
		if err := rows.Scan(&row.sequenceNumber, &row.entryType, &row.occurredAt, &row.payload, &row.metadata); err != nil {
			j.logError(logMsgScanRowFailed, err)
			return nil, errors.Join(journal.ErrScanningDBRowFailed, err)
		}

		entry, err := journal.BuildEntry(row.entryType, row.occurredAt, row.payload, row.metadata)
		if err != nil {
			j.logError(logMsgBuildEntryFailed, err, logAttrEntryType, row.entryType)
			return nil, errors.Join(journal.ErrBuildingEntryFailed, err)
		}

		entry.SequenceNumber = journal.SequenceNumberUint(row.sequenceNumber)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		j.logError(logMsgDBQueryFailed, err)
		return nil, errors.Join(journal.ErrQueryingEntriesFailed, err)
	}

	return entries, nil
}

func (j Journal) closeRows(rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		j.logWarn(logMsgCloseRowsFailed, err)
	}
}

// Append inserts all entries with one INSERT statement, so they are stored atomically.
func (j Journal) Append(ctx context.Context, entry journal.Entry, additionalEntries ...journal.Entry) error {
	allEntries := append(journal.Entries{entry}, additionalEntries...)

	sqlQuery, err := j.buildInsertQuery(allEntries)
	if err != nil {
		j.logError(logMsgBuildQueryFailed, err, logAttrEntryCount, len(allEntries))
		return err
	}

	start := time.Now()
	result, err := j.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	j.logSQL(sqlQuery, logActionAppend, duration)

	if err != nil {
		j.logError(logMsgDBExecFailed, err, logAttrQuery, sqlQuery)
		return errors.Join(journal.ErrAppendingEntryFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		j.logError(logMsgDBExecFailed, err)
		return errors.Join(journal.ErrAppendingEntryFailed, err)
	}

	if rowsAffected != int64(len(allEntries)) {
		err = fmt.Errorf("%d rows affected, expected %d", rowsAffected, len(allEntries))
		j.logError(logMsgRowsAffectedWrong, err, logAttrRowsAffected, rowsAffected)

		return errors.Join(journal.ErrAppendingEntryFailed, err)
	}

	j.logInfo(logMsgEntriesAppended, logAttrEntryCount, len(allEntries), logAttrDurationMS, toMilliseconds(duration))

	return nil
}

func (j Journal) buildSelectQuery(filter journal.Filter) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(j.tableName).
		Select(colSequenceNumber, colEntryType, colOccurredAt, colPayload, colMetadata).
		Order(goqu.I(colSequenceNumber).Asc())

	where, err := j.whereExpressions(filter)
	if err != nil {
		return "", err
	}

	if len(where) > 0 {
		selectStmt = selectStmt.Where(where...)
	}

	sqlQuery, _, err := selectStmt.ToSQL()
	if err != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (j Journal) buildInsertQuery(entries journal.Entries) (string, error) {
	rows := make([]any, 0, len(entries))

	for _, entry := range entries {
		rows = append(rows, goqu.Record{
			colEntryType:  entry.EntryType,
			colOccurredAt: entry.OccurredAt,
			colPayload:    goqu.L(castJsonb, string(entry.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(entry.MetadataJSON)),
		})
	}

	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Insert(j.tableName).
		Rows(rows...).
		ToSQL()
	if err != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// whereExpressions translates the filter. Items are ORed, within an item the types are ORed and ANDed with the predicates.
func (j Journal) whereExpressions(filter journal.Filter) ([]goqu.Expression, error) {
	where := make([]goqu.Expression, 0, 2)
	items := make([]goqu.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		itemExpressions := make([]goqu.Expression, 0, 2)

		if len(item.EntryTypes()) > 0 {
			itemExpressions = append(itemExpressions, goqu.C(colEntryType).In(item.EntryTypes()))
		}

		if len(item.Predicates()) > 0 {
			predicates := make([]goqu.Expression, 0, len(item.Predicates()))

			for _, predicate := range item.Predicates() {
				containment, err := jsonAPI.Marshal(map[string]string{predicate.Key(): predicate.Val()})
				if err != nil {
					return nil, errors.Join(journal.ErrBuildingQueryFailed, err)
				}

				predicates = append(predicates, goqu.L(containsJsonb, goqu.I(colPayload), string(containment)))
			}

			if item.AllPredicatesMustMatch() {
				itemExpressions = append(itemExpressions, goqu.And(predicates...))
			} else {
				itemExpressions = append(itemExpressions, goqu.Or(predicates...))
			}
		}

		items = append(items, goqu.And(itemExpressions...))
	}

	if len(items) > 0 {
		where = append(where, goqu.Or(items...))
	}

	if filter.FromSequenceNumber() > 0 {
		where = append(where, goqu.C(colSequenceNumber).Gte(filter.FromSequenceNumber()))
	}

	return where, nil
}
