package postgresjournal

import (
	"math"
	"time"
)

const (
	logMsgBuildQueryFailed  = "failed to build sql"
	logMsgDBQueryFailed     = "database query execution failed"
	logMsgDBExecFailed      = "database execution failed"
	logMsgCloseRowsFailed   = "failed to close database rows"
	logMsgScanRowFailed     = "failed to scan database row"
	logMsgBuildEntryFailed  = "failed to build journal entry from database row"
	logMsgRowsAffectedWrong = "unexpected rows affected count"
	logMsgQueryCompleted    = "journal query completed"
	logMsgEntriesAppended   = "journal entries appended"
	logMsgTableCreated      = "journal table ensured"
	logMsgSQLExecuted       = "executed sql for: "
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrTable            = "table"
	logAttrEntryType        = "entry_type"
	logAttrEntryCount       = "entry_count"
	logAttrRowsAffected     = "rows_affected"
	logAttrDurationMS       = "duration_ms"
	logActionQuery          = "query"
	logActionAppend         = "append"
	logActionCreateTable    = "create table"
)

func (j Journal) logSQL(sqlQuery string, action string, duration time.Duration) {
	if j.logger != nil {
		j.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (j Journal) logInfo(msg string, args ...any) {
	if j.logger != nil {
		j.logger.Info(msg, args...)
	}
}

func (j Journal) logWarn(msg string, err error) {
	if j.logger != nil {
		j.logger.Warn(msg, logAttrError, err.Error())
	}
}

func (j Journal) logError(msg string, err error, args ...any) {
	if j.logger != nil {
		j.logger.Error(msg, append([]any{logAttrError, err.Error()}, args...)...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
