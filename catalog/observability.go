package catalog

// Logger interface for operational messages, warnings, and error reporting.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

const (
	logMsgRestoreSkippedBook = "skipped book while restoring the catalog"
	logMsgRestoreSkippedUser = "skipped user while restoring the catalog"
	logMsgRestored           = "catalog restored"
	logMsgBookAdded          = "book added"
	logMsgBookRemoved        = "book removed"
	logMsgUserAdded          = "user added"
	logMsgUserRemoved        = "user removed"
	logAttrError             = "error"
	logAttrISBN              = "isbn"
	logAttrTitle             = "title"
	logAttrUserID            = "user_id"
	logAttrBookCount         = "book_count"
	logAttrUserCount         = "user_count"
	logAttrNextUserID        = "next_user_id"
)

// logDebug logs at debug level if the logger is configured.
func (s *Store) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// logWarn logs at warn level if the logger is configured.
func (s *Store) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

// logInfo logs at info level if the logger is configured.
func (s *Store) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}
