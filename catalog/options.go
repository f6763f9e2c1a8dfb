package catalog

// Option defines a functional option for configuring a Store.
type Option func(*Store)

// WithLogger sets the logger for the Store.
//
// Debug level: single add/remove operations
// Info level: restore summaries
// Warn level: records skipped while restoring.
func WithLogger(logger Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}
