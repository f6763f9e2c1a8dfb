package journal

import (
	"context"
	"errors"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigFastest

// MemoryJournal keeps entries in process memory. It is safe for concurrent use.
// The entries are lost when the process ends, which makes it a fit for tests and for sessions without a database.
type MemoryJournal struct {
	mu      sync.RWMutex
	entries Entries
}

var _ Journal = (*MemoryJournal)(nil)

// NewMemoryJournal creates an empty MemoryJournal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{entries: make(Entries, 0)}
}

// Append assigns consecutive sequence numbers and stores the entries.
func (j *MemoryJournal) Append(ctx context.Context, entry Entry, additionalEntries ...Entry) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrAppendingEntryFailed, err)
	}

	all := append(Entries{entry}, additionalEntries...)

	for _, e := range all {
		if !jsoniter.Valid(e.PayloadJSON) {
			return errors.Join(ErrAppendingEntryFailed, ErrInvalidPayloadJSON)
		}

		if !jsoniter.Valid(e.MetadataJSON) {
			return errors.Join(ErrAppendingEntryFailed, ErrInvalidMetadataJSON)
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	for _, e := range all {
		next := SequenceNumberUint(len(j.entries) + 1)
		j.entries = append(j.entries, e.withSequenceNumber(next))
	}

	return nil
}

// Query returns copies of all matching entries in sequence order.
func (j *MemoryJournal) Query(ctx context.Context, filter Filter) (Entries, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrQueryingEntriesFailed, err)
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	matching := make(Entries, 0)
	for _, entry := range j.entries {
		if filter.Matches(entry) {
			matching = append(matching, entry)
		}
	}

	return slices.Clip(matching), nil
}

// Len returns the number of stored entries.
func (j *MemoryJournal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.entries)
}

// Matches reports whether the entry is selected by the Filter.
// Predicates compare top-level string fields of the payload; a payload that is not a JSON object matches no predicate.
func (f Filter) Matches(entry Entry) bool {
	if entry.SequenceNumber < f.fromSequenceNumber {
		return false
	}

	if len(f.items) == 0 {
		return true
	}

	var payload map[string]any
	payloadDecoded := false

	for _, item := range f.items {
		if len(item.entryTypes) > 0 && !slices.Contains(item.entryTypes, entry.EntryType) {
			continue
		}

		if len(item.predicates) == 0 {
			return true
		}

		if !payloadDecoded {
			payloadDecoded = true
			if err := jsonAPI.Unmarshal(entry.PayloadJSON, &payload); err != nil {
				payload = nil
			}
		}

		if item.predicatesMatch(payload) {
			return true
		}
	}

	return false
}

func (fi FilterItem) predicatesMatch(payload map[string]any) bool {
	matchesOne := func(p FilterPredicate) bool {
		val, ok := payload[p.key].(string)
		return ok && val == p.val
	}

	if fi.allPredicatesMustMatch {
		for _, p := range fi.predicates {
			if !matchesOne(p) {
				return false
			}
		}

		return true
	}

	return slices.ContainsFunc(fi.predicates, matchesOne)
}
