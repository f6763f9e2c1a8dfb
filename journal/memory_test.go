package journal_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/smart-library-go/journal"
)

func Test_BuildEntry_RejectsInvalidJSON(t *testing.T) {
	_, err := journal.BuildEntry("X", time.Now(), []byte("{"), []byte("{}"))
	assert.ErrorIs(t, err, journal.ErrInvalidPayloadJSON)

	_, err = journal.BuildEntry("X", time.Now(), []byte("{}"), []byte("nope"))
	assert.ErrorIs(t, err, journal.ErrInvalidMetadataJSON)

	entry, err := journal.BuildEntryWithEmptyMetadata("X", time.Now(), []byte(`{"a":"b"}`))
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), entry.MetadataJSON)
}

func Test_MemoryJournal_Append_AssignsConsecutiveSequenceNumbers(t *testing.T) {
	// arrange
	j := journal.NewMemoryJournal()
	ctx := context.Background()

	// act
	require.NoError(t, j.Append(ctx, givenEntry(t, 0, "A", `{}`)))
	require.NoError(t, j.Append(ctx, givenEntry(t, 0, "B", `{}`), givenEntry(t, 0, "C", `{}`)))

	// assert
	entries, err := j.Query(ctx, journal.MatchingAll())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, entry := range entries {
		assert.Equal(t, journal.SequenceNumberUint(i+1), entry.SequenceNumber)
	}

	assert.Equal(t, []string{"A", "B", "C"}, []string{entries[0].EntryType, entries[1].EntryType, entries[2].EntryType})
}

func Test_MemoryJournal_Append_IsAllOrNothing(t *testing.T) {
	// arrange
	j := journal.NewMemoryJournal()
	broken := journal.Entry{EntryType: "B", PayloadJSON: []byte("{"), MetadataJSON: []byte("{}")}

	// act
	err := j.Append(context.Background(), givenEntry(t, 0, "A", `{}`), broken)

	// assert
	assert.ErrorIs(t, err, journal.ErrAppendingEntryFailed)
	assert.ErrorIs(t, err, journal.ErrInvalidPayloadJSON)
	assert.Equal(t, 0, j.Len())
}

func Test_MemoryJournal_Query_AppliesTheFilter(t *testing.T) {
	// arrange
	j := journal.NewMemoryJournal()
	ctx := context.Background()
	require.NoError(t, j.Append(
		ctx,
		givenEntry(t, 0, "BookIssuedToUser", `{"ISBN":"111"}`),
		givenEntry(t, 0, "BookIssuedToUser", `{"ISBN":"222"}`),
		givenEntry(t, 0, "BookReturnedByUser", `{"ISBN":"111"}`),
	))

	filter := journal.BuildFilter().
		OfTypes("BookIssuedToUser", "BookReturnedByUser").
		WithAnyPredicateOf(journal.P("ISBN", "111")).
		Build()

	// act
	entries, err := j.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, journal.SequenceNumberUint(1), entries[0].SequenceNumber)
	assert.Equal(t, journal.SequenceNumberUint(3), entries[1].SequenceNumber)
}

func Test_MemoryJournal_WithCanceledContext_Fails(t *testing.T) {
	// arrange
	j := journal.NewMemoryJournal()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	appendErr := j.Append(ctx, givenEntry(t, 0, "A", `{}`))
	_, queryErr := j.Query(ctx, journal.MatchingAll())

	// assert
	assert.ErrorIs(t, appendErr, context.Canceled)
	assert.ErrorIs(t, queryErr, journal.ErrQueryingEntriesFailed)
}

func Test_MemoryJournal_ConcurrentAppends_KeepSequenceNumbersUnique(t *testing.T) {
	// arrange
	j := journal.NewMemoryJournal()
	ctx := context.Background()
	const workers = 20
	entry := givenEntry(t, 0, "A", `{}`)
	var wg sync.WaitGroup

	// act
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = j.Append(ctx, entry)
		}()
	}
	wg.Wait()

	// assert
	entries, err := j.Query(ctx, journal.MatchingAll())
	require.NoError(t, err)
	require.Len(t, entries, workers)

	seen := make(map[journal.SequenceNumberUint]bool)
	for _, entry := range entries {
		seen[entry.SequenceNumber] = true
	}
	assert.Len(t, seen, workers)
}

func givenEntry(t *testing.T, sequenceNumber journal.SequenceNumberUint, entryType string, payload string) journal.Entry {
	t.Helper()

	entry, err := journal.BuildEntryWithEmptyMetadata(entryType, time.Unix(1700000000, 0).UTC(), []byte(payload))
	if err != nil {
		t.Fatalf("building entry: %v", err)
	}

	entry.SequenceNumber = sequenceNumber

	return entry
}
