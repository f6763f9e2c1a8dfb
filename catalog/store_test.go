package catalog_test

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/testutil"
)

func Test_Store_AddBook_IndexesByISBNAndTitle(t *testing.T) {
	// arrange
	store := catalog.NewStore()

	// act
	err := store.AddBook(catalog.BuildBook("111", "Go", "A", "Tech"))

	// assert
	require.NoError(t, err)

	byISBN, found := store.FindBook("111")
	require.True(t, found)
	assert.True(t, byISBN.Available)
	assert.Equal(t, 0, byISBN.BorrowCount)

	byTitle, found := store.FindBookByTitle("Go")
	require.True(t, found)
	assert.Equal(t, byISBN, byTitle)
}

func Test_Store_AddBook_Duplicate_IsANoOp(t *testing.T) {
	// arrange
	store := catalog.NewStore()
	require.NoError(t, store.AddBook(catalog.BuildBook("111", "Go", "A", "Tech")))

	// act
	err := store.AddBook(catalog.BuildBook("111", "Rust", "B", "Systems"))

	// assert
	assert.ErrorIs(t, err, catalog.ErrDuplicateISBN)
	assert.Equal(t, 1, store.BookCount())

	book, _ := store.FindBook("111")
	assert.Equal(t, "Go", book.Title)

	_, found := store.FindBookByTitle("Rust")
	assert.False(t, found, "the rejected book must not leak into the title index")
}

func Test_Store_RemoveBook_AlsoPrunesTheTitleIndex(t *testing.T) {
	// arrange
	store := catalog.NewStore()
	require.NoError(t, store.AddBook(catalog.BuildBook("111", "Go", "A", "Tech")))
	require.NoError(t, store.AddBook(catalog.BuildBook("222", "Go", "B", "Tech")))

	// act
	removed, err := store.RemoveBook("111")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "111", removed.ISBN)

	_, found := store.FindBook("111")
	assert.False(t, found)

	byTitle, found := store.FindBookByTitle("Go")
	require.True(t, found)
	assert.Equal(t, "222", byTitle.ISBN)

	titles := make([]string, 0)
	_ = store.View(func(tx catalog.Tx) error {
		for book := range tx.BooksByTitle() {
			titles = append(titles, book.ISBN)
		}
		return nil
	})
	assert.Equal(t, []string{"222"}, titles)
}

func Test_Store_RemoveBook_FailsForBorrowedBook(t *testing.T) {
	// arrange
	store := catalog.NewStore()
	book := catalog.BuildBook("111", "Go", "A", "Tech")
	book.Available = false
	require.NoError(t, store.AddBook(book))

	// act
	_, err := store.RemoveBook("111")

	// assert
	assert.ErrorIs(t, err, catalog.ErrBookBorrowed)
	_, found := store.FindBookByTitle("Go")
	assert.True(t, found)
}

func Test_Store_FindBooksByAuthor_ExactMatchOnly(t *testing.T) {
	// arrange
	store := catalog.NewStore()
	require.NoError(t, store.AddBook(catalog.BuildBook("1", "One", "Le Guin", "SF")))
	require.NoError(t, store.AddBook(catalog.BuildBook("2", "Two", "Le Guin", "SF")))
	require.NoError(t, store.AddBook(catalog.BuildBook("3", "Three", "le guin", "SF")))

	// act
	books := store.FindBooksByAuthor("Le Guin")

	// assert
	isbns := make([]string, 0, len(books))
	for _, book := range books {
		isbns = append(isbns, book.ISBN)
	}
	assert.ElementsMatch(t, []string{"1", "2"}, isbns)
	assert.Empty(t, store.FindBooksByAuthor("Nobody"))
}

func Test_Store_ReturnsCopies(t *testing.T) {
	// arrange
	store := catalog.NewStore()
	require.NoError(t, store.AddBook(catalog.BuildBook("111", "Go", "A", "Tech")))
	user := store.AddUser("Alice")

	// act
	book, _ := store.FindBook("111")
	book.Available = false
	user.Borrowed = append(user.Borrowed, "111")

	// assert
	stored, _ := store.FindBook("111")
	assert.True(t, stored.Available)
	storedUser, _ := store.FindUser(user.ID)
	assert.Empty(t, storedUser.Borrowed)
}

func Test_Store_Users_AndRemoveUser(t *testing.T) {
	// arrange
	store := catalog.NewStore()
	alice := store.AddUser("Alice")
	bob := store.AddUser("Bob")

	// act
	_, err := store.RemoveUser(alice.ID)
	_, errUnknown := store.RemoveUser(alice.ID)

	// assert
	require.NoError(t, err)
	assert.ErrorIs(t, errUnknown, catalog.ErrUserNotFound)

	users := store.Users()
	require.Len(t, users, 1)
	assert.Equal(t, bob.ID, users[0].ID)
	assert.Equal(t, 1, store.UserCount())
	assert.Equal(t, 1003, store.NextUserID())
}

func Test_Store_Update_IsAtomicAgainstConcurrentCalls(t *testing.T) {
	// arrange
	store := catalog.NewStore()
	require.NoError(t, store.AddBook(catalog.BuildBook("111", "Go", "A", "Tech")))

	const workers = 50
	var wg sync.WaitGroup

	// act - every worker increments the counter inside Update
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(func(tx catalog.Tx) error {
				book, _ := tx.Book("111")
				book.BorrowCount++
				return nil
			})
		}()
	}
	wg.Wait()

	// assert
	book, _ := store.FindBook("111")
	assert.Equal(t, workers, book.BorrowCount)
}

func Test_Store_Snapshot_ThenRestore_RoundTrips(t *testing.T) {
	// arrange
	original := catalog.NewStore()
	require.NoError(t, original.AddBook(catalog.BuildBook("111", "Go", "A", "Tech")))
	require.NoError(t, original.AddBook(catalog.BuildBook("222", "Rust", "B", "Tech")))
	alice := original.AddUser("Alice")
	original.AddUser("Bob")
	require.NoError(t, original.Update(func(tx catalog.Tx) error {
		book, _ := tx.Book("111")
		user, _ := tx.User(alice.ID)
		user.AddBorrowed(book.ISBN)
		book.Available = false
		book.BorrowCount++
		return nil
	}))

	// act
	restored := catalog.NewStore()
	skipped := restored.Restore(original.Snapshot())

	// assert
	assert.Equal(t, 0, skipped)
	assert.ElementsMatch(t, original.Snapshot().Books, restored.Snapshot().Books)
	assert.Equal(t, original.Users(), restored.Users())
	assert.Equal(t, original.NextUserID(), restored.NextUserID())

	byTitle, found := restored.FindBookByTitle("Rust")
	require.True(t, found)
	assert.Equal(t, "222", byTitle.ISBN)
}

func Test_Store_Restore_SkipsDuplicates_AndLogsThem(t *testing.T) {
	// arrange
	logger, logHandler := testutil.NewLogger()
	store := catalog.NewStore(catalog.WithLogger(logger))

	snapshot := catalog.Snapshot{
		Books: []catalog.Book{
			catalog.BuildBook("111", "Go", "A", "Tech"),
			catalog.BuildBook("111", "Go again", "A", "Tech"),
		},
		Users: []catalog.User{
			{ID: 1003, Name: "Carol"},
			{ID: 1003, Name: "Carol again"},
			{ID: 1001, Name: "Greedy", Borrowed: make([]string, catalog.MaxBorrowedPerUser+1)},
		},
	}

	// act
	skipped := store.Restore(snapshot)

	// assert
	assert.Equal(t, 3, skipped)
	assert.Equal(t, 1, store.BookCount())
	assert.Equal(t, 1, store.UserCount())
	assert.Equal(t, 1004, store.NextUserID())
	assert.Len(t, logHandler.RecordsAtLevel(slog.LevelWarn), 3)
	assert.True(t, logHandler.HasMessage("catalog restored"))
}

func Test_Store_Restore_OfEmptySnapshot_StartsIDsAt1001(t *testing.T) {
	// arrange
	store := catalog.NewStore()
	store.AddUser("Alice")

	// act
	store.Restore(catalog.Snapshot{})

	// assert
	assert.Equal(t, 0, store.UserCount())
	assert.Equal(t, catalog.FirstUserID, store.NextUserID())
}
