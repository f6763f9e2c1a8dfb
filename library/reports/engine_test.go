package reports_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/journal"
	"github.com/AntonStoeckl/smart-library-go/library/circulation"
	"github.com/AntonStoeckl/smart-library-go/library/core"
	"github.com/AntonStoeckl/smart-library-go/library/reports"
)

func Test_NewEngine_RejectsNilDependencies(t *testing.T) {
	_, err := reports.NewEngine(nil)
	assert.ErrorIs(t, err, reports.ErrNilStore)

	_, err = reports.NewEngine(catalog.NewStore(), reports.WithJournal(nil))
	assert.ErrorIs(t, err, reports.ErrNilJournal)
}

func Test_ListAll_SortsByTitle(t *testing.T) {
	// arrange
	engine, _ := givenLibrary(t,
		catalog.BuildBook("3", "Zig", "C", "Tech"),
		catalog.BuildBook("1", "Go", "A", "Tech"),
		catalog.BuildBook("2", "Go", "B", "Tech"),
		catalog.BuildBook("4", "C", "D", "Tech"),
	)

	// act
	books := engine.ListAll()

	// assert
	assert.Equal(t, []string{"4", "1", "2", "3"}, isbnsOf(books))
}

func Test_ListAvailable_And_ListBorrowed(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, service := givenLibrary(t,
		catalog.BuildBook("1", "One", "A", "G"),
		catalog.BuildBook("2", "Two", "A", "G"),
		catalog.BuildBook("3", "Three", "A", "G"),
	)
	alice := service.RegisterUser(ctx, "Alice")
	bob := service.RegisterUser(ctx, "Bob")
	require.NoError(t, service.Issue(ctx, alice.ID, "3"))
	require.NoError(t, service.Issue(ctx, alice.ID, "1"))
	require.NoError(t, service.Issue(ctx, bob.ID, "2"))

	// act
	available := engine.ListAvailable()
	loans := engine.ListBorrowed()

	// assert
	assert.Empty(t, available)

	require.Len(t, loans, 3)
	// users are listed most recently registered first, loans in borrow order
	assert.Equal(t, "Bob", loans[0].User.Name)
	assert.Equal(t, "2", loans[0].Book.ISBN)
	assert.Equal(t, "Alice", loans[1].User.Name)
	assert.Equal(t, "3", loans[1].Book.ISBN)
	assert.Equal(t, "1", loans[2].Book.ISBN)

	require.NoError(t, service.Return(ctx, bob.ID, "2"))
	assert.Equal(t, []string{"2"}, isbnsOf(engine.ListAvailable()))
}

func Test_MostBorrowed_TopTenWithBorrowsOnly_NonIncreasing(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, service := givenLibrary(t)
	user := service.RegisterUser(ctx, "Alice")

	for i := range 13 {
		isbn := fmt.Sprintf("b%02d", i)
		require.NoError(t, service.AddBook(ctx, isbn, "T", "A", "G"))

		// book i is borrowed i times, book 0 never
		for range i {
			require.NoError(t, service.Issue(ctx, user.ID, isbn))
			require.NoError(t, service.Return(ctx, user.ID, isbn))
		}
	}

	// act
	books := engine.MostBorrowed()

	// assert
	require.Len(t, books, reports.MostBorrowedLimit)
	assert.Equal(t, 12, books[0].BorrowCount)
	assert.Equal(t, 3, books[9].BorrowCount)

	for i := 1; i < len(books); i++ {
		assert.GreaterOrEqual(t, books[i-1].BorrowCount, books[i].BorrowCount)
	}
}

func Test_MostBorrowed_LeavesOutNeverBorrowedBooks(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, service := givenLibrary(t,
		catalog.BuildBook("1", "One", "A", "G"),
		catalog.BuildBook("2", "Two", "A", "G"),
	)
	user := service.RegisterUser(ctx, "Alice")
	require.NoError(t, service.Issue(ctx, user.ID, "2"))

	// act
	books := engine.MostBorrowed()

	// assert
	assert.Equal(t, []string{"2"}, isbnsOf(books))
}

func Test_ActiveUsers_SortedByLoanCount(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, service := givenLibrary(t,
		catalog.BuildBook("1", "One", "A", "G"),
		catalog.BuildBook("2", "Two", "A", "G"),
		catalog.BuildBook("3", "Three", "A", "G"),
	)
	alice := service.RegisterUser(ctx, "Alice")
	bob := service.RegisterUser(ctx, "Bob")
	service.RegisterUser(ctx, "Carol")
	require.NoError(t, service.Issue(ctx, alice.ID, "1"))
	require.NoError(t, service.Issue(ctx, bob.ID, "2"))
	require.NoError(t, service.Issue(ctx, bob.ID, "3"))

	// act
	users := engine.ActiveUsers()

	// assert
	require.Len(t, users, 2)
	assert.Equal(t, "Bob", users[0].Name)
	assert.Equal(t, "Alice", users[1].Name)
}

func Test_Search(t *testing.T) {
	// arrange
	engine, _ := givenLibrary(t,
		catalog.BuildBook("1", "Dune", "Herbert", "SF"),
		catalog.BuildBook("2", "Emma", "Austen", "Novel"),
		catalog.BuildBook("3", "Persuasion", "Austen", "Novel"),
	)

	// act + assert
	book, found := engine.FindByISBN("2")
	require.True(t, found)
	assert.Equal(t, "Emma", book.Title)

	book, found = engine.FindByTitle("Dune")
	require.True(t, found)
	assert.Equal(t, "1", book.ISBN)

	_, found = engine.FindByTitle("dune")
	assert.False(t, found)

	assert.ElementsMatch(t, []string{"2", "3"}, isbnsOf(engine.FindByAuthor("Austen")))
}

func Test_LoanHistory(t *testing.T) {
	t.Run("without journal", func(t *testing.T) {
		engine, _ := givenLibrary(t)

		_, err := engine.LoanHistory(context.Background(), "1")

		assert.ErrorIs(t, err, reports.ErrJournalDisabled)
	})

	t.Run("with journal", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		j := journal.NewMemoryJournal()
		store := catalog.NewStore()
		service, err := circulation.NewService(store, circulation.WithJournal(j))
		require.NoError(t, err)
		engine, err := reports.NewEngine(store, reports.WithJournal(j))
		require.NoError(t, err)

		require.NoError(t, service.AddBook(ctx, "1", "One", "A", "G"))
		require.NoError(t, service.AddBook(ctx, "2", "Two", "A", "G"))
		user := service.RegisterUser(ctx, "Alice")
		require.NoError(t, service.Issue(ctx, user.ID, "1"))
		require.NoError(t, service.Issue(ctx, user.ID, "2"))
		require.NoError(t, service.Return(ctx, user.ID, "1"))
		require.Error(t, service.Return(ctx, user.ID, "1"))

		// act
		events, err := engine.LoanHistory(ctx, "1")

		// assert
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.IsType(t, core.BookIssuedToUser{}, events[0])
		assert.IsType(t, core.BookReturnedByUser{}, events[1])
	})
}

func givenLibrary(t *testing.T, books ...catalog.Book) (*reports.Engine, *circulation.Service) {
	t.Helper()

	store := catalog.NewStore()
	for _, book := range books {
		require.NoError(t, store.AddBook(book))
	}

	service, err := circulation.NewService(store)
	require.NoError(t, err)

	engine, err := reports.NewEngine(store)
	require.NoError(t, err)

	return engine, service
}

func isbnsOf(books []catalog.Book) []string {
	isbns := make([]string, 0, len(books))
	for _, book := range books {
		isbns = append(isbns, book.ISBN)
	}

	return isbns
}
