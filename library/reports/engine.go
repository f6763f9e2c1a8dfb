package reports

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/journal"
	"github.com/AntonStoeckl/smart-library-go/library/core"
	"github.com/AntonStoeckl/smart-library-go/library/shell"
)

// MostBorrowedLimit is the maximum number of books MostBorrowed returns.
const MostBorrowedLimit = 10

var ErrNilStore = errors.New("store must not be nil")
var ErrNilJournal = errors.New("journal must not be nil")
var ErrJournalDisabled = errors.New("no journal configured")

// JournalReader is the part of journal.Journal the Engine reads from.
type JournalReader interface {
	Query(ctx context.Context, filter journal.Filter) (journal.Entries, error)
}

// Option defines a functional option for configuring an Engine.
type Option func(*Engine) error

// WithJournal enables LoanHistory.
func WithJournal(j JournalReader) Option {
	return func(e *Engine) error {
		if j == nil {
			return ErrNilJournal
		}

		e.journal = j

		return nil
	}
}

// Loan is one book currently held by one user.
type Loan struct {
	Book catalog.Book
	User catalog.User
}

// Engine is the ReportEngine.
type Engine struct {
	store   *catalog.Store
	journal JournalReader
}

// NewEngine creates an Engine reading from store.
func NewEngine(store *catalog.Store, options ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	e := &Engine{store: store}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// ListAll returns all books in ascending title order. Books with equal titles keep insertion order.
func (e *Engine) ListAll() []catalog.Book {
	books := make([]catalog.Book, 0)

	_ = e.store.View(func(tx catalog.Tx) error {
		for book := range tx.BooksByTitle() {
			books = append(books, *book)
		}

		return nil
	})

	return books
}

// ListAvailable returns the available books in BookIndex order.
func (e *Engine) ListAvailable() []catalog.Book {
	books := make([]catalog.Book, 0)

	_ = e.store.View(func(tx catalog.Tx) error {
		for book := range tx.Books() {
			if book.Available {
				books = append(books, *book)
			}
		}

		return nil
	})

	return books
}

// ListBorrowed returns one Loan per borrowed book, in user list order and per user in borrow order.
// Loans whose ISBN does not resolve to a book are left out.
func (e *Engine) ListBorrowed() []Loan {
	loans := make([]Loan, 0)

	_ = e.store.View(func(tx catalog.Tx) error {
		for user := range tx.Users() {
			for _, isbn := range user.Borrowed {
				book, found := tx.Book(isbn)
				if !found {
					continue
				}

				loans = append(loans, Loan{Book: *book, User: user.Clone()})
			}
		}

		return nil
	})

	return loans
}

// MostBorrowed returns up to MostBorrowedLimit books with the highest borrow counts, highest first.
// Books never borrowed are left out. Ties keep BookIndex order.
func (e *Engine) MostBorrowed() []catalog.Book {
	books := make([]catalog.Book, 0)

	_ = e.store.View(func(tx catalog.Tx) error {
		for book := range tx.Books() {
			books = append(books, *book)
		}

		return nil
	})

	slices.SortStableFunc(books, func(a, b catalog.Book) int {
		return cmp.Compare(b.BorrowCount, a.BorrowCount)
	})

	if len(books) > MostBorrowedLimit {
		books = books[:MostBorrowedLimit]
	}

	return slices.DeleteFunc(books, func(book catalog.Book) bool {
		return book.BorrowCount == 0
	})
}

// ActiveUsers returns the users holding at least one book, most loans first. Ties keep list order.
func (e *Engine) ActiveUsers() []catalog.User {
	users := make([]catalog.User, 0)

	for _, user := range e.store.Users() {
		if user.BorrowedCount() > 0 {
			users = append(users, user)
		}
	}

	slices.SortStableFunc(users, func(a, b catalog.User) int {
		return cmp.Compare(b.BorrowedCount(), a.BorrowedCount())
	})

	return users
}

// FindByISBN returns the book with this ISBN.
func (e *Engine) FindByISBN(isbn catalog.ISBNString) (catalog.Book, bool) {
	return e.store.FindBook(isbn)
}

// FindByTitle returns the first book found with exactly this title.
func (e *Engine) FindByTitle(title string) (catalog.Book, bool) {
	return e.store.FindBookByTitle(title)
}

// FindByAuthor returns all books with exactly this author.
func (e *Engine) FindByAuthor(author string) []catalog.Book {
	return e.store.FindBooksByAuthor(author)
}

// LoanHistory returns the issue and return events of one book in journal order.
func (e *Engine) LoanHistory(ctx context.Context, isbn catalog.ISBNString) (core.DomainEvents, error) {
	if e.journal == nil {
		return nil, ErrJournalDisabled
	}

	entries, err := e.journal.Query(ctx, BuildLoanHistoryFilter(isbn))
	if err != nil {
		return nil, err
	}

	return shell.DomainEventsFrom(entries)
}

// BuildLoanHistoryFilter creates the filter for all issue and return events of one book.
func BuildLoanHistoryFilter(isbn catalog.ISBNString) journal.Filter {
	return journal.BuildFilter().
		OfTypes(core.BookIssuedToUserEventType, core.BookReturnedByUserEventType).
		WithAnyPredicateOf(journal.P("ISBN", isbn)).
		Build()
}
