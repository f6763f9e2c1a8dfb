package catalog

import (
	"errors"
	"iter"
	"sync"
)

// Store is the LibraryStore aggregate: it owns the BookIndex, the TitleIndex and the UserRegistry
// and keeps them consistent.
//
// All methods are safe for concurrent use. Read methods return copies, so callers can never
// mutate records outside a Store lock.
type Store struct {
	mu     sync.RWMutex
	books  *BookIndex
	titles *TitleIndex
	users  *UserRegistry
	logger Logger
}

// NewStore creates an empty Store with optional configuration.
func NewStore(options ...Option) *Store {
	s := &Store{
		books:  NewBookIndex(),
		titles: NewTitleIndex(),
		users:  NewUserRegistry(),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Tx gives access to the indexes while a Store lock is held.
// Pointers obtained from a Tx must not be retained after the closure returns.
type Tx struct {
	books  *BookIndex
	titles *TitleIndex
	users  *UserRegistry
}

// Book resolves a book by ISBN.
func (tx Tx) Book(isbn ISBNString) (*Book, bool) {
	return tx.books.Find(isbn)
}

// User resolves a user by id.
func (tx Tx) User(id UserIDInt) (*User, bool) {
	return tx.users.Find(id)
}

// Books yields all books in BookIndex order.
func (tx Tx) Books() iter.Seq[*Book] {
	return tx.books.All()
}

// BooksByTitle yields all books in ascending title order.
func (tx Tx) BooksByTitle() iter.Seq[*Book] {
	return func(yield func(*Book) bool) {
		for isbn := range tx.titles.InOrder() {
			book, found := tx.books.Find(isbn)
			if !found {
				continue
			}

			if !yield(book) {
				return
			}
		}
	}
}

// Users yields all users in UserRegistry order.
func (tx Tx) Users() iter.Seq[*User] {
	return tx.users.All()
}

// Update runs fn under the write lock. It is the unit of atomicity for multi-step state changes.
func (s *Store) Update(fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.tx())
}

// View runs fn under the read lock. fn must not mutate anything it gets from the Tx.
func (s *Store) View(fn func(tx Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.tx())
}

func (s *Store) tx() Tx {
	return Tx{books: s.books, titles: s.titles, users: s.users}
}

// AddBook inserts the book into the BookIndex and the TitleIndex.
// It returns ErrDuplicateISBN if the ISBN is already present, the existing record stays untouched.
func (s *Store) AddBook(book Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := book
	if err := s.books.Insert(&stored); err != nil {
		return err
	}

	s.titles.Insert(stored.Title, stored.ISBN)
	s.logDebug(logMsgBookAdded, logAttrISBN, stored.ISBN, logAttrTitle, stored.Title)

	return nil
}

// RemoveBook removes an available book from the BookIndex and the TitleIndex.
//
// Errors:
//   - ErrBookNotFound if the ISBN is not present
//   - ErrBookBorrowed if the book is currently borrowed
func (s *Store) RemoveBook(isbn ISBNString) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.books.Remove(isbn)
	if err != nil {
		return Book{}, err
	}

	s.titles.Remove(removed.Title, removed.ISBN)
	s.logDebug(logMsgBookRemoved, logAttrISBN, removed.ISBN)

	return *removed, nil
}

// FindBook returns a copy of the book with this ISBN.
func (s *Store) FindBook(isbn ISBNString) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, found := s.books.Find(isbn)
	if !found {
		return Book{}, false
	}

	return *book, true
}

// FindBookByTitle returns a copy of the first book found in the TitleIndex with exactly this title.
func (s *Store) FindBookByTitle(title string) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	isbn, found := s.titles.FindExact(title)
	if !found {
		return Book{}, false
	}

	book, found := s.books.Find(isbn)
	if !found {
		return Book{}, false
	}

	return *book, true
}

// FindBooksByAuthor returns copies of all books with exactly this author, in BookIndex order.
func (s *Store) FindBooksByAuthor(author string) []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]Book, 0)
	for book := range s.books.All() {
		if book.Author == author {
			found = append(found, *book)
		}
	}

	return found
}

// BookCount returns the number of books.
func (s *Store) BookCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.books.Len()
}

// AddUser registers a new user and returns a copy of it.
func (s *Store) AddUser(name string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.users.Add(name)
	s.logDebug(logMsgUserAdded, logAttrUserID, user.ID)

	return user.Clone()
}

// FindUser returns a copy of the user with this id.
func (s *Store) FindUser(id UserIDInt) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, found := s.users.Find(id)
	if !found {
		return User{}, false
	}

	return user.Clone(), true
}

// RemoveUser removes a user without loans.
//
// Errors:
//   - ErrUserNotFound if the id is not registered
//   - ErrHasBorrowedBooks if the user still holds at least one book
func (s *Store) RemoveUser(id UserIDInt) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.users.Remove(id)
	if err != nil {
		return User{}, err
	}

	s.logDebug(logMsgUserRemoved, logAttrUserID, id)

	return *removed, nil
}

// Users returns copies of all users in list order.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]User, 0, s.users.Len())
	for user := range s.users.All() {
		users = append(users, user.Clone())
	}

	return users
}

// UserCount returns the number of users.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.users.Len()
}

// NextUserID returns the id the next registered user will get.
func (s *Store) NextUserID() UserIDInt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.users.NextID()
}

// Snapshot returns a detached copy of the whole catalog.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{
		Books: make([]Book, 0, s.books.Len()),
		Users: make([]User, 0, s.users.Len()),
	}

	for book := range s.books.All() {
		snapshot.Books = append(snapshot.Books, *book)
	}

	for user := range s.users.All() {
		snapshot.Users = append(snapshot.Users, user.Clone())
	}

	return snapshot
}

// Restore replaces the content of the Store with the Snapshot.
//
// Users keep the order of the Snapshot. Books with a duplicate ISBN, users with a duplicate id
// and users holding more than MaxBorrowedPerUser books are skipped and logged.
// The next user id becomes the larger of FirstUserID and the highest restored id plus one.
// It returns the number of skipped records.
func (s *Store) Restore(snapshot Snapshot) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = NewBookIndex()
	s.titles = NewTitleIndex()
	s.users = NewUserRegistry()

	skipped := 0

	for _, book := range snapshot.Books {
		stored := book
		if err := s.books.Insert(&stored); err != nil {
			s.logWarn(logMsgRestoreSkippedBook, logAttrISBN, book.ISBN, logAttrError, err.Error())
			skipped++
			continue
		}

		s.titles.Insert(stored.Title, stored.ISBN)
	}

	for _, user := range snapshot.Users {
		if user.BorrowedCount() > MaxBorrowedPerUser {
			err := errors.Join(ErrMalformedRecord, ErrBorrowLimitReached)
			s.logWarn(logMsgRestoreSkippedUser, logAttrUserID, user.ID, logAttrError, err.Error())
			skipped++
			continue
		}

		stored := user.Clone()
		if err := s.users.Append(&stored); err != nil {
			s.logWarn(logMsgRestoreSkippedUser, logAttrUserID, user.ID, logAttrError, err.Error())
			skipped++
			continue
		}
	}

	s.logInfo(
		logMsgRestored,
		logAttrBookCount, s.books.Len(),
		logAttrUserCount, s.users.Len(),
		logAttrNextUserID, s.users.NextID(),
	)

	return skipped
}
