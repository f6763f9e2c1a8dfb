package catalog

import (
	"errors"
)

var ErrDuplicateISBN = errors.New("a book with this ISBN already exists")
var ErrBookNotFound = errors.New("book not found")
var ErrUserNotFound = errors.New("user not found")
var ErrBookUnavailable = errors.New("book is not available")
var ErrBookBorrowed = errors.New("book is currently borrowed")
var ErrHasBorrowedBooks = errors.New("user still has borrowed books")
var ErrBorrowLimitReached = errors.New("user has reached the borrow limit")
var ErrNotBorrowedByUser = errors.New("book is not borrowed by this user")
var ErrMalformedRecord = errors.New("malformed record")
var ErrDuplicateUserID = errors.New("a user with this id already exists")

const (
	// HashTableSize is the fixed number of buckets in the BookIndex.
	HashTableSize = 101

	// MaxBorrowedPerUser is the maximum number of books one user can hold at the same time.
	MaxBorrowedPerUser = 10

	// FirstUserID is the id assigned to the first registered user.
	FirstUserID = 1001

	// MaxISBNLength and the following limits are the field sizes accepted by the input layer.
	MaxISBNLength   = 19
	MaxTitleLength  = 99
	MaxAuthorLength = 49
	MaxGenreLength  = 29
	MaxNameLength   = 49
)

// ISBNString represents an ISBN identifier.
type ISBNString = string

// UserIDInt represents a user identifier.
type UserIDInt = int
