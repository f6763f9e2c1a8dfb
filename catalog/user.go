package catalog

import (
	"slices"
)

// User is a registered library user with the ISBNs currently borrowed, in borrow order.
type User struct {
	ID       UserIDInt
	Name     string
	Borrowed []ISBNString
}

// HasBorrowed reports whether the user currently holds the given ISBN.
func (u *User) HasBorrowed(isbn ISBNString) bool {
	return slices.Contains(u.Borrowed, isbn)
}

// BorrowedCount returns the number of current loans.
func (u *User) BorrowedCount() int {
	return len(u.Borrowed)
}

// LimitReached reports whether the user can not borrow another book.
func (u *User) LimitReached() bool {
	return len(u.Borrowed) >= MaxBorrowedPerUser
}

// AddBorrowed appends the ISBN to the borrowed list.
func (u *User) AddBorrowed(isbn ISBNString) {
	u.Borrowed = append(u.Borrowed, isbn)
}

// RemoveBorrowed removes the ISBN and keeps the order of the remaining entries.
func (u *User) RemoveBorrowed(isbn ISBNString) bool {
	idx := slices.Index(u.Borrowed, isbn)
	if idx < 0 {
		return false
	}

	u.Borrowed = slices.Delete(u.Borrowed, idx, idx+1)

	return true
}

// Clone returns a copy that shares no memory with u.
func (u *User) Clone() User {
	return User{
		ID:       u.ID,
		Name:     u.Name,
		Borrowed: slices.Clone(u.Borrowed),
	}
}
