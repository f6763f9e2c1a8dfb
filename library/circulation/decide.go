package circulation

import (
	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/library/core"
)

// IssueState is what DecideIssue needs to know about the user and the book.
type IssueState struct {
	UserExists        bool
	BookExists        bool
	BookIsAvailable   bool
	UserBorrowedCount int
}

// ReturnState is what DecideReturn needs to know about the user and the book.
type ReturnState struct {
	UserExists     bool
	BookExists     bool
	BookIsWithUser bool
}

// DecideIssue decides whether a book can be issued to a user.
//
// Business Rules:
//
//	GIVEN: a registered user and a book in the catalog
//	WHEN: the book is issued to the user
//	THEN: BookIssuedToUser is generated
//	ERROR: ErrUserNotFound if the user is not registered
//	ERROR: ErrBookNotFound if the book is not in the catalog
//	ERROR: ErrBorrowLimitReached if the user already holds MaxBorrowedPerUser books, whether or not the book is available
//	ERROR: ErrBookUnavailable if the book is lent to anyone
func DecideIssue(s IssueState, command IssueCommand) core.DecisionResult {
	reject := func(err error) core.DecisionResult {
		event := core.BuildCirculationRejected(core.CommandIssue, command.ISBN, command.UserID, err.Error(), command.OccurredAt)
		return core.ErrorDecision(event, err)
	}

	if !s.UserExists {
		return reject(catalog.ErrUserNotFound)
	}

	if !s.BookExists {
		return reject(catalog.ErrBookNotFound)
	}

	if s.UserBorrowedCount >= catalog.MaxBorrowedPerUser {
		return reject(catalog.ErrBorrowLimitReached)
	}

	if !s.BookIsAvailable {
		return reject(catalog.ErrBookUnavailable)
	}

	return core.SuccessDecision(core.BuildBookIssuedToUser(command.ISBN, command.UserID, command.OccurredAt))
}

// DecideReturn decides whether a user can return a book.
//
// Business Rules:
//
//	GIVEN: a registered user holding a book from the catalog
//	WHEN: the user returns the book
//	THEN: BookReturnedByUser is generated
//	ERROR: ErrUserNotFound if the user is not registered
//	ERROR: ErrBookNotFound if the book is not in the catalog
//	ERROR: ErrNotBorrowedByUser if the user does not hold the book
func DecideReturn(s ReturnState, command ReturnCommand) core.DecisionResult {
	reject := func(err error) core.DecisionResult {
		event := core.BuildCirculationRejected(core.CommandReturn, command.ISBN, command.UserID, err.Error(), command.OccurredAt)
		return core.ErrorDecision(event, err)
	}

	if !s.UserExists {
		return reject(catalog.ErrUserNotFound)
	}

	if !s.BookExists {
		return reject(catalog.ErrBookNotFound)
	}

	if !s.BookIsWithUser {
		return reject(catalog.ErrNotBorrowedByUser)
	}

	return core.SuccessDecision(core.BuildBookReturnedByUser(command.ISBN, command.UserID, command.OccurredAt))
}

func projectIssueState(user *catalog.User, userFound bool, book *catalog.Book, bookFound bool) IssueState {
	s := IssueState{
		UserExists: userFound,
		BookExists: bookFound,
	}

	if userFound {
		s.UserBorrowedCount = user.BorrowedCount()
	}

	if bookFound {
		s.BookIsAvailable = book.Available
	}

	return s
}

func projectReturnState(user *catalog.User, userFound bool, isbn catalog.ISBNString, bookFound bool) ReturnState {
	return ReturnState{
		UserExists:     userFound,
		BookExists:     bookFound,
		BookIsWithUser: userFound && user.HasBorrowed(isbn),
	}
}
