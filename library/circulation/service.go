package circulation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/library/core"
	"github.com/AntonStoeckl/smart-library-go/library/shell"
)

var ErrEmptyISBN = errors.New("isbn must not be empty")

const (
	logMsgCommandHandled       = "command handled"
	logMsgJournalMappingFailed = "failed to map event to journal entry"
	logMsgJournalAppendFailed  = "failed to append event to journal"
	logAttrCommand             = "command"
	logAttrEventType           = "event_type"
	logAttrISBN                = "isbn"
	logAttrUserID              = "user_id"
	logAttrOutcome             = "outcome"
	logAttrError               = "error"
	outcomeSuccess             = "success"
	outcomeRejected            = "rejected"
)

// Service is the CirculationService. All mutations of a catalog.Store should go through it.
type Service struct {
	store     *catalog.Store
	journal   Journal
	logger    Logger
	clock     func() time.Time
	sessionID uuid.UUID
}

// NewService creates a Service on top of store.
func NewService(store *catalog.Store, options ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	s := &Service{
		store:     store,
		clock:     time.Now,
		sessionID: uuid.New(),
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SessionID returns the correlation id of this Service.
func (s *Service) SessionID() uuid.UUID {
	return s.sessionID
}

// Issue lends the book to the user.
//
// Errors: catalog.ErrUserNotFound, catalog.ErrBookNotFound, catalog.ErrBorrowLimitReached, catalog.ErrBookUnavailable.
func (s *Service) Issue(ctx context.Context, userID catalog.UserIDInt, isbn catalog.ISBNString) error {
	command := BuildIssueCommand(userID, isbn, s.clock())

	var result core.DecisionResult

	err := s.store.Update(func(tx catalog.Tx) error {
		user, userFound := tx.User(userID)
		book, bookFound := tx.Book(isbn)

		result = DecideIssue(projectIssueState(user, userFound, book, bookFound), command)
		if err := result.HasError(); err != nil {
			return err
		}

		user.AddBorrowed(book.ISBN)
		book.Available = false
		book.BorrowCount++

		return nil
	})

	s.logCommand(command.CommandType(), isbn, userID, err)
	s.record(ctx, result.Event)

	return err
}

// Return takes the book back from the user. The borrow count of the book is never decreased.
//
// Errors: catalog.ErrUserNotFound, catalog.ErrBookNotFound, catalog.ErrNotBorrowedByUser.
func (s *Service) Return(ctx context.Context, userID catalog.UserIDInt, isbn catalog.ISBNString) error {
	command := BuildReturnCommand(userID, isbn, s.clock())

	var result core.DecisionResult

	err := s.store.Update(func(tx catalog.Tx) error {
		user, userFound := tx.User(userID)
		book, bookFound := tx.Book(isbn)

		result = DecideReturn(projectReturnState(user, userFound, isbn, bookFound), command)
		if err := result.HasError(); err != nil {
			return err
		}

		user.RemoveBorrowed(book.ISBN)
		book.Available = true

		return nil
	})

	s.logCommand(command.CommandType(), isbn, userID, err)
	s.record(ctx, result.Event)

	return err
}

// AddBook adds a new, available book to the catalog.
//
// Errors: ErrEmptyISBN, catalog.ErrDuplicateISBN.
func (s *Service) AddBook(ctx context.Context, isbn catalog.ISBNString, title, author, genre string) error {
	if isbn == "" {
		return ErrEmptyISBN
	}

	if err := s.store.AddBook(catalog.BuildBook(isbn, title, author, genre)); err != nil {
		return err
	}

	s.record(ctx, core.BuildBookAddedToCatalog(isbn, title, author, genre, s.clock()))

	return nil
}

// RemoveBook removes an available book from the catalog.
//
// Errors: catalog.ErrBookNotFound, catalog.ErrBookBorrowed.
func (s *Service) RemoveBook(ctx context.Context, isbn catalog.ISBNString) (catalog.Book, error) {
	removed, err := s.store.RemoveBook(isbn)
	if err != nil {
		return catalog.Book{}, err
	}

	s.record(ctx, core.BuildBookRemovedFromCatalog(isbn, s.clock()))

	return removed, nil
}

// RegisterUser registers a user and returns it with its assigned id.
func (s *Service) RegisterUser(ctx context.Context, name string) catalog.User {
	user := s.store.AddUser(name)
	s.record(ctx, core.BuildUserRegistered(user.ID, user.Name, s.clock()))

	return user
}

// RemoveUser removes a user without loans.
//
// Errors: catalog.ErrUserNotFound, catalog.ErrHasBorrowedBooks.
func (s *Service) RemoveUser(ctx context.Context, userID catalog.UserIDInt) (catalog.User, error) {
	removed, err := s.store.RemoveUser(userID)
	if err != nil {
		return catalog.User{}, err
	}

	s.record(ctx, core.BuildUserRemoved(userID, s.clock()))

	return removed, nil
}

// record writes the event to the journal, if there is one. Failures are only logged.
func (s *Service) record(ctx context.Context, event core.DomainEvent) {
	if s.journal == nil || event == nil {
		return
	}

	entry, err := shell.EntryFrom(event, shell.BuildCommandMetadata(s.sessionID))
	if err != nil {
		s.logWarn(logMsgJournalMappingFailed, logAttrEventType, event.IsEventType(), logAttrError, err.Error())
		return
	}

	if err = s.journal.Append(ctx, entry); err != nil {
		s.logWarn(logMsgJournalAppendFailed, logAttrEventType, event.IsEventType(), logAttrError, err.Error())
	}
}

func (s *Service) logCommand(command string, isbn catalog.ISBNString, userID catalog.UserIDInt, err error) {
	if s.logger == nil {
		return
	}

	if err != nil {
		s.logger.Debug(logMsgCommandHandled,
			logAttrCommand, command, logAttrISBN, isbn, logAttrUserID, userID,
			logAttrOutcome, outcomeRejected, logAttrError, err.Error())

		return
	}

	s.logger.Debug(logMsgCommandHandled,
		logAttrCommand, command, logAttrISBN, isbn, logAttrUserID, userID,
		logAttrOutcome, outcomeSuccess)
}

func (s *Service) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
