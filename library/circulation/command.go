package circulation

import (
	"time"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/library/core"
)

const (
	issueCommandType  = "IssueBook"
	returnCommandType = "ReturnBook"
)

// IssueCommand represents the intent to lend a book to a user.
type IssueCommand struct {
	UserID     catalog.UserIDInt
	ISBN       catalog.ISBNString
	OccurredAt core.OccurredAtTS
}

// BuildIssueCommand creates a new IssueCommand.
func BuildIssueCommand(userID catalog.UserIDInt, isbn catalog.ISBNString, occurredAt time.Time) IssueCommand {
	return IssueCommand{
		UserID:     userID,
		ISBN:       isbn,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c IssueCommand) CommandType() string {
	return issueCommandType
}

// ReturnCommand represents the intent to take a book back from a user.
type ReturnCommand struct {
	UserID     catalog.UserIDInt
	ISBN       catalog.ISBNString
	OccurredAt core.OccurredAtTS
}

// BuildReturnCommand creates a new ReturnCommand.
func BuildReturnCommand(userID catalog.UserIDInt, isbn catalog.ISBNString, occurredAt time.Time) ReturnCommand {
	return ReturnCommand{
		UserID:     userID,
		ISBN:       isbn,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c ReturnCommand) CommandType() string {
	return returnCommandType
}
