// Package linecodec encodes and decodes catalog records as pipe-delimited lines.
//
// Book line:
//
//	isbn|title|author|genre|available(0/1)|borrow_count
//
// User line:
//
//	id|name|borrowed_count|isbn_1|...|isbn_n
//
// There is no escaping. A field that contains a '|' or a line break is written as-is
// and the resulting line is rejected as malformed when it is read back.
package linecodec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/smart-library-go/catalog"
)

const (
	separator       = "|"
	bookFieldCount  = 6
	userFixedFields = 3
)

// MarshalBook encodes a book as one line without the trailing newline.
func MarshalBook(book catalog.Book) string {
	available := "0"
	if book.Available {
		available = "1"
	}

	return strings.Join(
		[]string{book.ISBN, book.Title, book.Author, book.Genre, available, strconv.Itoa(book.BorrowCount)},
		separator,
	)
}

// UnmarshalBook decodes one book line. Every failure wraps catalog.ErrMalformedRecord.
func UnmarshalBook(line string) (catalog.Book, error) {
	fields := strings.Split(line, separator)
	if len(fields) != bookFieldCount {
		return catalog.Book{}, malformed("book has %d fields, want %d", len(fields), bookFieldCount)
	}

	if fields[0] == "" {
		return catalog.Book{}, malformed("book has an empty isbn")
	}

	var available bool
	switch fields[4] {
	case "0":
		available = false
	case "1":
		available = true
	default:
		return catalog.Book{}, malformed("book availability %q is not 0 or 1", fields[4])
	}

	borrowCount, err := strconv.Atoi(fields[5])
	if err != nil || borrowCount < 0 {
		return catalog.Book{}, malformed("book borrow count %q is not a non-negative number", fields[5])
	}

	return catalog.Book{
		ISBN:        fields[0],
		Title:       fields[1],
		Author:      fields[2],
		Genre:       fields[3],
		Available:   available,
		BorrowCount: borrowCount,
	}, nil
}

// MarshalUser encodes a user as one line without the trailing newline.
func MarshalUser(user catalog.User) string {
	fields := make([]string, 0, userFixedFields+len(user.Borrowed))
	fields = append(fields, strconv.Itoa(user.ID), user.Name, strconv.Itoa(len(user.Borrowed)))
	fields = append(fields, user.Borrowed...)

	return strings.Join(fields, separator)
}

// UnmarshalUser decodes one user line. Every failure wraps catalog.ErrMalformedRecord.
func UnmarshalUser(line string) (catalog.User, error) {
	fields := strings.Split(line, separator)
	if len(fields) < userFixedFields {
		return catalog.User{}, malformed("user has %d fields, want at least %d", len(fields), userFixedFields)
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return catalog.User{}, malformed("user id %q is not a number", fields[0])
	}

	borrowedCount, err := strconv.Atoi(fields[2])
	if err != nil || borrowedCount < 0 || borrowedCount > catalog.MaxBorrowedPerUser {
		return catalog.User{}, malformed("user borrowed count %q is not between 0 and %d", fields[2], catalog.MaxBorrowedPerUser)
	}

	borrowed := fields[userFixedFields:]
	if len(borrowed) != borrowedCount {
		return catalog.User{}, malformed("user declares %d borrowed books but lists %d", borrowedCount, len(borrowed))
	}

	user := catalog.User{
		ID:   id,
		Name: fields[1],
	}

	if borrowedCount > 0 {
		user.Borrowed = append(make([]catalog.ISBNString, 0, borrowedCount), borrowed...)
	}

	return user, nil
}

// LineError describes one skipped line.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err.Error())
}

func (e LineError) Unwrap() error {
	return e.Err
}

// DecodeBooks reads book lines until EOF. Malformed lines are skipped and reported as LineError,
// empty lines are ignored. The returned error is only set for read failures.
func DecodeBooks(r io.Reader) ([]catalog.Book, []LineError, error) {
	return decodeLines(r, UnmarshalBook)
}

// DecodeUsers reads user lines until EOF. Malformed lines are skipped and reported as LineError,
// empty lines are ignored. The returned error is only set for read failures.
func DecodeUsers(r io.Reader) ([]catalog.User, []LineError, error) {
	return decodeLines(r, UnmarshalUser)
}

// EncodeBooks writes one line per book.
func EncodeBooks(w io.Writer, books []catalog.Book) error {
	return encodeLines(w, books, MarshalBook)
}

// EncodeUsers writes one line per user.
func EncodeUsers(w io.Writer, users []catalog.User) error {
	return encodeLines(w, users, MarshalUser)
}

func decodeLines[T any](r io.Reader, unmarshal func(string) (T, error)) ([]T, []LineError, error) {
	records := make([]T, 0)
	skipped := make([]LineError, 0)

	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		record, err := unmarshal(line)
		if err != nil {
			skipped = append(skipped, LineError{Line: lineNumber, Err: err})
			continue
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return records, skipped, nil
}

func encodeLines[T any](w io.Writer, records []T, marshal func(T) string) error {
	buffered := bufio.NewWriter(w)

	for _, record := range records {
		if _, err := buffered.WriteString(marshal(record) + "\n"); err != nil {
			return err
		}
	}

	return buffered.Flush()
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", catalog.ErrMalformedRecord, fmt.Sprintf(format, args...))
}
