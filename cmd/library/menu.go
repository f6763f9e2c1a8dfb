package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/library/circulation"
	"github.com/AntonStoeckl/smart-library-go/library/core"
	"github.com/AntonStoeckl/smart-library-go/library/reports"
)

const (
	invalidChoice   = -1
	tableRule       = "-------------------------------------------------------------------------------------"
	userTableRule   = "--------------------------------------------"
	msgInvalid      = "Invalid choice. Please try again."
	msgBackToMain   = "Returning to main menu."
	statusAvailable = "Available"
	statusBorrowed  = "Borrowed"
)

// errEndOfInput ends the menu loop like choosing Exit.
var errEndOfInput = errors.New("end of input")

type menu struct {
	in      *bufio.Scanner
	out     io.Writer
	store   *catalog.Store
	service *circulation.Service
	reports *reports.Engine
}

func newMenu(in io.Reader, out io.Writer, store *catalog.Store, service *circulation.Service, engine *reports.Engine) *menu {
	return &menu{
		in:      bufio.NewScanner(in),
		out:     out,
		store:   store,
		service: service,
		reports: engine,
	}
}

// Run shows the main menu until the user chooses Exit, the input ends or ctx is canceled.
func (m *menu) Run(ctx context.Context) error {
	submenus := map[int]func(context.Context) error{
		1: m.bookManagement,
		2: m.userManagement,
		3: m.issueReturn,
		4: m.search,
		5: m.reportsMenu,
	}

	for ctx.Err() == nil {
		m.println("\n===== Main Menu =====")
		m.println("1. Book Management")
		m.println("2. User Management")
		m.println("3. Issue/Return Books")
		m.println("4. Search")
		m.println("5. Reports")
		m.println("0. Exit")

		choice, err := m.readChoice()
		if err != nil {
			return endOfInputIsExit(err)
		}

		if choice == 0 {
			m.println("Exiting the system. Saving data...")
			return nil
		}

		submenu, ok := submenus[choice]
		if !ok {
			m.println(msgInvalid)
			continue
		}

		if err := submenu(ctx); err != nil {
			return endOfInputIsExit(err)
		}
	}

	return nil
}

func endOfInputIsExit(err error) error {
	if errors.Is(err, errEndOfInput) {
		return nil
	}

	return err
}

// loop runs one submenu until the user goes back to the main menu.
func (m *menu) loop(ctx context.Context, title string, items []string, handle func(ctx context.Context, choice int) error) error {
	for ctx.Err() == nil {
		m.printf("\n===== %s =====\n", title)
		for i, item := range items {
			m.printf("%d. %s\n", i+1, item)
		}
		m.println("0. Back to Main Menu")

		choice, err := m.readChoice()
		if err != nil {
			return err
		}

		switch {
		case choice == 0:
			m.println(msgBackToMain)
			return nil
		case choice < 1 || choice > len(items):
			m.println(msgInvalid)
		default:
			if err := handle(ctx, choice); err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *menu) bookManagement(ctx context.Context) error {
	items := []string{"Add New Book", "Remove Book", "List All Books"}

	return m.loop(ctx, "Book Management", items, func(ctx context.Context, choice int) error {
		switch choice {
		case 1:
			return m.addBook(ctx)
		case 2:
			return m.removeBook(ctx)
		default:
			m.listAllBooks()
			return nil
		}
	})
}

func (m *menu) addBook(ctx context.Context) error {
	isbn, err := m.readString("Enter ISBN: ", catalog.MaxISBNLength)
	if err != nil {
		return err
	}
	title, err := m.readString("Enter Title: ", catalog.MaxTitleLength)
	if err != nil {
		return err
	}
	author, err := m.readString("Enter Author: ", catalog.MaxAuthorLength)
	if err != nil {
		return err
	}
	genre, err := m.readString("Enter Genre: ", catalog.MaxGenreLength)
	if err != nil {
		return err
	}

	switch err := m.service.AddBook(ctx, isbn, title, author, genre); {
	case errors.Is(err, catalog.ErrDuplicateISBN):
		m.printf("Book with ISBN %s already exists. Not adding duplicate.\n", isbn)
	case err != nil:
		m.printf("Cannot add book: %v.\n", err)
	default:
		m.printf("Book '%s' added successfully.\n", title)
	}

	return nil
}

func (m *menu) removeBook(ctx context.Context) error {
	isbn, err := m.readString("Enter ISBN of the book to remove: ", catalog.MaxISBNLength)
	if err != nil {
		return err
	}

	book, err := m.service.RemoveBook(ctx, isbn)
	switch {
	case errors.Is(err, catalog.ErrBookNotFound):
		m.printf("Book with ISBN %s not found.\n", isbn)
	case errors.Is(err, catalog.ErrBookBorrowed):
		current, _ := m.store.FindBook(isbn)
		m.printf("Cannot remove book '%s' (ISBN: %s) as it is currently borrowed.\n", current.Title, isbn)
	case err != nil:
		m.printf("Cannot remove book: %v.\n", err)
	default:
		m.printf("Book '%s' (ISBN: %s) removed successfully.\n", book.Title, book.ISBN)
	}

	return nil
}

func (m *menu) userManagement(ctx context.Context) error {
	items := []string{"Add New User", "Find User", "Remove User", "List All Users"}

	return m.loop(ctx, "User Management", items, func(ctx context.Context, choice int) error {
		switch choice {
		case 1:
			name, err := m.readString("Enter user name: ", catalog.MaxNameLength)
			if err != nil {
				return err
			}
			user := m.service.RegisterUser(ctx, name)
			m.printf("User '%s' added successfully with ID: %d\n", user.Name, user.ID)
		case 2:
			return m.findUser()
		case 3:
			return m.removeUser(ctx)
		default:
			m.listUsers()
		}

		return nil
	})
}

func (m *menu) findUser() error {
	id, ok, err := m.readInt("Enter user ID: ")
	if err != nil || !ok {
		return err
	}

	user, found := m.store.FindUser(id)
	if !found {
		m.printf("User with ID %d not found.\n", id)
		return nil
	}

	m.println("\nUser Found:")
	m.printf("ID: %d\n", user.ID)
	m.printf("Name: %s\n", user.Name)
	m.printf("Books borrowed: %d\n", user.BorrowedCount())

	if user.BorrowedCount() > 0 {
		m.println("\nBorrowed Books:")
		for i, isbn := range user.Borrowed {
			if book, found := m.store.FindBook(isbn); found {
				m.printf("%d. %s by %s (ISBN: %s)\n", i+1, book.Title, book.Author, book.ISBN)
			}
		}
	}

	return nil
}

func (m *menu) removeUser(ctx context.Context) error {
	id, ok, err := m.readInt("Enter user ID to remove: ")
	if err != nil || !ok {
		return err
	}

	user, err := m.service.RemoveUser(ctx, id)
	switch {
	case errors.Is(err, catalog.ErrUserNotFound):
		m.printf("User with ID %d not found.\n", id)
	case errors.Is(err, catalog.ErrHasBorrowedBooks):
		current, _ := m.store.FindUser(id)
		m.printf("Cannot remove user '%s' (ID: %d) as they still have borrowed books.\n", current.Name, id)
	case err != nil:
		m.printf("Cannot remove user: %v.\n", err)
	default:
		m.printf("User '%s' (ID: %d) removed successfully.\n", user.Name, user.ID)
	}

	return nil
}

func (m *menu) listUsers() {
	m.println("\n===== All Users =====")
	users := m.store.Users()
	if len(users) == 0 {
		m.println("No users registered in the system.")
		return
	}

	m.printUsers(users)
}

func (m *menu) printUsers(users []catalog.User) {
	m.printf("%-5s | %-20s | %-15s\n", "ID", "Name", "Books Borrowed")
	m.println(userTableRule)
	for _, user := range users {
		m.printf("%-5d | %-20s | %-15d\n", user.ID, user.Name, user.BorrowedCount())
	}
}

func (m *menu) issueReturn(ctx context.Context) error {
	items := []string{"Issue Book", "Return Book"}

	return m.loop(ctx, "Issue/Return Books", items, func(ctx context.Context, choice int) error {
		id, ok, err := m.readInt("Enter User ID: ")
		if err != nil || !ok {
			return err
		}

		if choice == 1 {
			isbn, err := m.readString("Enter ISBN of the book to issue: ", catalog.MaxISBNLength)
			if err != nil {
				return err
			}
			m.reportCirculation(id, isbn, m.service.Issue(ctx, id, isbn), "issued to")

			return nil
		}

		isbn, err := m.readString("Enter ISBN of the book to return: ", catalog.MaxISBNLength)
		if err != nil {
			return err
		}
		m.reportCirculation(id, isbn, m.service.Return(ctx, id, isbn), "returned by")

		return nil
	})
}

func (m *menu) reportCirculation(id catalog.UserIDInt, isbn catalog.ISBNString, err error, verb string) {
	user, _ := m.store.FindUser(id)
	book, _ := m.store.FindBook(isbn)

	switch {
	case errors.Is(err, catalog.ErrUserNotFound):
		m.printf("User ID %d not found.\n", id)
	case errors.Is(err, catalog.ErrBookNotFound):
		m.printf("Book with ISBN %s not found.\n", isbn)
	case errors.Is(err, catalog.ErrBorrowLimitReached):
		m.printf("User '%s' has reached the maximum number of books that can be borrowed (%d).\n",
			user.Name, catalog.MaxBorrowedPerUser)
	case errors.Is(err, catalog.ErrBookUnavailable):
		m.printf("Book '%s' is not available for borrowing.\n", book.Title)
	case errors.Is(err, catalog.ErrNotBorrowedByUser):
		m.printf("User '%s' has not borrowed book with ISBN %s.\n", user.Name, isbn)
	case err != nil:
		m.printf("Operation failed: %v.\n", err)
	default:
		m.printf("Book '%s' %s user '%s' successfully.\n", book.Title, verb, user.Name)
	}
}

func (m *menu) search(ctx context.Context) error {
	items := []string{"Search by ISBN", "Search by Title", "Search by Author"}

	return m.loop(ctx, "Search", items, func(_ context.Context, choice int) error {
		switch choice {
		case 1:
			isbn, err := m.readString("Enter ISBN: ", catalog.MaxISBNLength)
			if err != nil {
				return err
			}
			if book, found := m.reports.FindByISBN(isbn); found {
				m.printBookDetails(book)
			} else {
				m.printf("Book with ISBN %s not found.\n", isbn)
			}
		case 2:
			title, err := m.readString("Enter Title: ", catalog.MaxTitleLength)
			if err != nil {
				return err
			}
			if book, found := m.reports.FindByTitle(title); found {
				m.printBookDetails(book)
			} else {
				m.printf("Book with title '%s' not found.\n", title)
			}
		default:
			author, err := m.readString("Enter Author: ", catalog.MaxAuthorLength)
			if err != nil {
				return err
			}
			m.printBooksByAuthor(author)
		}

		return nil
	})
}

func (m *menu) printBookDetails(book catalog.Book) {
	m.println("\nBook Found:")
	m.printf("ISBN: %s\n", book.ISBN)
	m.printf("Title: %s\n", book.Title)
	m.printf("Author: %s\n", book.Author)
	m.printf("Genre: %s\n", book.Genre)
	m.printf("Status: %s\n", status(book))
	m.printf("Times borrowed: %d\n", book.BorrowCount)
}

func (m *menu) printBooksByAuthor(author string) {
	books := m.reports.FindByAuthor(author)

	m.printf("\nBooks by %s:\n", author)
	m.printf("%-30s | %-15s | %-10s\n", "Title", "ISBN", "Status")
	m.println("------------------------------------------------------------")
	for _, book := range books {
		m.printf("%-30s | %-15s | %-10s\n", book.Title, book.ISBN, status(book))
	}

	if len(books) == 0 {
		m.printf("No books found by author '%s'.\n", author)
	}
}

func (m *menu) reportsMenu(ctx context.Context) error {
	items := []string{
		"List All Books",
		"List Available Books",
		"List Borrowed Books",
		"List Most Borrowed Books",
		"List Active Users",
		"Loan History of a Book",
	}

	return m.loop(ctx, "Reports", items, func(ctx context.Context, choice int) error {
		switch choice {
		case 1:
			m.listAllBooks()
		case 2:
			m.listAvailableBooks()
		case 3:
			m.listBorrowedBooks()
		case 4:
			m.listMostBorrowed()
		case 5:
			m.listActiveUsers()
		default:
			return m.loanHistory(ctx)
		}

		return nil
	})
}

func (m *menu) listAllBooks() {
	books := m.reports.ListAll()

	m.println("\n===== All Books (Sorted by Title) =====")
	m.printf("%-30s | %-20s | %-15s | %-10s\n", "Title", "Author", "ISBN", "Status")
	m.println(tableRule)
	if len(books) == 0 {
		m.println("No books in the library.")
		return
	}

	for _, book := range books {
		m.printf("%-30s | %-20s | %-15s | %-10s\n", book.Title, book.Author, book.ISBN, status(book))
	}
}

func (m *menu) listAvailableBooks() {
	books := m.reports.ListAvailable()

	m.println("\n===== Available Books =====")
	m.printf("%-30s | %-20s | %-15s\n", "Title", "Author", "ISBN")
	m.println("--------------------------------------------------------------------")
	for _, book := range books {
		m.printf("%-30s | %-20s | %-15s\n", book.Title, book.Author, book.ISBN)
	}

	if len(books) == 0 {
		m.println("No available books in the library.")
	}
}

func (m *menu) listBorrowedBooks() {
	loans := m.reports.ListBorrowed()

	m.println("\n===== Borrowed Books =====")
	m.printf("%-30s | %-20s | %-15s | %-20s\n", "Title", "Author", "ISBN", "Borrowed By")
	m.println(tableRule)
	for _, loan := range loans {
		m.printf("%-30s | %-20s | %-15s | %-20s (ID: %d)\n",
			loan.Book.Title, loan.Book.Author, loan.Book.ISBN, loan.User.Name, loan.User.ID)
	}

	if len(loans) == 0 {
		m.println("No books are currently borrowed.")
	}
}

func (m *menu) listMostBorrowed() {
	books := m.reports.MostBorrowed()

	m.println("\n===== Most Borrowed Books =====")
	m.printf("%-30s | %-20s | %-15s | %-10s\n", "Title", "Author", "ISBN", "Borrows")
	m.println(tableRule)
	for _, book := range books {
		m.printf("%-30s | %-20s | %-15s | %-10d\n", book.Title, book.Author, book.ISBN, book.BorrowCount)
	}

	if len(books) == 0 {
		m.println("No books have been borrowed yet.")
	}
}

func (m *menu) listActiveUsers() {
	users := m.reports.ActiveUsers()

	m.println("\n===== Active Users =====")
	if len(users) == 0 {
		m.println("No active users at the moment.")
		return
	}

	m.printUsers(users)
}

func (m *menu) loanHistory(ctx context.Context) error {
	isbn, err := m.readString("Enter ISBN: ", catalog.MaxISBNLength)
	if err != nil {
		return err
	}

	events, err := m.reports.LoanHistory(ctx, isbn)
	switch {
	case errors.Is(err, reports.ErrJournalDisabled):
		m.println("Loan history is not available: no journal is configured.")
		return nil
	case err != nil:
		m.printf("Cannot read loan history: %v.\n", err)
		return nil
	}

	m.printf("\n===== Loan History of %s =====\n", isbn)
	for _, event := range events {
		switch e := event.(type) {
		case core.BookIssuedToUser:
			m.printf("%s | issued to   | user %s\n", e.OccurredAt.Format("2006-01-02 15:04:05"), e.UserID)
		case core.BookReturnedByUser:
			m.printf("%s | returned by | user %s\n", e.OccurredAt.Format("2006-01-02 15:04:05"), e.UserID)
		}
	}

	if len(events) == 0 {
		m.printf("No loans recorded for ISBN %s.\n", isbn)
	}

	return nil
}

func status(book catalog.Book) string {
	if book.Available {
		return statusAvailable
	}

	return statusBorrowed
}

// readChoice reads a menu choice. Anything that is not a number is invalidChoice.
func (m *menu) readChoice() (int, error) {
	m.print("Enter your choice: ")

	line, err := m.readLine()
	if err != nil {
		return invalidChoice, err
	}

	choice, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		return invalidChoice, nil
	}

	return choice, nil
}

// readInt reads a number. ok is false when the input is not a number, which is reported to the user.
func (m *menu) readInt(prompt string) (int, bool, error) {
	m.print(prompt)

	line, err := m.readLine()
	if err != nil {
		return 0, false, err
	}

	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		m.printf("'%s' is not a valid number.\n", strings.TrimSpace(line))
		return 0, false, nil
	}

	return n, true, nil
}

// readString reads one line and truncates it to maxRunes.
func (m *menu) readString(prompt string, maxRunes int) (string, error) {
	m.print(prompt)

	line, err := m.readLine()
	if err != nil {
		return "", err
	}

	if runes := []rune(line); len(runes) > maxRunes {
		line = string(runes[:maxRunes])
	}

	return line, nil
}

func (m *menu) readLine() (string, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}

		return "", errEndOfInput
	}

	return strings.TrimSuffix(m.in.Text(), "\r"), nil
}

func (m *menu) print(s string) {
	_, _ = io.WriteString(m.out, s)
}

func (m *menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}

func (m *menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}
