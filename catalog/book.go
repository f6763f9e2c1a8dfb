package catalog

// Book is a catalog record. BookIndex owns all Book records,
// every other structure refers to a Book by its ISBN.
type Book struct {
	ISBN        ISBNString
	Title       string
	Author      string
	Genre       string
	Available   bool
	BorrowCount int
}

// BuildBook is a factory method for a new, available Book that has never been borrowed.
func BuildBook(isbn ISBNString, title string, author string, genre string) Book {
	return Book{
		ISBN:        isbn,
		Title:       title,
		Author:      author,
		Genre:       genre,
		Available:   true,
		BorrowCount: 0,
	}
}

// Status returns a human-readable availability status.
func (b Book) Status() string {
	if b.Available {
		return "Available"
	}

	return "Borrowed"
}
