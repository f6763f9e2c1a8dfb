package catalog

import (
	"iter"
)

// bookNode is one link in a bucket chain.
type bookNode struct {
	book *Book
	next *bookNode
}

// BookIndex is a fixed-size hash table over ISBN with separate chaining.
// It is the owner of all Book records.
//
// BookIndex is not safe for concurrent use, Store serializes access to it.
type BookIndex struct {
	buckets [HashTableSize]*bookNode
	count   int
}

// NewBookIndex creates an empty BookIndex.
func NewBookIndex() *BookIndex {
	return &BookIndex{}
}

// HashISBN computes the bucket of an ISBN: a polynomial hash with base 31 over the bytes
// of the ISBN, in unsigned 32-bit arithmetic, modulo HashTableSize.
func HashISBN(isbn ISBNString) int {
	var hash uint32

	for i := 0; i < len(isbn); i++ {
		hash = hash*31 + uint32(isbn[i])
	}

	return int(hash % HashTableSize)
}

// Insert prepends the book to its bucket chain.
// It returns ErrDuplicateISBN and leaves the existing record untouched if the ISBN is already present.
func (bi *BookIndex) Insert(book *Book) error {
	idx := HashISBN(book.ISBN)

	for node := bi.buckets[idx]; node != nil; node = node.next {
		if node.book.ISBN == book.ISBN {
			return ErrDuplicateISBN
		}
	}

	bi.buckets[idx] = &bookNode{book: book, next: bi.buckets[idx]}
	bi.count++

	return nil
}

// Find walks the bucket chain of the ISBN.
func (bi *BookIndex) Find(isbn ISBNString) (*Book, bool) {
	for node := bi.buckets[HashISBN(isbn)]; node != nil; node = node.next {
		if node.book.ISBN == isbn {
			return node.book, true
		}
	}

	return nil, false
}

// Remove unlinks the book from its chain and returns it.
//
// Errors:
//   - ErrBookNotFound if the ISBN is not present
//   - ErrBookBorrowed if the book is currently not available
func (bi *BookIndex) Remove(isbn ISBNString) (*Book, error) {
	idx := HashISBN(isbn)

	var prev *bookNode
	node := bi.buckets[idx]

	for node != nil && node.book.ISBN != isbn {
		prev = node
		node = node.next
	}

	if node == nil {
		return nil, ErrBookNotFound
	}

	if !node.book.Available {
		return nil, ErrBookBorrowed
	}

	if prev == nil {
		bi.buckets[idx] = node.next
	} else {
		prev.next = node.next
	}

	bi.count--

	return node.book, nil
}

// All yields every book in bucket order, each chain from head to tail.
func (bi *BookIndex) All() iter.Seq[*Book] {
	return func(yield func(*Book) bool) {
		for _, head := range bi.buckets {
			for node := head; node != nil; node = node.next {
				if !yield(node.book) {
					return
				}
			}
		}
	}
}

// Len returns the number of books.
func (bi *BookIndex) Len() int {
	return bi.count
}
