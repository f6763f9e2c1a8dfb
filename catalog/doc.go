// Package catalog provides the in-memory indexing layer of the library:
// books, users and the structures that keep them consistent.
//
// The package owns three indexes, aggregated by Store:
//   - BookIndex: a chained hash table over ISBN, the owner of all Book records
//   - TitleIndex: an unbalanced binary search tree over titles, holding ISBN keys only
//   - UserRegistry: a singly linked list of users with their borrowed ISBNs
//
// Store guards all three with one coarse lock. Multi-step state changes
// (issuing and returning books) run inside Update so that they are atomic
// with respect to any other Store operation.
//
// Common usage pattern:
//
//	store := catalog.NewStore(catalog.WithLogger(logger))
//
//	err := store.AddBook(catalog.BuildBook("111", "Go", "A", "Tech"))
//	if errors.Is(err, catalog.ErrDuplicateISBN) {
//		// handle duplicate
//	}
//
//	err = store.Update(func(tx catalog.Tx) error {
//		book, found := tx.Book("111")
//		...
//	})
//
// Persistence is not part of this package. Engines implement the Persister
// interface and exchange a Snapshot with the Store.
package catalog
