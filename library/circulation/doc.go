// Package circulation is the CirculationService of the library: it issues books to users,
// takes them back, and maintains the catalog (add/remove books, register/remove users).
//
// Every rule check is a pure Decide function over a small state projected from the catalog
// under the store's write lock. The mutation happens under the same lock, so a concurrent
// remove can never observe half an issue. Afterwards the resulting domain event is written to
// an optional journal; a journal failure is logged and does not undo the catalog change.
package circulation
