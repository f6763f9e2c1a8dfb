// Package reports is the read side of the library: listings, rankings and searches over a
// catalog.Store, plus the loan history of a book read back from the circulation journal.
//
// All results are detached copies; nothing here mutates the store.
package reports
