// Package shell maps library domain events to journal entries and back.
//
// In Hexagonal Architecture terminology this is part of the adapter layer between the
// pure core package and the journal infrastructure.
package shell
