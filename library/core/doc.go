// Package core contains the domain events and decision results of library circulation.
//
// Events describe what happened to the catalog (BookAddedToCatalog, BookIssuedToUser, ...)
// or why a circulation command was rejected (CirculationRejected). They are plain values
// with JSON-friendly fields, so the shell layer can write them to a journal unchanged.
package core
