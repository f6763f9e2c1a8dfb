// Package redisengine provides a catalog.Persister that keeps the catalog in two Redis lists.
//
// Each list element is one pipe-delimited record in the same format the flat file engine writes,
// so both engines can be swapped without converting data. The keys are "<prefix>:books" and
// "<prefix>:users". A missing key loads as empty; Save replaces both lists in one MULTI/EXEC.
package redisengine
