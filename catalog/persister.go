package catalog

import (
	"context"
)

// Snapshot is a detached copy of the whole catalog.
//
// Books are in BookIndex traversal order, Users in UserRegistry list order.
type Snapshot struct {
	Books []Book
	Users []User
}

// Persister loads and saves a Snapshot.
//
// Load must treat a missing target as an empty Snapshot and skip malformed records.
// Save fully overwrites the target.
type Persister interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}
