// Package flatfileengine provides a catalog.Persister that keeps the catalog in two
// pipe-delimited text files, one for books and one for users.
//
// Both files are read and written concurrently. A missing file loads as empty,
// malformed lines are skipped and reported through the optional Logger.
// Save truncates and rewrites both files; there is no atomic rename and no backup.
//
// Usage:
//
//	engine, err := flatfileengine.NewEngine("/var/lib/library", flatfileengine.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	snapshot, err := engine.Load(ctx)
//	// ...
//	err = engine.Save(ctx, store.Snapshot())
package flatfileengine
