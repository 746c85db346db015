// Package sqlite provides a SQLite-backed implementation of the
// DocumentStore port, used as the local mirror of the billed document
// tier for offline work and dry runs.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Documents are
// stored as JSON field maps under their key; SetMerge performs the
// read-merge-write inside a transaction so partial field updates never
// clobber sibling fields.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. Each migration is a pair of .up.sql and
// .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.jurisync/data/cases.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
