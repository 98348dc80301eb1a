// Package store provides SQLite-backed durable storage for job application
// records.
//
// The store owns one table, applications, and the only *sql.DB handle for
// it. Callers receive a *Store from Open and pass it explicitly; there is no
// package-level connection.
//
// # Identity
//
// Ids are assigned by AUTOINCREMENT on insert. Every delete is followed,
// inside the same transaction, by a renumbering pass that rewrites the table
// so ids are exactly 1..N in their previous order and resets the sequence so
// the next insert gets N+1. Surviving records may therefore change id after
// a delete.
//
// # Consistency
//
// Write transactions begin IMMEDIATE (the DSN sets _txlock=immediate), so a
// renumbering pass holds the write lock from its first read to its last
// insert and no other writer can interleave. A filtered list reads its total
// and its page inside one transaction, so both describe the same table state.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
//   - fold(): Unicode case folding for substring search, registered per
//     connection
//
// # Errors
//
// Lookups and mutations of a missing id return ErrNotFound. Every other
// failure is a wrapped driver error; classifying it is the caller's job.
package store
