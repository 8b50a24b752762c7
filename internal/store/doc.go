// Package store provides a SQLite-backed catalog backend.
//
// The database holds:
//   - items: the current catalog, one row per SKU
//   - snapshots: an append-only audit row per successful save
//
// Save replaces the items table inside a single transaction, so a reader
// sees either the previous catalog or the new one, never a mix.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Snapshot IDs are UUIDv7 so they sort by creation time; ordering queries
// still use the seq column.
package store
