// Package store provides SQLite-backed storage standing in for the target
// catalog that drafts are synced into.
//
// Every resource lives in one table keyed by (resource_type, id), with a
// UNIQUE(resource_type, key) constraint. That constraint is what makes
// create-on-demand safe under concurrency: a losing concurrent create fails
// with ErrDuplicateKey and the caller looks the key up again.
//
// # Determinism
//
//   - Payloads are stored as RFC 8785 canonical JSON next to their content hash
//   - seq is a logical insertion counter; listings ORDER BY seq ASC, id ASC COLLATE BINARY
//   - Ids come from an injectable generator (random UUIDs by default)
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
