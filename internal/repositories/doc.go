// Package repositories implements SQLite persistence for the merge journal.
//
// Key Implementations:
//   - [MergeRepository] : committed merges and their items, with soft deletes
//   - [JournalAdapter] : records [merge.Committed] values from the state machine
//
// Sequence numbers provide stable, human-readable ordering (e.g., merge #15) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
