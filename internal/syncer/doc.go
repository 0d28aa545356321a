// Package syncer runs the outer sync loop: it splits drafts into batches,
// resolves the references of every draft in a batch concurrently, and
// creates or updates the resolved drafts in the catalog store.
//
// # Failure isolation
//
// A draft that cannot be resolved or written is reported through
// Options.ErrorCallback and counted as failed. Its siblings in the batch
// carry on; one bad draft never aborts a run.
//
// # Ordering
//
// Batches run one after the other, so resources created by an earlier batch
// are visible to later ones through the key cache. Category drafts are
// additionally ordered so that parents are synced before their children.
//
// # Run identity
//
// Every run gets a UUIDv7 run id (time-sortable) that is attached to all log
// records of the run and returned in its Statistics.
package syncer
