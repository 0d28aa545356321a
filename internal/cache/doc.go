// Package cache implements the run-scoped key cache: a per-resource-type
// mapping from human-readable keys to internal ids that is filled lazily and
// shared by every resolution of a sync run.
//
// The cache never stores absence. A key that was not found stays uncached,
// so a resource created later in the run (a parent category synced in an
// earlier batch, a channel created on demand) is found by the next lookup.
package cache
