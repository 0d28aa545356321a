// Package testutil provides deterministic fakes shared by tests: an in-memory
// backend answering key lookups, and id and run id generators that produce
// the same values on every run.
package testutil
