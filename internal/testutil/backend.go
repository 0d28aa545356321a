package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// FakeBackend is an in-memory key-to-id mapping that stands in for one
// resource type of the target catalog.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FakeBackend struct {
	mu      sync.Mutex
	ids     map[string]string
	seq     *SequenceGenerator
	lookups map[string]int
	creates int

	// LookupErr, when set, is returned by every Lookup.
	LookupErr error

	// DuplicateErr is wrapped into the error Create returns for a key that
	// already exists. Tests set it to the sentinel the code under test expects.
	DuplicateErr error
}

// NewFakeBackend creates a backend seeded with key to id pairs.
//
// Ids of created resources are prefix-1, prefix-2, ...
func NewFakeBackend(prefix string, seed map[string]string) *FakeBackend {
	ids := make(map[string]string, len(seed))
	for k, v := range seed {
		ids[k] = v
	}
	return &FakeBackend{
		ids:          ids,
		seq:          NewSequenceGenerator(prefix),
		lookups:      make(map[string]int),
		DuplicateErr: errors.New("duplicate key"),
	}
}

// Lookup reports the id stored for key.
func (b *FakeBackend) Lookup(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lookups[key]++
	if b.LookupErr != nil {
		return "", false, b.LookupErr
	}
	id, ok := b.ids[key]
	return id, ok, nil
}

// Create stores a new resource under key, failing with DuplicateErr when the
// key is taken.
func (b *FakeBackend) Create(_ context.Context, key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.ids[key]; ok {
		return "", fmt.Errorf("create %q: %w", key, b.DuplicateErr)
	}
	b.creates++
	id := b.seq.Next()
	b.ids[key] = id
	return id, nil
}

// Lookups returns how often key was looked up.
func (b *FakeBackend) Lookups(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lookups[key]
}

// TotalLookups returns the number of lookups across all keys.
func (b *FakeBackend) TotalLookups() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.lookups {
		n += c
	}
	return n
}

// Creates returns the number of successful creates.
func (b *FakeBackend) Creates() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.creates
}

// Len returns the number of stored resources.
func (b *FakeBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ids)
}
