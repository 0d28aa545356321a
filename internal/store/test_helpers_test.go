package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/ctpsync/internal/testutil"
)

// createTestStore creates a new store in a temp dir with sequential ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequenceGenerator("id").Next))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type testPayload struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}
