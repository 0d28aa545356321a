package store

import (
	"errors"
	"sync"
	"testing"
)

func TestCreate(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	r, err := s.Create(ctx, TypeCategory, "shoes", testPayload{Key: "shoes", Name: "Shoes"}, "h1")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if r.ID != "id-1" {
		t.Errorf("ID = %q, want id-1", r.ID)
	}
	if r.Seq != 1 {
		t.Errorf("Seq = %d, want 1", r.Seq)
	}
	if got, want := string(r.Payload), `{"key":"shoes","name":"Shoes"}`; got != want {
		t.Errorf("Payload = %s, want %s", got, want)
	}

	r2, err := s.Create(ctx, TypeCategory, "boots", testPayload{Key: "boots"}, "h2")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if r2.Seq != 2 {
		t.Errorf("Seq = %d, want 2", r2.Seq)
	}
}

func TestCreate_DuplicateKey(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	if _, err := s.CreateKey(ctx, TypeChannel, "berlin"); err != nil {
		t.Fatalf("CreateKey() failed: %v", err)
	}
	_, err := s.CreateKey(ctx, TypeChannel, "berlin")
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("second CreateKey() error = %v, want ErrDuplicateKey", err)
	}

	// Same key, different resource type is fine.
	if _, err := s.CreateKey(ctx, TypeType, "berlin"); err != nil {
		t.Errorf("CreateKey() for other type failed: %v", err)
	}

	n, err := s.Count(ctx, TypeChannel)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestCreate_ConcurrentSameKey(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	const workers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateKey(ctx, TypeChannel, "hamburg")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrDuplicateKey):
				duplicates++
			default:
				t.Errorf("CreateKey() unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 || duplicates != workers-1 {
		t.Errorf("created=%d duplicates=%d, want 1 and %d", created, duplicates, workers-1)
	}
}

func TestCreate_NilPayload(t *testing.T) {
	s := createTestStore(t)
	if _, err := s.Create(t.Context(), TypeCategory, "k", nil, "h"); err == nil {
		t.Error("Create() with nil payload should fail")
	}
}

func TestUpdate(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	r, err := s.Create(ctx, TypeCategory, "shoes", testPayload{Key: "shoes", Name: "Shoes"}, "h1")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	changed, err := s.Update(ctx, TypeCategory, r.ID, testPayload{Key: "shoes", Name: "Shoes"}, "h1")
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if changed {
		t.Error("Update() with same hash reported a change")
	}

	changed, err = s.Update(ctx, TypeCategory, r.ID, testPayload{Key: "shoes", Name: "Sneakers"}, "h2")
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if !changed {
		t.Error("Update() with new hash reported no change")
	}

	got, err := s.Get(ctx, TypeCategory, "shoes")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.Hash != "h2" || string(got.Payload) != `{"key":"shoes","name":"Sneakers"}` {
		t.Errorf("Get() = %+v, want updated payload", got)
	}
	if got.Seq != r.Seq {
		t.Errorf("Seq changed on update: %d -> %d", r.Seq, got.Seq)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Update(t.Context(), TypeCategory, "missing", testPayload{}, "h")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}
