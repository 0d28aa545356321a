package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestFetchIDByKey(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	r, err := s.CreateKey(ctx, TypeType, "myTypeKey")
	if err != nil {
		t.Fatalf("CreateKey() failed: %v", err)
	}

	id, found, err := s.FetchIDByKey(ctx, TypeType, "myTypeKey")
	if err != nil {
		t.Fatalf("FetchIDByKey() failed: %v", err)
	}
	if !found || id != r.ID {
		t.Errorf("FetchIDByKey() = %q, %v; want %q, true", id, found, r.ID)
	}

	id, found, err = s.FetchIDByKey(ctx, TypeType, "missing")
	if err != nil {
		t.Fatalf("FetchIDByKey() for missing key failed: %v", err)
	}
	if found || id != "" {
		t.Errorf("FetchIDByKey() = %q, %v; want empty, false", id, found)
	}
}

func TestFetchIDByKey_ClosedStoreFails(t *testing.T) {
	s := createTestStore(t)
	s.Close()

	_, found, err := s.FetchIDByKey(t.Context(), TypeType, "k")
	if err == nil {
		t.Fatal("FetchIDByKey() on closed store should fail")
	}
	if found {
		t.Error("found must be false on error")
	}
}

func TestFetchIDsByKeys(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	// More keys than fit into one query.
	keys := make([]string, 0, maxKeysPerQuery+10)
	for i := 0; i < maxKeysPerQuery+10; i++ {
		key := fmt.Sprintf("cat-%03d", i)
		keys = append(keys, key)
		if i%2 == 0 {
			if _, err := s.CreateKey(ctx, TypeCategory, key); err != nil {
				t.Fatalf("CreateKey() failed: %v", err)
			}
		}
	}

	ids, err := s.FetchIDsByKeys(ctx, TypeCategory, keys)
	if err != nil {
		t.Fatalf("FetchIDsByKeys() failed: %v", err)
	}
	if want := (maxKeysPerQuery + 10 + 1) / 2; len(ids) != want {
		t.Errorf("len(ids) = %d, want %d", len(ids), want)
	}
	if _, ok := ids["cat-001"]; ok {
		t.Error("missing key must not be in result")
	}

	empty, err := s.FetchIDsByKeys(ctx, TypeCategory, nil)
	if err != nil {
		t.Fatalf("FetchIDsByKeys(nil) failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("FetchIDsByKeys(nil) = %v, want empty map", empty)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Get(t.Context(), TypeCategory, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestList_Ordered(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	for _, key := range []string{"c", "a", "b"} {
		if _, err := s.CreateKey(ctx, TypeCategory, key); err != nil {
			t.Fatalf("CreateKey() failed: %v", err)
		}
	}
	if _, err := s.CreateKey(ctx, TypeChannel, "x"); err != nil {
		t.Fatalf("CreateKey() failed: %v", err)
	}

	list, err := s.List(ctx, TypeCategory)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	var got []string
	for _, r := range list {
		got = append(got, r.Key)
	}
	if fmt.Sprint(got) != "[c a b]" {
		t.Errorf("List() keys = %v, want insertion order [c a b]", got)
	}

	none, err := s.List(ctx, TypeProduct)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if none == nil {
		t.Error("List() must return empty slice, not nil")
	}
}

func TestListAll(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	if _, err := s.CreateKey(ctx, TypeChannel, "x"); err != nil {
		t.Fatalf("CreateKey() failed: %v", err)
	}
	if _, err := s.CreateKey(ctx, TypeCategory, "a"); err != nil {
		t.Fatalf("CreateKey() failed: %v", err)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() failed: %v", err)
	}
	var got []string
	for _, r := range all {
		got = append(got, r.ResourceType+"/"+r.Key)
	}
	if fmt.Sprint(got) != "[channel/x category/a]" {
		t.Errorf("ListAll() = %v, want [channel/x category/a]", got)
	}
}
