package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// maxKeysPerQuery bounds the number of bound parameters per IN clause.
const maxKeysPerQuery = 500

// FetchIDByKey returns the id of the resource with the given key.
// found is false, with a nil error, when there is no such resource.
func (s *Store) FetchIDByKey(ctx context.Context, resourceType, key string) (id string, found bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT id FROM resources WHERE resource_type = ? AND key = ?
	`, resourceType, key).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("fetch %s id by key %q: %w", resourceType, key, err)
	}
	return id, true, nil
}

// FetchIDsByKeys returns the ids of all resources whose key is in keys.
// Keys without a resource are absent from the result.
func (s *Store) FetchIDsByKeys(ctx context.Context, resourceType string, keys []string) (map[string]string, error) {
	ids := make(map[string]string, len(keys))
	for start := 0; start < len(keys); start += maxKeysPerQuery {
		end := min(start+maxKeysPerQuery, len(keys))
		if err := s.fetchIDsChunk(ctx, resourceType, keys[start:end], ids); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (s *Store) fetchIDsChunk(ctx context.Context, resourceType string, keys []string, into map[string]string) error {
	args := make([]any, 0, len(keys)+1)
	args = append(args, resourceType)
	for _, k := range keys {
		args = append(args, k)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, id FROM resources
		WHERE resource_type = ? AND key IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return fmt.Errorf("fetch %s ids by keys: %w", resourceType, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, id string
		if err := rows.Scan(&key, &id); err != nil {
			return fmt.Errorf("scan %s id: %w", resourceType, err)
		}
		into[key] = id
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s ids: %w", resourceType, err)
	}
	return nil
}

// Get returns the resource with the given key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, resourceType, key string) (Resource, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT resource_type, id, key, payload, hash, seq
		FROM resources WHERE resource_type = ? AND key = ?
	`, resourceType, key)

	r, err := scanResource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Resource{}, fmt.Errorf("get %s %q: %w", resourceType, key, ErrNotFound)
	}
	if err != nil {
		return Resource{}, fmt.Errorf("get %s %q: %w", resourceType, key, err)
	}
	return r, nil
}

// List returns all resources of a type in insertion order.
//
// Returns an empty slice (not nil) when there are none.
func (s *Store) List(ctx context.Context, resourceType string) ([]Resource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT resource_type, id, key, payload, hash, seq
		FROM resources
		WHERE resource_type = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, resourceType)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", resourceType, err)
	}
	return collectResources(rows, resourceType)
}

// ListAll returns every resource of every type in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]Resource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT resource_type, id, key, payload, hash, seq
		FROM resources
		ORDER BY seq ASC, resource_type COLLATE BINARY ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return collectResources(rows, "resources")
}

func collectResources(rows *sql.Rows, what string) ([]Resource, error) {
	defer rows.Close()

	resources := []Resource{}
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}
	return resources, nil
}

// Count returns the number of resources of a type.
func (s *Store) Count(ctx context.Context, resourceType string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM resources WHERE resource_type = ?
	`, resourceType).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", resourceType, err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResource(row rowScanner) (Resource, error) {
	var (
		r       Resource
		payload string
	)
	if err := row.Scan(&r.ResourceType, &r.ID, &r.Key, &payload, &r.Hash, &r.Seq); err != nil {
		return Resource{}, err
	}
	r.Payload = []byte(payload)
	return r, nil
}
