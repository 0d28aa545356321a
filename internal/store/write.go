package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/ctpsync/internal/draft"
)

// Create inserts a new resource and returns it with its generated id.
//
// A resource of the same type with the same key makes Create fail with an
// error matching ErrDuplicateKey; the existing row is left untouched.
func (s *Store) Create(ctx context.Context, resourceType, key string, payload any, hash string) (Resource, error) {
	data, err := marshalPayload(payload)
	if err != nil {
		return Resource{}, fmt.Errorf("create %s %q: %w", resourceType, key, err)
	}

	return s.insert(ctx, resourceType, s.newID(), key, data, hash)
}

func (s *Store) insert(ctx context.Context, resourceType, id, key, data, hash string) (Resource, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO resources (resource_type, id, key, payload, hash, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM resources))
		RETURNING seq
	`, resourceType, id, key, data, hash).Scan(&seq)
	if err != nil {
		if isUniqueViolation(err) {
			return Resource{}, fmt.Errorf("create %s %q: %w", resourceType, key, ErrDuplicateKey)
		}
		return Resource{}, fmt.Errorf("create %s %q: %w", resourceType, key, err)
	}

	return Resource{
		ResourceType: resourceType,
		ID:           id,
		Key:          key,
		Payload:      []byte(data),
		Hash:         hash,
		Seq:          seq,
	}, nil
}

// CreateKey creates a resource that carries nothing but its key. Types,
// channels and the other referenced-only resources are created this way.
func (s *Store) CreateKey(ctx context.Context, resourceType, key string) (Resource, error) {
	payload := referencePayload{Key: key}
	hash, err := draft.Hash(DomainReference, payload)
	if err != nil {
		return Resource{}, fmt.Errorf("create %s %q: %w", resourceType, key, err)
	}
	return s.Create(ctx, resourceType, key, payload, hash)
}

// Update replaces the payload of an existing resource.
//
// changed is false when the stored hash already equals hash, in which case
// nothing is written. A missing resource fails with ErrNotFound.
func (s *Store) Update(ctx context.Context, resourceType, id string, payload any, hash string) (changed bool, err error) {
	data, err := marshalPayload(payload)
	if err != nil {
		return false, fmt.Errorf("update %s %s: %w", resourceType, id, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE resources SET payload = ?, hash = ?
		WHERE resource_type = ? AND id = ? AND hash != ?
	`, data, hash, resourceType, id, hash)
	if err != nil {
		return false, fmt.Errorf("update %s %s: %w", resourceType, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update %s %s: %w", resourceType, id, err)
	}
	if n > 0 {
		return true, nil
	}

	// Nothing written: either unchanged or missing.
	var exists int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM resources WHERE resource_type = ? AND id = ?
	`, resourceType, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("update %s %s: %w", resourceType, id, err)
	}
	if exists == 0 {
		return false, fmt.Errorf("update %s %s: %w", resourceType, id, ErrNotFound)
	}
	return false, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
