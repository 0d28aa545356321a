package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ctpsync/internal/draft"
)

// SeedResource is a referenced-only resource to create before a sync, such as
// a custom type or a channel the drafts point at.
type SeedResource struct {
	Type string `yaml:"type" json:"type"`
	Key  string `yaml:"key" json:"key"`

	// ID pins the id of the new resource. Empty means generated.
	ID string `yaml:"id,omitempty" json:"id,omitempty"`
}

// seedFile is the on-disk form read by LoadSeed.
type seedFile struct {
	Resources []SeedResource `yaml:"resources"`
}

var referenceTypes = map[string]bool{
	TypeCategory:     true,
	TypeType:         true,
	TypeChannel:      true,
	TypeProductType:  true,
	TypeTaxCategory:  true,
	TypeState:        true,
	TypeCartDiscount: true,
	TypeProduct:      true,
}

// IsSeedableType reports whether resources of the type can be seeded by key.
// Inventory entries have no key of their own and cannot.
func IsSeedableType(resourceType string) bool {
	return referenceTypes[resourceType]
}

// LoadSeed reads a YAML seed file of the form
//
//	resources:
//	  - type: type
//	    key: category-custom-type
//	  - type: channel
//	    key: warehouse-berlin
//	    id: 6b0c9f3e-1a2d-4c9b-8e57-51c2f0e0a001
func LoadSeed(path string) ([]SeedResource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f seedFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}
	if err := ValidateSeed(f.Resources); err != nil {
		return nil, err
	}
	return f.Resources, nil
}

// ValidateSeed checks that every seed resource names a seedable type and a
// non-blank key.
func ValidateSeed(resources []SeedResource) error {
	for i, r := range resources {
		if !IsSeedableType(r.Type) {
			return fmt.Errorf("resources[%d]: unknown resource type %q", i, r.Type)
		}
		if draft.IsBlank(r.Key) {
			return fmt.Errorf("resources[%d]: key is required", i)
		}
	}
	return nil
}

// Seed creates the given resources in order. Seeding stops at the first
// failure; resources created before it stay.
func (s *Store) Seed(ctx context.Context, resources []SeedResource) ([]Resource, error) {
	if err := ValidateSeed(resources); err != nil {
		return nil, err
	}

	created := make([]Resource, 0, len(resources))
	for _, r := range resources {
		payload := referencePayload{Key: r.Key}
		hash, err := draft.Hash(DomainReference, payload)
		if err != nil {
			return created, fmt.Errorf("seed %s %q: %w", r.Type, r.Key, err)
		}
		data, err := marshalPayload(payload)
		if err != nil {
			return created, fmt.Errorf("seed %s %q: %w", r.Type, r.Key, err)
		}
		id := r.ID
		if id == "" {
			id = s.newID()
		}
		res, err := s.insert(ctx, r.Type, id, r.Key, data, hash)
		if err != nil {
			return created, err
		}
		created = append(created, res)
	}
	return created, nil
}
