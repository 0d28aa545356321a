package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/ctpsync/internal/draft"
)

// Resource is one stored catalog resource.
type Resource struct {
	ResourceType string          `json:"resourceType"`
	ID           string          `json:"id"`
	Key          string          `json:"key"`
	Payload      json.RawMessage `json:"payload"`
	Hash         string          `json:"hash"`
	Seq          int64           `json:"seq"`
}

// DomainReference is the hash domain for bare resources that exist only to be
// referenced, such as types and channels.
const DomainReference = "ctpsync/reference/v1"

// referencePayload is what gets stored for resources created by key alone.
type referencePayload struct {
	Key string `json:"key"`
}

// marshalPayload serializes a payload to canonical JSON so that equal drafts
// are stored byte-identically.
func marshalPayload(v any) (string, error) {
	if v == nil {
		return "", fmt.Errorf("marshal payload: payload is nil")
	}
	data, err := draft.MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return string(data), nil
}
