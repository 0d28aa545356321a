package draft

import "strings"

// ResourceIdentifier points at another resource either by its internal id or
// by its human-readable key.
//
// A well-formed identifier has exactly one non-blank field. Resolution trusts
// a non-blank ID and only consults the key cache when the identifier is keyed.
type ResourceIdentifier struct {
	ID  *string `json:"id,omitempty" yaml:"id,omitempty"`
	Key *string `json:"key,omitempty" yaml:"key,omitempty"`
}

// OfID returns an identifier addressed by internal id.
func OfID(id string) *ResourceIdentifier {
	return &ResourceIdentifier{ID: &id}
}

// OfKey returns an identifier addressed by key.
func OfKey(key string) *ResourceIdentifier {
	return &ResourceIdentifier{Key: &key}
}

// IDValue returns the id or "" when it is null.
func (r *ResourceIdentifier) IDValue() string {
	if r == nil || r.ID == nil {
		return ""
	}
	return *r.ID
}

// KeyValue returns the key or "" when it is null.
func (r *ResourceIdentifier) KeyValue() string {
	if r == nil || r.Key == nil {
		return ""
	}
	return *r.Key
}

// HasID reports whether the identifier carries a non-blank id.
func (r *ResourceIdentifier) HasID() bool {
	return !IsBlank(r.IDValue())
}

// Clone returns a deep copy. A nil receiver yields nil.
func (r *ResourceIdentifier) Clone() *ResourceIdentifier {
	if r == nil {
		return nil
	}
	c := &ResourceIdentifier{}
	if r.ID != nil {
		id := *r.ID
		c.ID = &id
	}
	if r.Key != nil {
		key := *r.Key
		c.Key = &key
	}
	return c
}

// IsBlank reports whether s is empty or consists only of white space.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func cloneIdentifiers(refs []*ResourceIdentifier) []*ResourceIdentifier {
	if refs == nil {
		return nil
	}
	out := make([]*ResourceIdentifier, len(refs))
	for i, ref := range refs {
		out[i] = ref.Clone()
	}
	return out
}
