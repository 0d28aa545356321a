package draft

// CustomFieldsDraft attaches a custom type and its field values to a draft.
// Resolution only ever rewrites Type; Fields are carried through untouched.
type CustomFieldsDraft struct {
	Type   *ResourceIdentifier `json:"type" yaml:"type"`
	Fields map[string]any      `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// OfTypeID builds custom fields whose type is addressed by id.
func OfTypeID(id string, fields map[string]any) *CustomFieldsDraft {
	return &CustomFieldsDraft{Type: OfID(id), Fields: fields}
}

// OfTypeKey builds custom fields whose type is addressed by key.
func OfTypeKey(key string, fields map[string]any) *CustomFieldsDraft {
	return &CustomFieldsDraft{Type: OfKey(key), Fields: fields}
}

// Clone returns a copy with its own type identifier and field map.
func (c *CustomFieldsDraft) Clone() *CustomFieldsDraft {
	if c == nil {
		return nil
	}
	out := &CustomFieldsDraft{Type: c.Type.Clone()}
	if c.Fields != nil {
		out.Fields = make(map[string]any, len(c.Fields))
		for k, v := range c.Fields {
			out.Fields[k] = v
		}
	}
	return out
}
