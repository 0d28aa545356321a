package draft

// AssetSource is one downloadable rendition of an asset.
type AssetSource struct {
	URI         string `json:"uri" yaml:"uri"`
	Key         string `json:"key,omitempty" yaml:"key,omitempty"`
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
}

// AssetDraft is a nested, ordered sub-resource of categories and product variants.
type AssetDraft struct {
	Key         string             `json:"key,omitempty" yaml:"key,omitempty"`
	Name        LocalizedString    `json:"name,omitempty" yaml:"name,omitempty"`
	Description LocalizedString    `json:"description,omitempty" yaml:"description,omitempty"`
	Sources     []AssetSource      `json:"sources,omitempty" yaml:"sources,omitempty"`
	Tags        []string           `json:"tags,omitempty" yaml:"tags,omitempty"`
	Custom      *CustomFieldsDraft `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// AssetList is the ordered asset collection of a parent draft. A nil list
// means the parent has no assets field and is left out when encoded; an empty
// list is encoded as [].
type AssetList []*AssetDraft

// IsZero reports whether the list is absent. Both encoding/json (omitzero)
// and yaml.v3 (omitempty) consult it.
func (l AssetList) IsZero() bool { return l == nil }

// Clone returns a deep copy. A nil receiver yields nil.
func (a *AssetDraft) Clone() *AssetDraft {
	if a == nil {
		return nil
	}
	out := *a
	out.Name = a.Name.Clone()
	out.Description = a.Description.Clone()
	if a.Sources != nil {
		out.Sources = append([]AssetSource{}, a.Sources...)
	}
	if a.Tags != nil {
		out.Tags = append([]string{}, a.Tags...)
	}
	out.Custom = a.Custom.Clone()
	return &out
}

// CloneAssets copies an asset list, keeping nil entries and the nil/empty distinction.
func CloneAssets(assets []*AssetDraft) []*AssetDraft {
	if assets == nil {
		return nil
	}
	out := make([]*AssetDraft, len(assets))
	for i, a := range assets {
		out[i] = a.Clone()
	}
	return out
}

// AssetDraftBuilder stages changes to an AssetDraft during resolution.
type AssetDraftBuilder struct {
	draft AssetDraft
}

// NewAssetDraftBuilder starts a builder from a copy of d.
func NewAssetDraftBuilder(d *AssetDraft) *AssetDraftBuilder {
	b := &AssetDraftBuilder{}
	if d != nil {
		b.draft = *d.Clone()
	}
	return b
}

func (b *AssetDraftBuilder) Key() string                { return b.draft.Key }
func (b *AssetDraftBuilder) Custom() *CustomFieldsDraft { return b.draft.Custom }

// SetCustom replaces the custom fields.
func (b *AssetDraftBuilder) SetCustom(c *CustomFieldsDraft) *AssetDraftBuilder {
	b.draft.Custom = c
	return b
}

// Build returns the staged asset.
func (b *AssetDraftBuilder) Build() *AssetDraft {
	return b.draft.Clone()
}
