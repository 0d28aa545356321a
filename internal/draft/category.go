package draft

// CategoryDraft describes the desired state of a category.
type CategoryDraft struct {
	Key             string              `json:"key" yaml:"key"`
	Name            LocalizedString     `json:"name" yaml:"name"`
	Slug            LocalizedString     `json:"slug" yaml:"slug"`
	Description     LocalizedString     `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalID      string              `json:"externalId,omitempty" yaml:"externalId,omitempty"`
	OrderHint       string              `json:"orderHint,omitempty" yaml:"orderHint,omitempty"`
	MetaTitle       LocalizedString     `json:"metaTitle,omitempty" yaml:"metaTitle,omitempty"`
	MetaDescription LocalizedString     `json:"metaDescription,omitempty" yaml:"metaDescription,omitempty"`
	Parent          *ResourceIdentifier `json:"parent,omitempty" yaml:"parent,omitempty"`
	Custom          *CustomFieldsDraft  `json:"custom,omitempty" yaml:"custom,omitempty"`
	Assets          AssetList           `json:"assets,omitzero" yaml:"assets,omitempty"`
}

// Clone returns a deep copy of the draft.
func (d CategoryDraft) Clone() CategoryDraft {
	out := d
	out.Name = d.Name.Clone()
	out.Slug = d.Slug.Clone()
	out.Description = d.Description.Clone()
	out.MetaTitle = d.MetaTitle.Clone()
	out.MetaDescription = d.MetaDescription.Clone()
	out.Parent = d.Parent.Clone()
	out.Custom = d.Custom.Clone()
	out.Assets = CloneAssets(d.Assets)
	return out
}

// CategoryDraftBuilder stages changes to a CategoryDraft during resolution.
type CategoryDraftBuilder struct {
	draft CategoryDraft
}

// NewCategoryDraftBuilder starts a builder from a copy of d.
func NewCategoryDraftBuilder(d CategoryDraft) *CategoryDraftBuilder {
	return &CategoryDraftBuilder{draft: d.Clone()}
}

func (b *CategoryDraftBuilder) Key() string                 { return b.draft.Key }
func (b *CategoryDraftBuilder) Parent() *ResourceIdentifier { return b.draft.Parent }
func (b *CategoryDraftBuilder) Custom() *CustomFieldsDraft  { return b.draft.Custom }
func (b *CategoryDraftBuilder) Assets() []*AssetDraft       { return b.draft.Assets }

// SetParent replaces the parent reference.
func (b *CategoryDraftBuilder) SetParent(ref *ResourceIdentifier) *CategoryDraftBuilder {
	b.draft.Parent = ref
	return b
}

// SetCustom replaces the custom fields.
func (b *CategoryDraftBuilder) SetCustom(c *CustomFieldsDraft) *CategoryDraftBuilder {
	b.draft.Custom = c
	return b
}

// SetAssets replaces the asset list.
func (b *CategoryDraftBuilder) SetAssets(assets []*AssetDraft) *CategoryDraftBuilder {
	b.draft.Assets = assets
	return b
}

// Build returns the staged category draft.
func (b *CategoryDraftBuilder) Build() CategoryDraft {
	return b.draft.Clone()
}
