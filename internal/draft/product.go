package draft

// ProductVariantDraft is one purchasable variant of a product.
type ProductVariantDraft struct {
	SKU    string    `json:"sku,omitempty" yaml:"sku,omitempty"`
	Key    string    `json:"key,omitempty" yaml:"key,omitempty"`
	Assets AssetList `json:"assets,omitzero" yaml:"assets,omitempty"`
}

// Clone returns a deep copy. A nil receiver yields nil.
func (v *ProductVariantDraft) Clone() *ProductVariantDraft {
	if v == nil {
		return nil
	}
	out := *v
	out.Assets = CloneAssets(v.Assets)
	return &out
}

// ProductDraft describes the desired state of a product.
type ProductDraft struct {
	Key             string                 `json:"key" yaml:"key"`
	Name            LocalizedString        `json:"name" yaml:"name"`
	Slug            LocalizedString        `json:"slug" yaml:"slug"`
	Description     LocalizedString        `json:"description,omitempty" yaml:"description,omitempty"`
	MetaTitle       LocalizedString        `json:"metaTitle,omitempty" yaml:"metaTitle,omitempty"`
	MetaDescription LocalizedString        `json:"metaDescription,omitempty" yaml:"metaDescription,omitempty"`
	ProductType     *ResourceIdentifier    `json:"productType" yaml:"productType"`
	TaxCategory     *ResourceIdentifier    `json:"taxCategory,omitempty" yaml:"taxCategory,omitempty"`
	State           *ResourceIdentifier    `json:"state,omitempty" yaml:"state,omitempty"`
	Categories      []*ResourceIdentifier  `json:"categories,omitempty" yaml:"categories,omitempty"`
	MasterVariant   *ProductVariantDraft   `json:"masterVariant,omitempty" yaml:"masterVariant,omitempty"`
	Variants        []*ProductVariantDraft `json:"variants,omitempty" yaml:"variants,omitempty"`
	Publish         bool                   `json:"publish,omitempty" yaml:"publish,omitempty"`
}

// Clone returns a deep copy of the draft.
func (d ProductDraft) Clone() ProductDraft {
	out := d
	out.Name = d.Name.Clone()
	out.Slug = d.Slug.Clone()
	out.Description = d.Description.Clone()
	out.MetaTitle = d.MetaTitle.Clone()
	out.MetaDescription = d.MetaDescription.Clone()
	out.ProductType = d.ProductType.Clone()
	out.TaxCategory = d.TaxCategory.Clone()
	out.State = d.State.Clone()
	out.Categories = cloneIdentifiers(d.Categories)
	out.MasterVariant = d.MasterVariant.Clone()
	if d.Variants != nil {
		out.Variants = make([]*ProductVariantDraft, len(d.Variants))
		for i, v := range d.Variants {
			out.Variants[i] = v.Clone()
		}
	}
	return out
}

// ProductDraftBuilder stages changes to a ProductDraft during resolution.
type ProductDraftBuilder struct {
	draft ProductDraft
}

// NewProductDraftBuilder starts a builder from a copy of d.
func NewProductDraftBuilder(d ProductDraft) *ProductDraftBuilder {
	return &ProductDraftBuilder{draft: d.Clone()}
}

func (b *ProductDraftBuilder) Key() string                         { return b.draft.Key }
func (b *ProductDraftBuilder) ProductType() *ResourceIdentifier    { return b.draft.ProductType }
func (b *ProductDraftBuilder) TaxCategory() *ResourceIdentifier    { return b.draft.TaxCategory }
func (b *ProductDraftBuilder) State() *ResourceIdentifier          { return b.draft.State }
func (b *ProductDraftBuilder) Categories() []*ResourceIdentifier   { return b.draft.Categories }
func (b *ProductDraftBuilder) MasterVariant() *ProductVariantDraft { return b.draft.MasterVariant }
func (b *ProductDraftBuilder) Variants() []*ProductVariantDraft    { return b.draft.Variants }

// SetProductType replaces the product type reference.
func (b *ProductDraftBuilder) SetProductType(ref *ResourceIdentifier) *ProductDraftBuilder {
	b.draft.ProductType = ref
	return b
}

// SetTaxCategory replaces the tax category reference.
func (b *ProductDraftBuilder) SetTaxCategory(ref *ResourceIdentifier) *ProductDraftBuilder {
	b.draft.TaxCategory = ref
	return b
}

// SetState replaces the state reference.
func (b *ProductDraftBuilder) SetState(ref *ResourceIdentifier) *ProductDraftBuilder {
	b.draft.State = ref
	return b
}

// SetCategories replaces the category references.
func (b *ProductDraftBuilder) SetCategories(refs []*ResourceIdentifier) *ProductDraftBuilder {
	b.draft.Categories = refs
	return b
}

// SetMasterVariant replaces the master variant.
func (b *ProductDraftBuilder) SetMasterVariant(v *ProductVariantDraft) *ProductDraftBuilder {
	b.draft.MasterVariant = v
	return b
}

// SetVariants replaces the additional variants.
func (b *ProductDraftBuilder) SetVariants(vs []*ProductVariantDraft) *ProductDraftBuilder {
	b.draft.Variants = vs
	return b
}

// Build returns the staged product draft.
func (b *ProductDraftBuilder) Build() ProductDraft {
	return b.draft.Clone()
}
