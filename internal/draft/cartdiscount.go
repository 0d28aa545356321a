package draft

// Money is an amount in the smallest currency unit.
type Money struct {
	CentAmount   int64  `json:"centAmount" yaml:"centAmount"`
	CurrencyCode string `json:"currencyCode" yaml:"currencyCode"`
}

// CartDiscountValue is either relative (Permyriad) or absolute (Money).
type CartDiscountValue struct {
	Type      string  `json:"type" yaml:"type"`
	Permyriad *int64  `json:"permyriad,omitempty" yaml:"permyriad,omitempty"`
	Money     []Money `json:"money,omitempty" yaml:"money,omitempty"`
}

// CartDiscountDraft describes the desired state of a cart discount.
type CartDiscountDraft struct {
	Key                  string             `json:"key" yaml:"key"`
	Name                 LocalizedString    `json:"name" yaml:"name"`
	Description          LocalizedString    `json:"description,omitempty" yaml:"description,omitempty"`
	CartPredicate        string             `json:"cartPredicate" yaml:"cartPredicate"`
	Value                CartDiscountValue  `json:"value" yaml:"value"`
	SortOrder            string             `json:"sortOrder" yaml:"sortOrder"`
	IsActive             *bool              `json:"isActive,omitempty" yaml:"isActive,omitempty"`
	RequiresDiscountCode bool               `json:"requiresDiscountCode,omitempty" yaml:"requiresDiscountCode,omitempty"`
	Custom               *CustomFieldsDraft `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// Clone returns a deep copy of the draft.
func (d CartDiscountDraft) Clone() CartDiscountDraft {
	out := d
	out.Name = d.Name.Clone()
	out.Description = d.Description.Clone()
	if d.Value.Permyriad != nil {
		p := *d.Value.Permyriad
		out.Value.Permyriad = &p
	}
	if d.Value.Money != nil {
		out.Value.Money = append([]Money{}, d.Value.Money...)
	}
	if d.IsActive != nil {
		active := *d.IsActive
		out.IsActive = &active
	}
	out.Custom = d.Custom.Clone()
	return out
}

// CartDiscountDraftBuilder stages changes to a CartDiscountDraft during resolution.
type CartDiscountDraftBuilder struct {
	draft CartDiscountDraft
}

// NewCartDiscountDraftBuilder starts a builder from a copy of d.
func NewCartDiscountDraftBuilder(d CartDiscountDraft) *CartDiscountDraftBuilder {
	return &CartDiscountDraftBuilder{draft: d.Clone()}
}

func (b *CartDiscountDraftBuilder) Key() string                { return b.draft.Key }
func (b *CartDiscountDraftBuilder) Custom() *CustomFieldsDraft { return b.draft.Custom }

// SetCustom replaces the custom fields.
func (b *CartDiscountDraftBuilder) SetCustom(c *CustomFieldsDraft) *CartDiscountDraftBuilder {
	b.draft.Custom = c
	return b
}

// Build returns the staged cart discount draft.
func (b *CartDiscountDraftBuilder) Build() CartDiscountDraft {
	return b.draft.Clone()
}
