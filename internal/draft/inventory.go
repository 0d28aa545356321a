package draft

import "time"

// InventoryEntryDraft describes stock for one SKU, optionally scoped to a supply channel.
// Inventory entries are identified by SKU (and channel) rather than by key.
type InventoryEntryDraft struct {
	SKU               string              `json:"sku" yaml:"sku"`
	QuantityOnStock   int64               `json:"quantityOnStock" yaml:"quantityOnStock"`
	RestockableInDays *int                `json:"restockableInDays,omitempty" yaml:"restockableInDays,omitempty"`
	ExpectedDelivery  *time.Time          `json:"expectedDelivery,omitempty" yaml:"expectedDelivery,omitempty"`
	SupplyChannel     *ResourceIdentifier `json:"supplyChannel,omitempty" yaml:"supplyChannel,omitempty"`
	Custom            *CustomFieldsDraft  `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// Clone returns a deep copy of the draft.
func (d InventoryEntryDraft) Clone() InventoryEntryDraft {
	out := d
	if d.RestockableInDays != nil {
		days := *d.RestockableInDays
		out.RestockableInDays = &days
	}
	if d.ExpectedDelivery != nil {
		at := *d.ExpectedDelivery
		out.ExpectedDelivery = &at
	}
	out.SupplyChannel = d.SupplyChannel.Clone()
	out.Custom = d.Custom.Clone()
	return out
}

// InventoryEntryDraftBuilder stages changes to an InventoryEntryDraft during resolution.
type InventoryEntryDraftBuilder struct {
	draft InventoryEntryDraft
}

// NewInventoryEntryDraftBuilder starts a builder from a copy of d.
func NewInventoryEntryDraftBuilder(d InventoryEntryDraft) *InventoryEntryDraftBuilder {
	return &InventoryEntryDraftBuilder{draft: d.Clone()}
}

func (b *InventoryEntryDraftBuilder) SKU() string { return b.draft.SKU }
func (b *InventoryEntryDraftBuilder) SupplyChannel() *ResourceIdentifier {
	return b.draft.SupplyChannel
}
func (b *InventoryEntryDraftBuilder) Custom() *CustomFieldsDraft { return b.draft.Custom }

// SetSupplyChannel replaces the supply channel reference.
func (b *InventoryEntryDraftBuilder) SetSupplyChannel(ref *ResourceIdentifier) *InventoryEntryDraftBuilder {
	b.draft.SupplyChannel = ref
	return b
}

// SetCustom replaces the custom fields.
func (b *InventoryEntryDraftBuilder) SetCustom(c *CustomFieldsDraft) *InventoryEntryDraftBuilder {
	b.draft.Custom = c
	return b
}

// Build returns the staged inventory entry draft.
func (b *InventoryEntryDraftBuilder) Build() InventoryEntryDraft {
	return b.draft.Clone()
}
