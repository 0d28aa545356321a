package resolve

import (
	"context"
	"fmt"

	"github.com/roach88/ctpsync/internal/draft"
)

// Messages of inventory entry resolution failures. Each takes a SKU or a
// channel key.
const (
	FailedToResolveCustomTypeOnInventory = "Failed to resolve custom type reference on InventoryEntryDraft with SKU:'%s'."
	FailedToResolveSupplyChannel         = "Failed to resolve supply channel reference on InventoryEntryDraft with SKU:'%s'."
	ChannelDoesNotExist                  = "Channel with key '%s' does not exist."
)

// InventoryResolver resolves inventory entry drafts: custom type, then supply
// channel.
type InventoryResolver struct {
	types    Reference
	channels Reference
}

// InventoryOption configures an InventoryResolver.
type InventoryOption func(*InventoryResolver)

// WithEnsureChannels makes missing supply channels get created through
// create instead of failing resolution.
func WithEnsureChannels(create Create) InventoryOption {
	return func(r *InventoryResolver) {
		r.channels.Create = create
	}
}

// NewInventoryResolver returns a resolver looking up types and channels
// through the given lookups.
func NewInventoryResolver(types, channels Lookup, opts ...InventoryOption) *InventoryResolver {
	r := &InventoryResolver{
		types:    TypeReference(types),
		channels: Reference{ResourceType: "channel", Lookup: channels, NotFound: ChannelDoesNotExist},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveReferences returns a copy of d with all references resolved.
func (r *InventoryResolver) ResolveReferences(ctx context.Context, d draft.InventoryEntryDraft) (draft.InventoryEntryDraft, error) {
	b, err := Run(ctx, draft.NewInventoryEntryDraftBuilder(d),
		r.ResolveCustomTypeReference,
		r.ResolveSupplyChannelReference,
	)
	if err != nil {
		return draft.InventoryEntryDraft{}, err
	}
	return b.Build(), nil
}

// ResolveCustomTypeReference rewrites a key-addressed custom type to its id.
func (r *InventoryResolver) ResolveCustomTypeReference(ctx context.Context, b *draft.InventoryEntryDraftBuilder) (*draft.InventoryEntryDraftBuilder, error) {
	return ResolveCustomTypeReference(ctx, r.types, b,
		(*draft.InventoryEntryDraftBuilder).Custom,
		(*draft.InventoryEntryDraftBuilder).SetCustom,
		fmt.Sprintf(FailedToResolveCustomTypeOnInventory, b.SKU()))
}

// ResolveSupplyChannelReference rewrites a key-addressed supply channel to its
// id, creating the channel first when channels are ensured.
func (r *InventoryResolver) ResolveSupplyChannelReference(ctx context.Context, b *draft.InventoryEntryDraftBuilder) (*draft.InventoryEntryDraftBuilder, error) {
	channel, err := r.channels.Resolve(ctx, b.SupplyChannel(), fmt.Sprintf(FailedToResolveSupplyChannel, b.SKU()))
	if err != nil {
		return nil, err
	}
	return b.SetSupplyChannel(channel), nil
}
