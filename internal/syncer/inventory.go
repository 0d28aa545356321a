package syncer

import (
	"context"

	"github.com/roach88/ctpsync/internal/draft"
	"github.com/roach88/ctpsync/internal/resolve"
	"github.com/roach88/ctpsync/internal/store"
)

// NewInventorySync returns a sync for inventory entry drafts, keyed by SKU.
// With Options.EnsureChannels set, missing supply channels are created.
func NewInventorySync(w Writer, l Lookups, opts Options) *Sync[draft.InventoryEntryDraft] {
	var ropts []resolve.InventoryOption
	if opts.EnsureChannels {
		ropts = append(ropts, resolve.WithEnsureChannels(l.Create(store.TypeChannel)))
	}
	r := resolve.NewInventoryResolver(l.Lookup(store.TypeType), l.Lookup(store.TypeChannel), ropts...)

	return &Sync[draft.InventoryEntryDraft]{
		kind: kind[draft.InventoryEntryDraft]{
			resource:     "inventory entries",
			resourceType: store.TypeInventoryEntry,
			draftName:    "InventoryEntryDraft",
			keyName:      "SKU",
			domain:       draft.DomainInventoryEntry,
			key:          func(d draft.InventoryEntryDraft) string { return d.SKU },
		},
		resolve: r.ResolveReferences,
		writer:  w,
		cache:   l.Cache(),
		opts:    opts.withDefaults(),
		warmUp: func(ctx context.Context, drafts []draft.InventoryEntryDraft) {
			refs := make([]*draft.ResourceIdentifier, 0, len(drafts))
			for _, d := range drafts {
				refs = append(refs, d.SupplyChannel)
			}
			warmUp(ctx, l, store.TypeChannel, keyedReferences(refs))
		},
	}
}

// keyedReferences collects the keys of key-addressed references.
func keyedReferences(refs []*draft.ResourceIdentifier) []string {
	var keys []string
	for _, ref := range refs {
		if _, key, err := resolve.ValidateReferenceIdentifier(ref); err == nil && key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
