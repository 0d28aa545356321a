package syncer

import (
	"github.com/roach88/ctpsync/internal/draft"
	"github.com/roach88/ctpsync/internal/resolve"
	"github.com/roach88/ctpsync/internal/store"
)

// NewCartDiscountSync returns a sync for cart discount drafts.
func NewCartDiscountSync(w Writer, l Lookups, opts Options) *Sync[draft.CartDiscountDraft] {
	r := resolve.NewCartDiscountResolver(l.Lookup(store.TypeType))
	return &Sync[draft.CartDiscountDraft]{
		kind: kind[draft.CartDiscountDraft]{
			resource:     "cart discounts",
			resourceType: store.TypeCartDiscount,
			draftName:    "CartDiscountDraft",
			keyName:      "key",
			domain:       draft.DomainCartDiscount,
			key:          func(d draft.CartDiscountDraft) string { return d.Key },
		},
		resolve: r.ResolveReferences,
		writer:  w,
		cache:   l.Cache(),
		opts:    opts.withDefaults(),
	}
}
