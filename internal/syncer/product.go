package syncer

import (
	"context"

	"github.com/roach88/ctpsync/internal/draft"
	"github.com/roach88/ctpsync/internal/resolve"
	"github.com/roach88/ctpsync/internal/store"
)

// NewProductSync returns a sync for product drafts.
func NewProductSync(w Writer, l Lookups, opts Options) *Sync[draft.ProductDraft] {
	r := resolve.NewProductResolver(resolve.ProductLookups{
		Types:         l.Lookup(store.TypeType),
		ProductTypes:  l.Lookup(store.TypeProductType),
		TaxCategories: l.Lookup(store.TypeTaxCategory),
		States:        l.Lookup(store.TypeState),
		Categories:    l.Lookup(store.TypeCategory),
	})

	return &Sync[draft.ProductDraft]{
		kind: kind[draft.ProductDraft]{
			resource:     "products",
			resourceType: store.TypeProduct,
			draftName:    "ProductDraft",
			keyName:      "key",
			domain:       draft.DomainProduct,
			key:          func(d draft.ProductDraft) string { return d.Key },
		},
		resolve: r.ResolveReferences,
		writer:  w,
		cache:   l.Cache(),
		opts:    opts.withDefaults(),
		warmUp: func(ctx context.Context, drafts []draft.ProductDraft) {
			var categories, productTypes []*draft.ResourceIdentifier
			for _, d := range drafts {
				categories = append(categories, d.Categories...)
				productTypes = append(productTypes, d.ProductType)
			}
			warmUp(ctx, l, store.TypeCategory, keyedReferences(categories))
			warmUp(ctx, l, store.TypeProductType, keyedReferences(productTypes))
		},
	}
}
