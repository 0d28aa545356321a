package resolve

import (
	"context"
	"fmt"

	"github.com/roach88/ctpsync/internal/draft"
)

const FailedToResolveCustomTypeOnCartDiscount = "Failed to resolve custom type reference on CartDiscountDraft with key:'%s'."

// CartDiscountResolver resolves the custom type of cart discount drafts.
type CartDiscountResolver struct {
	types Reference
}

// NewCartDiscountResolver returns a resolver looking up custom types through types.
func NewCartDiscountResolver(types Lookup) *CartDiscountResolver {
	return &CartDiscountResolver{types: TypeReference(types)}
}

// ResolveReferences returns a copy of d with all references resolved.
func (r *CartDiscountResolver) ResolveReferences(ctx context.Context, d draft.CartDiscountDraft) (draft.CartDiscountDraft, error) {
	b, err := Run(ctx, draft.NewCartDiscountDraftBuilder(d), r.ResolveCustomTypeReference)
	if err != nil {
		return draft.CartDiscountDraft{}, err
	}
	return b.Build(), nil
}

// ResolveCustomTypeReference rewrites a key-addressed custom type to its id.
func (r *CartDiscountResolver) ResolveCustomTypeReference(ctx context.Context, b *draft.CartDiscountDraftBuilder) (*draft.CartDiscountDraftBuilder, error) {
	return ResolveCustomTypeReference(ctx, r.types, b,
		(*draft.CartDiscountDraftBuilder).Custom,
		(*draft.CartDiscountDraftBuilder).SetCustom,
		fmt.Sprintf(FailedToResolveCustomTypeOnCartDiscount, b.Key()))
}
