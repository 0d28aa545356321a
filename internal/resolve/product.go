package resolve

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/ctpsync/internal/draft"
)

// Context messages take the product key; not-found messages take the key
// that was looked up.
const (
	FailedToResolveProductType = "Failed to resolve product type reference on ProductDraft with key:'%s'."
	FailedToResolveTaxCategory = "Failed to resolve tax category reference on ProductDraft with key:'%s'."
	FailedToResolveState       = "Failed to resolve state reference on ProductDraft with key:'%s'."
	FailedToResolveCategories  = "Failed to resolve category reference on ProductDraft with key:'%s'."

	ProductTypeDoesNotExist = "Product type with key '%s' doesn't exist."
	TaxCategoryDoesNotExist = "Tax category with key '%s' doesn't exist."
	StateDoesNotExist       = "State with key '%s' doesn't exist."
	CategoryDoesNotExist    = "Category with key '%s' doesn't exist."
)

// ProductLookups bundles the lookups a ProductResolver needs.
type ProductLookups struct {
	Types         Lookup
	ProductTypes  Lookup
	TaxCategories Lookup
	States        Lookup
	Categories    Lookup
}

// ProductResolver resolves product drafts: product type, tax category,
// state, categories, then the assets of every variant.
type ProductResolver struct {
	productTypes  Reference
	taxCategories Reference
	states        Reference
	categories    Reference
	assets        *AssetResolver
}

// NewProductResolver returns a resolver over the given lookups. Variant
// assets resolve their custom types through l.Types.
func NewProductResolver(l ProductLookups) *ProductResolver {
	return &ProductResolver{
		productTypes:  Reference{ResourceType: "product-type", Lookup: l.ProductTypes, NotFound: ProductTypeDoesNotExist},
		taxCategories: Reference{ResourceType: "tax-category", Lookup: l.TaxCategories, NotFound: TaxCategoryDoesNotExist},
		states:        Reference{ResourceType: "state", Lookup: l.States, NotFound: StateDoesNotExist},
		categories:    Reference{ResourceType: "category", Lookup: l.Categories, NotFound: CategoryDoesNotExist},
		assets:        NewAssetResolver(l.Types),
	}
}

// ResolveReferences returns a copy of d with all references resolved.
func (r *ProductResolver) ResolveReferences(ctx context.Context, d draft.ProductDraft) (draft.ProductDraft, error) {
	b, err := Run(ctx, draft.NewProductDraftBuilder(d),
		r.ResolveProductTypeReference,
		r.ResolveTaxCategoryReference,
		r.ResolveStateReference,
		r.ResolveCategoryReferences,
		r.ResolveVariantsAssetsReferences,
	)
	if err != nil {
		return draft.ProductDraft{}, err
	}
	return b.Build(), nil
}

// ResolveProductTypeReference rewrites a key-addressed product type to its id.
func (r *ProductResolver) ResolveProductTypeReference(ctx context.Context, b *draft.ProductDraftBuilder) (*draft.ProductDraftBuilder, error) {
	ref, err := r.productTypes.Resolve(ctx, b.ProductType(), fmt.Sprintf(FailedToResolveProductType, b.Key()))
	if err != nil {
		return nil, err
	}
	return b.SetProductType(ref), nil
}

// ResolveTaxCategoryReference rewrites a key-addressed tax category to its id.
// A product without a tax category is left unchanged.
func (r *ProductResolver) ResolveTaxCategoryReference(ctx context.Context, b *draft.ProductDraftBuilder) (*draft.ProductDraftBuilder, error) {
	ref, err := r.taxCategories.Resolve(ctx, b.TaxCategory(), fmt.Sprintf(FailedToResolveTaxCategory, b.Key()))
	if err != nil {
		return nil, err
	}
	return b.SetTaxCategory(ref), nil
}

// ResolveStateReference rewrites a key-addressed state to its id.
func (r *ProductResolver) ResolveStateReference(ctx context.Context, b *draft.ProductDraftBuilder) (*draft.ProductDraftBuilder, error) {
	ref, err := r.states.Resolve(ctx, b.State(), fmt.Sprintf(FailedToResolveState, b.Key()))
	if err != nil {
		return nil, err
	}
	return b.SetState(ref), nil
}

// ResolveCategoryReferences resolves every category reference, keeping their
// order and dropping nil entries.
func (r *ProductResolver) ResolveCategoryReferences(ctx context.Context, b *draft.ProductDraftBuilder) (*draft.ProductDraftBuilder, error) {
	refs := b.Categories()
	if refs == nil {
		return b, nil
	}

	contextMessage := fmt.Sprintf(FailedToResolveCategories, b.Key())
	resolved := make([]*draft.ResourceIdentifier, len(refs))
	errs := make([]error, len(refs))

	var g errgroup.Group
	for i, ref := range refs {
		if ref == nil {
			continue
		}
		g.Go(func() error {
			resolved[i], errs[i] = r.categories.Resolve(ctx, ref, contextMessage)
			return errs[i]
		})
	}
	_ = g.Wait()

	out := make([]*draft.ResourceIdentifier, 0, len(refs))
	for i := range refs {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if resolved[i] != nil {
			out = append(out, resolved[i])
		}
	}
	return b.SetCategories(out), nil
}

// ResolveVariantsAssetsReferences resolves the assets of the master variant
// and of every additional variant, in that order.
func (r *ProductResolver) ResolveVariantsAssetsReferences(ctx context.Context, b *draft.ProductDraftBuilder) (*draft.ProductDraftBuilder, error) {
	master, err := r.resolveVariant(ctx, b.MasterVariant())
	if err != nil {
		return nil, err
	}
	b.SetMasterVariant(master)

	variants := b.Variants()
	if variants == nil {
		return b, nil
	}
	out := make([]*draft.ProductVariantDraft, 0, len(variants))
	for _, v := range variants {
		if v == nil {
			continue
		}
		resolved, err := r.resolveVariant(ctx, v)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return b.SetVariants(out), nil
}

func (r *ProductResolver) resolveVariant(ctx context.Context, v *draft.ProductVariantDraft) (*draft.ProductVariantDraft, error) {
	if v == nil {
		return nil, nil
	}
	assets, err := r.assets.ResolveAll(ctx, v.Assets)
	if err != nil {
		return nil, err
	}
	out := v.Clone()
	out.Assets = assets
	return out, nil
}
