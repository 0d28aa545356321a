package resolve

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/ctpsync/internal/draft"
)

// FailedToResolveCustomTypeOnAsset is the context message for asset custom types.
const FailedToResolveCustomTypeOnAsset = "Failed to resolve custom type reference on AssetDraft with key:'%s'."

// AssetResolver resolves the references of asset drafts nested in categories
// and product variants.
type AssetResolver struct {
	types Reference
}

// NewAssetResolver returns an AssetResolver that resolves custom types through types.
func NewAssetResolver(types Lookup) *AssetResolver {
	return &AssetResolver{types: TypeReference(types)}
}

// ResolveReferences returns a copy of asset with all references resolved.
func (r *AssetResolver) ResolveReferences(ctx context.Context, asset *draft.AssetDraft) (*draft.AssetDraft, error) {
	b, err := Run(ctx, draft.NewAssetDraftBuilder(asset), r.ResolveCustomTypeReference)
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// ResolveCustomTypeReference resolves the custom type held by the builder.
func (r *AssetResolver) ResolveCustomTypeReference(ctx context.Context, b *draft.AssetDraftBuilder) (*draft.AssetDraftBuilder, error) {
	return ResolveCustomTypeReference(ctx, r.types, b,
		(*draft.AssetDraftBuilder).Custom,
		(*draft.AssetDraftBuilder).SetCustom,
		fmt.Sprintf(FailedToResolveCustomTypeOnAsset, b.Key()))
}

// ResolveAll resolves every asset in the list concurrently.
//
// Nil entries are dropped and the order of the remaining assets is kept. A nil
// list stays nil, while an empty list (or one holding only nil entries)
// resolves to an empty, non-nil list. When several assets fail, the error of
// the first failing asset in list order is returned and no assets are.
func (r *AssetResolver) ResolveAll(ctx context.Context, assets []*draft.AssetDraft) ([]*draft.AssetDraft, error) {
	if assets == nil {
		return nil, nil
	}

	resolved := make([]*draft.AssetDraft, len(assets))
	errs := make([]error, len(assets))

	var g errgroup.Group
	for i, asset := range assets {
		if asset == nil {
			continue
		}
		g.Go(func() error {
			resolved[i], errs[i] = r.ResolveReferences(ctx, asset)
			return errs[i]
		})
	}
	_ = g.Wait()

	out := make([]*draft.AssetDraft, 0, len(assets))
	for i := range assets {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if resolved[i] != nil {
			out = append(out, resolved[i])
		}
	}
	return out, nil
}
