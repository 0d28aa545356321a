package resolve

import (
	"context"
	"fmt"

	"github.com/roach88/ctpsync/internal/draft"
)

// Messages of category resolution failures. Each takes a key.
const (
	FailedToResolveCustomTypeOnCategory = "Failed to resolve custom type reference on CategoryDraft with key:'%s'."
	FailedToResolveParent               = "Failed to resolve parent reference on CategoryDraft with key:'%s'."
	ParentCategoryDoesNotExist          = "Parent category with key '%s' doesn't exist."
)

// CategoryResolver resolves category drafts: custom type, then parent, then
// nested assets.
type CategoryResolver struct {
	types   Reference
	parents Reference
	assets  *AssetResolver
}

// NewCategoryResolver returns a resolver looking up types and categories
// through the given lookups.
func NewCategoryResolver(types, categories Lookup) *CategoryResolver {
	return &CategoryResolver{
		types:   TypeReference(types),
		parents: Reference{ResourceType: "category", Lookup: categories, NotFound: ParentCategoryDoesNotExist},
		assets:  NewAssetResolver(types),
	}
}

// ResolveReferences returns a copy of d with all references resolved.
func (r *CategoryResolver) ResolveReferences(ctx context.Context, d draft.CategoryDraft) (draft.CategoryDraft, error) {
	b, err := Run(ctx, draft.NewCategoryDraftBuilder(d),
		r.ResolveCustomTypeReference,
		r.ResolveParentReference,
		r.ResolveAssetsReferences,
	)
	if err != nil {
		return draft.CategoryDraft{}, err
	}
	return b.Build(), nil
}

// ResolveCustomTypeReference rewrites a key-addressed custom type to its id.
func (r *CategoryResolver) ResolveCustomTypeReference(ctx context.Context, b *draft.CategoryDraftBuilder) (*draft.CategoryDraftBuilder, error) {
	return ResolveCustomTypeReference(ctx, r.types, b,
		(*draft.CategoryDraftBuilder).Custom,
		(*draft.CategoryDraftBuilder).SetCustom,
		fmt.Sprintf(FailedToResolveCustomTypeOnCategory, b.Key()))
}

// ResolveParentReference rewrites a key-addressed parent to its id.
func (r *CategoryResolver) ResolveParentReference(ctx context.Context, b *draft.CategoryDraftBuilder) (*draft.CategoryDraftBuilder, error) {
	parent, err := r.parents.Resolve(ctx, b.Parent(), fmt.Sprintf(FailedToResolveParent, b.Key()))
	if err != nil {
		return nil, err
	}
	return b.SetParent(parent), nil
}

// ResolveAssetsReferences resolves the custom types of the nested assets.
// Nil entries are dropped; a nil asset list stays nil.
func (r *CategoryResolver) ResolveAssetsReferences(ctx context.Context, b *draft.CategoryDraftBuilder) (*draft.CategoryDraftBuilder, error) {
	assets, err := r.assets.ResolveAll(ctx, b.Assets())
	if err != nil {
		return nil, err
	}
	return b.SetAssets(assets), nil
}

// ParentCategoryKey returns the key the parent reference of d must be
// resolved by. ok is false when there is nothing to look up: the draft has no
// parent or the parent already carries an id. A parent that can be resolved
// neither way yields the same error parent resolution would.
func ParentCategoryKey(d draft.CategoryDraft) (key string, ok bool, err error) {
	if d.Parent == nil {
		return "", false, nil
	}
	id, key, err := ValidateReferenceIdentifier(d.Parent)
	if err != nil {
		return "", false, Wrap(fmt.Sprintf(FailedToResolveParent, d.Key), err)
	}
	if id != "" {
		return "", false, nil
	}
	return key, true, nil
}
