package syncer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ctpsync/internal/draft"
	"github.com/roach88/ctpsync/internal/store"
)

func TestSyncDocument(t *testing.T) {
	f := newFixture(t)
	f.seed(t, store.TypeProductType, "shirt")

	doc := &draft.Document{
		Categories: []draft.CategoryDraft{category("men", ""), category("shirts", "men")},
		Products: []draft.ProductDraft{{
			Key:         "p1",
			ProductType: draft.OfKey("shirt"),
			Categories:  []*draft.ResourceIdentifier{draft.OfKey("shirts")},
		}},
	}

	stats, err := SyncDocument(t.Context(), f.store, f.svc, doc, f.options())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, Statistics{Resource: "categories", RunID: "run-1", Processed: 2, Created: 2}, stats[0])
	assert.Equal(t, Statistics{Resource: "products", RunID: "run-1", Processed: 1, Created: 1}, stats[1])
	assert.Empty(t, f.errors)
}

func TestSyncDocument_Empty(t *testing.T) {
	f := newFixture(t)
	stats, err := SyncDocument(t.Context(), f.store, f.svc, &draft.Document{}, f.options())
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestSyncDocument_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	doc := &draft.Document{
		Categories:    []draft.CategoryDraft{category("a", "")},
		CartDiscounts: []draft.CartDiscountDraft{{Key: "d"}},
	}
	stats, err := SyncDocument(ctx, f.store, f.svc, doc, f.options())
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, stats, 1)
	assert.Equal(t, "categories", stats[0].Resource)
}

func TestResolveDocument(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, store.TypeCategory, "root")

	doc := &draft.Document{
		Categories: []draft.CategoryDraft{
			category("child", "root"),
			category("orphan", "missing"),
			category("", ""),
		},
	}

	resolved, errs := ResolveDocument(t.Context(), f.svc, doc, f.options())
	require.Len(t, resolved.Categories, 1)
	assert.Equal(t, ids["root"], resolved.Categories[0].Parent.IDValue())
	assert.Nil(t, resolved.Categories[0].Parent.Key)
	assert.Nil(t, resolved.Products)

	require.Len(t, errs, 2)
	code, ok := CodeOf(errs[0])
	require.True(t, ok)
	assert.Equal(t, ErrCodeResolution, code)
	assert.EqualError(t, errs[0],
		"Failed to resolve references on CategoryDraft with key:'orphan'. Reason: Failed to resolve parent reference on CategoryDraft with key:'orphan'. Reason: Parent category with key 'missing' doesn't exist.")
	code, ok = CodeOf(errs[1])
	require.True(t, ok)
	assert.Equal(t, ErrCodeMissingKey, code)

	// Nothing was written.
	n, err := f.store.Count(t.Context(), store.TypeCategory)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// The input is untouched.
	assert.Equal(t, "root", doc.Categories[0].Parent.KeyValue())
}

func TestResolveDocument_DoesNotCreateChannels(t *testing.T) {
	f := newFixture(t)
	opts := f.options()
	opts.EnsureChannels = true

	doc := &draft.Document{
		InventoryEntries: []draft.InventoryEntryDraft{{SKU: "sku-1", SupplyChannel: draft.OfKey("berlin")}},
	}

	resolved, errs := ResolveDocument(t.Context(), f.svc, doc, opts)
	assert.Empty(t, resolved.InventoryEntries)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0],
		"Failed to resolve references on InventoryEntryDraft with SKU:'sku-1'. Reason: Failed to resolve supply channel reference on InventoryEntryDraft with SKU:'sku-1'. Reason: Channel with key 'berlin' does not exist.")

	n, err := f.store.Count(t.Context(), store.TypeChannel)
	require.NoError(t, err)
	assert.Zero(t, n)
}
