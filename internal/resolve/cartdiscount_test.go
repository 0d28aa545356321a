package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ctpsync/internal/draft"
	"github.com/roach88/ctpsync/internal/testutil"
)

func TestCartDiscountResolver(t *testing.T) {
	types := testutil.NewFakeBackend("type", map[string]string{"discountType": "typeId"})
	r := NewCartDiscountResolver(types.Lookup)
	permyriad := int64(1000)

	d := draft.CartDiscountDraft{
		Key:           "ten-off",
		Name:          draft.OfEnglish("10% off"),
		CartPredicate: "totalPrice > \"10.00 EUR\"",
		Value:         draft.CartDiscountValue{Type: "relative", Permyriad: &permyriad},
		SortOrder:     "0.1",
		Custom:        draft.OfTypeKey("discountType", map[string]any{"campaign": "spring"}),
	}

	got, err := r.ResolveReferences(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "typeId", got.Custom.Type.IDValue())
	assert.Equal(t, "spring", got.Custom.Fields["campaign"])

	d.Custom = draft.OfTypeKey("other", nil)
	_, err = r.ResolveReferences(context.Background(), d)
	assert.EqualError(t, err, "Failed to resolve custom type reference on CartDiscountDraft with key:'ten-off'. Reason: Type with key 'other' doesn't exist.")

	d.Custom = nil
	got, err = r.ResolveReferences(context.Background(), d)
	require.NoError(t, err)
	assert.Nil(t, got.Custom)
}
