package draft

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestResourceIdentifier_Values(t *testing.T) {
	var nilRef *ResourceIdentifier
	assert.Equal(t, "", nilRef.IDValue())
	assert.Equal(t, "", nilRef.KeyValue())
	assert.False(t, nilRef.HasID())

	assert.True(t, OfID("abc").HasID())
	assert.False(t, OfID("   ").HasID())
	assert.Equal(t, "k", OfKey("k").KeyValue())
	assert.Nil(t, OfKey("k").ID)
}

func TestResourceIdentifier_CloneIsIndependent(t *testing.T) {
	ref := OfKey("k")
	c := ref.Clone()
	*c.Key = "changed"
	assert.Equal(t, "k", ref.KeyValue())
}

func TestCategoryDraftBuilder_DoesNotMutateSource(t *testing.T) {
	src := CategoryDraft{
		Key:    "key",
		Parent: OfKey("parent"),
		Custom: OfTypeKey("type", map[string]any{"f": "v"}),
		Assets: []*AssetDraft{{Key: "a1"}},
	}

	b := NewCategoryDraftBuilder(src)
	b.SetParent(OfID("pid")).SetCustom(OfTypeID("tid", nil))
	b.Assets()[0].Key = "mutated"
	built := b.Build()

	assert.Equal(t, "parent", src.Parent.KeyValue())
	assert.Equal(t, "type", src.Custom.Type.KeyValue())
	assert.Equal(t, "a1", src.Assets[0].Key)
	assert.Equal(t, "pid", built.Parent.IDValue())
	assert.Equal(t, "tid", built.Custom.Type.IDValue())
}

func TestCategoryDraftBuilder_PreservesAssetPresence(t *testing.T) {
	tests := []struct {
		name   string
		assets []*AssetDraft
	}{
		{name: "nil", assets: nil},
		{name: "empty", assets: []*AssetDraft{}},
		{name: "with nil entry", assets: []*AssetDraft{nil, {Key: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built := NewCategoryDraftBuilder(CategoryDraft{Key: "k", Assets: tt.assets}).Build()
			if diff := cmp.Diff(tt.assets, []*AssetDraft(built.Assets)); diff != "" {
				t.Errorf("assets mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.assets == nil, built.Assets == nil)
		})
	}
}

func TestProductDraft_CloneDeep(t *testing.T) {
	src := ProductDraft{
		Key:           "p",
		ProductType:   OfKey("pt"),
		Categories:    []*ResourceIdentifier{OfKey("c1"), nil},
		MasterVariant: &ProductVariantDraft{SKU: "s1", Assets: []*AssetDraft{{Key: "a"}}},
	}
	c := src.Clone()
	c.MasterVariant.Assets[0].Key = "x"
	*c.Categories[0].Key = "y"

	assert.Equal(t, "a", src.MasterVariant.Assets[0].Key)
	assert.Equal(t, "c1", src.Categories[0].KeyValue())
	assert.Nil(t, c.Categories[1])
}

func TestLocalizedString_Get(t *testing.T) {
	l := OfLocale(language.German, "Hallo")
	v, ok := l.Get(language.German)
	assert.True(t, ok)
	assert.Equal(t, "Hallo", v)
	_, ok = l.Get(language.English)
	assert.False(t, ok)
	require.Len(t, l.Tags(), 1)
	assert.Equal(t, "de", l.Tags()[0].String())
}

func TestParseDocument(t *testing.T) {
	data := []byte(`
categories:
  - key: shoes
    name: {EN: Shoes}
    slug: {en: shoes}
    parent: {key: apparel}
    custom:
      type: {key: category-type}
      fields: {color: red}
    assets:
      - ~
      - key: img
        custom:
          type: {key: asset-type}
  - key: empty-assets
    name: {en: Empty}
    slug: {en: empty}
    assets: []
inventoryEntries:
  - sku: "1000"
    quantityOnStock: 10
    supplyChannel: {key: warehouse}
`)
	doc, err := ParseDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Categories, 2)
	assert.Equal(t, 3, doc.Len())

	shoes := doc.Categories[0]
	assert.Equal(t, "Shoes", shoes.Name["en"], "language tags are canonicalized")
	assert.Equal(t, "apparel", shoes.Parent.KeyValue())
	assert.Nil(t, shoes.Parent.ID)
	assert.Equal(t, "red", shoes.Custom.Fields["color"])
	require.Len(t, shoes.Assets, 2)
	assert.Nil(t, shoes.Assets[0])
	assert.Equal(t, "asset-type", shoes.Assets[1].Custom.Type.KeyValue())

	assert.NotNil(t, doc.Categories[1].Assets)
	assert.Empty(t, doc.Categories[1].Assets)

	assert.Equal(t, "warehouse", doc.InventoryEntries[0].SupplyChannel.KeyValue())
}

func TestParseDocument_RejectsUnknownFields(t *testing.T) {
	_, err := ParseDocument([]byte("categories:\n  - key: a\n    parnet: {key: b}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parnet")
}

func TestParseDocument_RejectsInvalidLanguageTag(t *testing.T) {
	_, err := ParseDocument([]byte("categories:\n  - key: a\n    name: {'not a tag!': x}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid language tag")
}

func TestParseDocument_Empty(t *testing.T) {
	doc, err := ParseDocument(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}
