package draft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{"b": 1, "a": "x", "c": true})
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":1,"c":true}`, string(got))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{"p": "a<b>&c"})
	require.NoError(t, err)
	assert.Equal(t, `{"p":"a<b>&c"}`, string(got))
}

func TestMarshalCanonical_LineSeparatorsUnescaped(t *testing.T) {
	got, err := MarshalCanonical("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(got))
}

func TestMarshalCanonical_ControlCharacters(t *testing.T) {
	got, err := MarshalCanonical("tab\there\x01")
	require.NoError(t, err)
	assert.Equal(t, `"tab\there\u0001"`, string(got))
}

func TestMarshalCanonical_NFCNormalizes(t *testing.T) {
	a, err := MarshalCanonical("e\u0301")
	require.NoError(t, err)
	b, err := MarshalCanonical("\u00e9")
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestMarshalCanonical_UTF16KeyOrder(t *testing.T) {
	// U+1F600 encodes as surrogates 0xD83D 0xDE00, which sorts before U+FF61
	// in UTF-16 even though its UTF-8 encoding sorts after.
	got, err := MarshalCanonical(map[string]any{"\uff61": 1, "\U0001F600": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":2,\"\uff61\":1}", string(got))
}

func TestMarshalCanonical_Draft(t *testing.T) {
	d := CategoryDraft{
		Key:    "key",
		Name:   OfEnglish("name"),
		Slug:   OfEnglish("slug"),
		Parent: OfID("p1"),
	}
	got, err := MarshalCanonical(d)
	require.NoError(t, err)
	assert.Equal(t, `{"key":"key","name":{"en":"name"},"parent":{"id":"p1"},"slug":{"en":"slug"}}`, string(got))
}

func hashOf(t *testing.T, domain string, v any) string {
	t.Helper()
	h, err := Hash(domain, v)
	require.NoError(t, err)
	return h
}

func TestHash_StableAcrossMapOrder(t *testing.T) {
	a := CustomFieldsDraft{Type: OfID("t"), Fields: map[string]any{"x": 1, "y": "z"}}
	b := CustomFieldsDraft{Type: OfID("t"), Fields: map[string]any{"y": "z", "x": 1}}
	assert.Equal(t, hashOf(t, DomainCategory, a), hashOf(t, DomainCategory, b))
}

func TestHash_DomainSeparation(t *testing.T) {
	d := CategoryDraft{Key: "k"}
	assert.NotEqual(t, hashOf(t, DomainCategory, d), hashOf(t, DomainProduct, d))
	assert.Len(t, hashOf(t, DomainCategory, d), 64)
}

func TestAssets_AbsentAndEmptyStayDistinct(t *testing.T) {
	tests := []struct {
		name     string
		assets   AssetList
		wantJSON string
		wantYAML string
	}{
		{name: "absent", assets: nil, wantJSON: `{"key":"k","name":null,"slug":null}`, wantYAML: ""},
		{name: "empty", assets: AssetList{}, wantJSON: `{"assets":[],"key":"k","name":null,"slug":null}`, wantYAML: "assets: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CategoryDraft{Key: "k", Assets: tt.assets}
			got, err := MarshalCanonical(d)
			require.NoError(t, err)
			assert.Equal(t, tt.wantJSON, string(got))

			out, err := yaml.Marshal(d)
			require.NoError(t, err)
			if tt.wantYAML == "" {
				assert.NotContains(t, string(out), "assets")
			} else {
				assert.Contains(t, string(out), tt.wantYAML)
			}

			v, err := yaml.Marshal(ProductVariantDraft{SKU: "s", Assets: tt.assets})
			require.NoError(t, err)
			assert.Equal(t, tt.wantYAML != "", strings.Contains(string(v), "assets: []"))
		})
	}
}
