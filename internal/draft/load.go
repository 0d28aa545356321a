package draft

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a batch of drafts.
type Document struct {
	Categories       []CategoryDraft       `yaml:"categories,omitempty" json:"categories,omitempty"`
	InventoryEntries []InventoryEntryDraft `yaml:"inventoryEntries,omitempty" json:"inventoryEntries,omitempty"`
	Products         []ProductDraft        `yaml:"products,omitempty" json:"products,omitempty"`
	CartDiscounts    []CartDiscountDraft   `yaml:"cartDiscounts,omitempty" json:"cartDiscounts,omitempty"`
}

// Len returns the total number of drafts in the document.
func (d *Document) Len() int {
	return len(d.Categories) + len(d.InventoryEntries) + len(d.Products) + len(d.CartDiscounts)
}

// LoadDocument reads and parses a YAML drafts file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read drafts file: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument parses YAML drafts. Unknown fields are rejected so that typos
// ("parnet:") fail loudly instead of silently dropping a reference.
// An empty input yields an empty document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}
