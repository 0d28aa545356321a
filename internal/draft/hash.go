package draft

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes, one per resource type.
// The version suffix allows the hashing scheme to change without collisions.
const (
	DomainCategory       = "ctpsync/category/v1"
	DomainInventoryEntry = "ctpsync/inventory-entry/v1"
	DomainProduct        = "ctpsync/product/v1"
	DomainCartDiscount   = "ctpsync/cart-discount/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the domain-separated content hash of v's canonical JSON.
// Two drafts that differ only in map ordering hash identically.
func Hash(domain string, v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", domain, err)
	}
	return hashWithDomain(domain, canonical), nil
}
