// Package draft provides the resource draft types that are reconciled against
// the target catalog.
//
// A draft describes the desired state of one resource and is identified by a
// human-readable key. References to other resources are expressed through
// [ResourceIdentifier], which carries either an internal id or a key.
//
// Drafts are treated as immutable. Reference resolution works on a builder
// created from a draft (for example [NewCategoryDraftBuilder]); the builder is
// owned by exactly one resolution pipeline and converted back into a draft by
// Build once every stage has completed.
//
// This package imports nothing internal. Every other internal package depends
// on it, never the other way round.
//
// Key design constraints:
//   - A nil slice means the field is absent; an empty non-nil slice is an
//     explicit empty list. Both survive a Build unchanged.
//   - Null and blank are different states for reference fields: a nil pointer
//     is null, a pointer to "" is blank.
//   - All JSON and YAML tags use lowerCamelCase to match the catalog API.
package draft
