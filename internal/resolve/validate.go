package resolve

import "github.com/roach88/ctpsync/internal/draft"

// ValidateReferenceIdentifier checks a reference and tells the caller how to
// resolve it. Exactly one of id and key is non-empty on success:
//   - id is set when the reference carries a non-blank id, which is trusted
//   - key is set when the reference must be looked up by key
//
// A present-but-blank id with no key fails with KindBlankID. A null or blank
// key fails with KindBlankKey. The check is pure and never performs I/O.
func ValidateReferenceIdentifier(ref *draft.ResourceIdentifier) (id, key string, err error) {
	switch {
	case ref == nil:
		return "", "", NewError(KindBlankKey, BlankKeyValueOnResourceIdentifier)
	case ref.HasID():
		return *ref.ID, "", nil
	case ref.Key != nil:
		if draft.IsBlank(*ref.Key) {
			return "", "", NewError(KindBlankKey, BlankKeyValueOnResourceIdentifier)
		}
		return "", *ref.Key, nil
	case ref.ID != nil:
		return "", "", NewError(KindBlankID, BlankIDValueOnResourceIdentifier)
	default:
		return "", "", NewError(KindBlankKey, BlankKeyValueOnResourceIdentifier)
	}
}
