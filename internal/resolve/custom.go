package resolve

import (
	"context"

	"github.com/roach88/ctpsync/internal/draft"
)

// TypeDoesNotExist is the not-found message for custom types.
const TypeDoesNotExist = "Type with key '%s' doesn't exist."

// TypeReference returns the Reference used for custom type references.
func TypeReference(types Lookup) Reference {
	return Reference{ResourceType: "type", Lookup: types, NotFound: TypeDoesNotExist}
}

// ResolveCustomTypeReference resolves the custom type of any draft builder
// that carries custom fields. get and set access the builder's custom fields.
//
// A builder without custom fields is returned unchanged. Only the type
// reference is rewritten; field values are carried over as they are.
func ResolveCustomTypeReference[B any](
	ctx context.Context,
	types Reference,
	b B,
	get func(B) *draft.CustomFieldsDraft,
	set func(B, *draft.CustomFieldsDraft) B,
	contextMessage string,
) (B, error) {
	custom := get(b)
	if custom == nil {
		return b, nil
	}

	ref := custom.Type
	if ref == nil {
		// Custom fields without a type are malformed: treat as a null key.
		ref = &draft.ResourceIdentifier{}
	}

	resolved, err := types.Resolve(ctx, ref, contextMessage)
	if err != nil {
		var zero B
		return zero, err
	}
	if resolved == custom.Type {
		return b, nil
	}
	return set(b, &draft.CustomFieldsDraft{Type: resolved, Fields: custom.Fields}), nil
}
