package resolve

import (
	"context"
	"errors"
	"fmt"

	slogcontext "github.com/veqryn/slog-context"

	"github.com/roach88/ctpsync/internal/draft"
)

// Lookup fetches the internal id for a key. found is false when the backend
// answered but has no such resource; err is reserved for backend failures.
type Lookup func(ctx context.Context, key string) (id string, found bool, err error)

// Create creates an auxiliary resource with the given key and returns its id.
// Implementations return an error matching ErrAlreadyExists when the key is
// already taken, e.g. because a concurrent resolution created it first.
type Create func(ctx context.Context, key string) (id string, err error)

// ErrAlreadyExists reports a uniqueness violation on create.
var ErrAlreadyExists = errors.New("resource with key already exists")

// Reference resolves one kind of reference. It is the single implementation
// of the resolution state machine; resource-specific resolvers only supply the
// wording and the lookup.
type Reference struct {
	// ResourceType names the referenced resource, used in log attributes.
	ResourceType string

	// Lookup resolves keys to ids, usually through the key cache.
	Lookup Lookup

	// NotFound is a format string with one %s verb for the key.
	NotFound string

	// Create, when set, makes missing resources get created on demand
	// instead of failing resolution.
	Create Create
}

// Resolve returns ref rewritten to an id-addressed identifier.
//
// contextMessage prefixes data errors ("Failed to resolve ... with key:'k'.").
// A nil ref resolves to nil, and a ref that already carries an id is returned
// as-is without a lookup.
func (r Reference) Resolve(ctx context.Context, ref *draft.ResourceIdentifier, contextMessage string) (*draft.ResourceIdentifier, error) {
	if ref == nil {
		return nil, nil
	}

	id, key, err := ValidateReferenceIdentifier(ref)
	if err != nil {
		return nil, Wrap(contextMessage, err)
	}
	if id != "" {
		return ref, nil
	}

	resolvedID, found, err := r.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if found {
		return draft.OfID(resolvedID), nil
	}

	if r.Create == nil {
		return nil, Wrap(contextMessage, NewError(KindNotFound, fmt.Sprintf(r.NotFound, key)))
	}
	return r.create(ctx, key, contextMessage)
}

// create runs the ensure-exists path. A uniqueness violation means someone
// else created the resource in the meantime, so the lookup is retried once.
func (r Reference) create(ctx context.Context, key, contextMessage string) (*draft.ResourceIdentifier, error) {
	logger := slogcontext.FromCtx(ctx).With("resource", r.ResourceType, "key", key)

	id, err := r.Create(ctx, key)
	if err == nil {
		logger.Debug("created missing resource on demand", "id", id)
		return draft.OfID(id), nil
	}
	if !errors.Is(err, ErrAlreadyExists) {
		return nil, err
	}

	logger.Debug("resource created concurrently, retrying lookup")
	id, found, err := r.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, Wrap(contextMessage, NewError(KindNotFound, fmt.Sprintf(r.NotFound, key)))
	}
	return draft.OfID(id), nil
}
