package resolve

import (
	"errors"
	"fmt"
)

// Kind categorizes reference resolution failures.
type Kind string

const (
	// KindBlankID indicates a reference whose id was present but blank.
	KindBlankID Kind = "BLANK_ID"

	// KindBlankKey indicates a key-addressed reference whose key was null or blank.
	KindBlankKey Kind = "BLANK_KEY"

	// KindNotFound indicates the lookup succeeded but no resource has the key.
	KindNotFound Kind = "NOT_FOUND"
)

// Messages for blank reference values.
const (
	BlankIDValueOnResourceIdentifier  = "The value of the 'id' field cannot be blank."
	BlankKeyValueOnResourceIdentifier = "The value of the 'key' field cannot be blank."
)

// ReferenceResolutionError is returned when a draft's reference cannot be
// resolved because of the data itself (as opposed to a backend failure).
//
// Message holds the full, human-readable chain, e.g.
//
//	Failed to resolve parent reference on CategoryDraft with key:'key'. Reason: Parent category with key 'p' doesn't exist.
type ReferenceResolutionError struct {
	// Kind is the root cause category, inherited through Wrap.
	Kind Kind

	// Message is the complete error text.
	Message string

	// Err is the nested cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ReferenceResolutionError) Error() string {
	return e.Message
}

// Unwrap returns the nested cause.
func (e *ReferenceResolutionError) Unwrap() error {
	return e.Err
}

// NewError creates a ReferenceResolutionError without a nested cause.
func NewError(kind Kind, message string) *ReferenceResolutionError {
	return &ReferenceResolutionError{Kind: kind, Message: message}
}

// Wrap prefixes cause with a context message using the
// "<context> Reason: <cause>" template. The context message is expected to
// end with a period. The resulting error keeps the cause's Kind.
func Wrap(contextMessage string, cause error) *ReferenceResolutionError {
	kind, _ := KindOf(cause)
	return &ReferenceResolutionError{
		Kind:    kind,
		Message: fmt.Sprintf("%s Reason: %s", contextMessage, cause.Error()),
		Err:     cause,
	}
}

// KindOf returns the Kind of the first ReferenceResolutionError in err's chain.
func KindOf(err error) (Kind, bool) {
	var re *ReferenceResolutionError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return "", false
}

// IsResolutionError reports whether err is a data-level resolution failure.
// Transport errors from lookups are never resolution errors.
func IsResolutionError(err error) bool {
	_, ok := KindOf(err)
	return ok
}

// IsBlankValue reports whether err was caused by a blank id or key.
func IsBlankValue(err error) bool {
	kind, ok := KindOf(err)
	return ok && (kind == KindBlankID || kind == KindBlankKey)
}

// IsNotFound reports whether err was caused by a key with no matching resource.
func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}
