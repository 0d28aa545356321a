package syncer

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes per-draft sync failures.
type ErrorCode string

const (
	// ErrCodeMissingKey indicates a draft without the key it is synced by.
	ErrCodeMissingKey ErrorCode = "MISSING_KEY"

	// ErrCodeResolution indicates a draft whose references could not be resolved.
	ErrCodeResolution ErrorCode = "RESOLUTION_FAILED"

	// ErrCodeWrite indicates the catalog rejected the create or update.
	ErrCodeWrite ErrorCode = "WRITE_FAILED"
)

// SyncError describes why one draft failed to sync.
type SyncError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is the human-readable text handed to the error callback.
	Message string

	// Key is the draft's key, empty for ErrCodeMissingKey.
	Key string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *SyncError) Unwrap() error {
	return e.Err
}

func newMissingKeyError(draftName, keyName string) *SyncError {
	return &SyncError{
		Code:    ErrCodeMissingKey,
		Message: fmt.Sprintf("Failed to process %s with no %s.", draftName, keyName),
	}
}

func newResolutionError(draftName, keyName, key string, err error) *SyncError {
	return &SyncError{
		Code:    ErrCodeResolution,
		Message: fmt.Sprintf("Failed to resolve references on %s with %s:'%s'. Reason: %s", draftName, keyName, key, err),
		Key:     key,
		Err:     err,
	}
}

func newWriteError(draftName, keyName, key string, err error) *SyncError {
	return &SyncError{
		Code:    ErrCodeWrite,
		Message: fmt.Sprintf("Failed to sync %s with %s:'%s'. Reason: %s", draftName, keyName, key, err),
		Key:     key,
		Err:     err,
	}
}

// CodeOf returns the code of the first SyncError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return "", false
}
