package syncer

import "github.com/google/uuid"

// Defaults applied to non-positive Options values.
const (
	DefaultBatchSize          = 30
	DefaultParallelProcessing = 1
)

// Options tunes a sync run.
type Options struct {
	// BatchSize is the number of drafts processed together. Non-positive
	// values fall back to DefaultBatchSize.
	BatchSize int

	// ParallelProcessing bounds the number of drafts of a batch that are
	// resolved and written concurrently. Non-positive values fall back to
	// DefaultParallelProcessing.
	ParallelProcessing int

	// EnsureChannels creates missing supply channels of inventory entries
	// instead of failing them.
	EnsureChannels bool

	// ErrorCallback receives every per-draft failure.
	ErrorCallback func(message string, err error)

	// WarningCallback receives non-fatal findings, such as drafts skipped
	// because their key appeared earlier in the same run.
	WarningCallback func(message string)

	// RunID generates the run id. Defaults to UUIDv7.
	RunID func() string
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.ParallelProcessing <= 0 {
		o.ParallelProcessing = DefaultParallelProcessing
	}
	if o.ErrorCallback == nil {
		o.ErrorCallback = func(string, error) {}
	}
	if o.WarningCallback == nil {
		o.WarningCallback = func(string) {}
	}
	if o.RunID == nil {
		o.RunID = func() string { return uuid.Must(uuid.NewV7()).String() }
	}
	return o
}
