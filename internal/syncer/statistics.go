package syncer

import (
	"fmt"
	"sync/atomic"
)

// Statistics summarizes one sync run.
type Statistics struct {
	// Resource is the plural resource name used in the report, e.g. "categories".
	Resource string `json:"resource"`

	// RunID identifies the run in logs.
	RunID string `json:"runId"`

	Processed int64 `json:"processed"`
	Created   int64 `json:"created"`
	Updated   int64 `json:"updated"`
	Failed    int64 `json:"failed"`
}

// ReportMessage renders the human-readable summary of the run.
func (s Statistics) ReportMessage() string {
	return fmt.Sprintf("Summary: %d %s were processed in total (%d created, %d updated and %d failed to sync).",
		s.Processed, s.Resource, s.Created, s.Updated, s.Failed)
}

// counters is the concurrent-safe accumulator behind Statistics.
type counters struct {
	processed, created, updated, failed atomic.Int64
}

func (c *counters) snapshot(resource, runID string) Statistics {
	return Statistics{
		Resource:  resource,
		RunID:     runID,
		Processed: c.processed.Load(),
		Created:   c.created.Load(),
		Updated:   c.updated.Load(),
		Failed:    c.failed.Load(),
	}
}
