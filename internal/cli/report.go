package cli

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/ctpsync/internal/syncer"
)

// FailureOutput is one per-draft failure.
type FailureOutput struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// failureOf converts a sync error into its output form.
func failureOf(message string, err error) FailureOutput {
	code, _ := syncer.CodeOf(err)
	return FailureOutput{Code: string(code), Message: message}
}

// callbacks collects sync callbacks from concurrently processed drafts.
type callbacks struct {
	mu       sync.Mutex
	failures []FailureOutput
	warnings []string
}

func (c *callbacks) onError(message string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, failureOf(message, err))
}

func (c *callbacks) onWarning(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, message)
}

// CacheStats summarizes key cache effectiveness over a run.
type CacheStats struct {
	Hits   float64 `json:"hits"`
	Misses float64 `json:"misses"`
}

// gatherCacheStats sums the key cache counters registered on reg.
func gatherCacheStats(reg prometheus.Gatherer) (CacheStats, error) {
	families, err := reg.Gather()
	if err != nil {
		return CacheStats{}, fmt.Errorf("gather metrics: %w", err)
	}

	var stats CacheStats
	for _, mf := range families {
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		switch mf.GetName() {
		case "ctpsync_key_cache_hits_total":
			stats.Hits = total
		case "ctpsync_key_cache_misses_total":
			stats.Misses = total
		}
	}
	return stats, nil
}

func renderFailures(w io.Writer, failures []FailureOutput) {
	for _, f := range failures {
		fmt.Fprintf(w, "✗ [%s] %s\n", f.Code, f.Message)
	}
}

func renderWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "! %s\n", msg)
	}
}

func sortedFailures(failures []FailureOutput) []FailureOutput {
	out := append([]FailureOutput{}, failures...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Message < out[j].Message })
	return out
}
