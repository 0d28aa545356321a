package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	slogcontext "github.com/veqryn/slog-context"

	"github.com/roach88/ctpsync/internal/service"
	"github.com/roach88/ctpsync/internal/store"
	"github.com/roach88/ctpsync/internal/syncer"
	"github.com/roach88/ctpsync/internal/testutil"
)

// Option configures a scenario run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger sends the sync's log output to logger. Runs are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// collector gathers callback output from concurrently synced drafts.
type collector struct {
	mu       sync.Mutex
	failures []Failure
	warnings []string
}

func (c *collector) onError(message string, err error) {
	code, _ := syncer.CodeOf(err)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, Failure{Code: string(code), Message: message})
}

func (c *collector) onWarning(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, message)
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory catalog. Ids and the run id are
// deterministic, so the same scenario always produces the same result.
//
// Execution flow:
// 1. Open an in-memory catalog with sequential ids
// 2. Seed the referenced resources
// 3. Sync the drafts document
// 4. Snapshot the catalog and evaluate assertions
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	ctx = slogcontext.NewCtx(ctx, cfg.logger.With("scenario", scenario.Name))

	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequenceGenerator("id").Next))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if _, err := st.Seed(ctx, scenario.Seed); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	var c collector
	syncOpts := syncer.Options{
		BatchSize:          scenario.Options.BatchSize,
		ParallelProcessing: scenario.Options.ParallelProcessing,
		EnsureChannels:     scenario.Options.EnsureChannels,
		ErrorCallback:      c.onError,
		WarningCallback:    c.onWarning,
		RunID:              testutil.FixedRunID(scenario.RunID),
	}
	svc := service.New(st, service.Options{})

	stats, err := syncer.SyncDocument(ctx, st, svc, &scenario.Drafts, syncOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to sync drafts: %w", err)
	}

	resources, err := st.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	result := NewResult()
	result.Statistics = append(result.Statistics, stats...)
	result.Resources = resources

	sort.Slice(c.failures, func(i, j int) bool { return c.failures[i].Message < c.failures[j].Message })
	sort.Strings(c.warnings)
	result.Failures = append(result.Failures, c.failures...)
	result.Warnings = append(result.Warnings, c.warnings...)

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}
