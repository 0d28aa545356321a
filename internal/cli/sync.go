package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/roach88/ctpsync/internal/cache"
	"github.com/roach88/ctpsync/internal/draft"
	"github.com/roach88/ctpsync/internal/service"
	"github.com/roach88/ctpsync/internal/syncer"
)

// SyncOptions holds flags for the sync command.
type SyncOptions struct {
	*RootOptions
	CatalogOptions
	EnsureChannels     bool
	BatchSize          int
	ParallelProcessing int

	// RunID allows pinning the run id (for testing). Defaults to UUIDv7.
	RunID string
}

// SyncResult is the output of the sync command.
type SyncResult struct {
	RunID      string              `json:"runId"`
	Statistics []syncer.Statistics `json:"statistics"`
	Failures   []FailureOutput     `json:"failures"`
	Warnings   []string            `json:"warnings"`
	Cache      CacheStats          `json:"cache"`
}

// RenderText implements TextRenderer.
func (r SyncResult) RenderText(w io.Writer, verbose bool) {
	for _, s := range r.Statistics {
		fmt.Fprintln(w, s.ReportMessage())
	}
	renderWarnings(w, r.Warnings)
	renderFailures(w, r.Failures)
	if verbose {
		fmt.Fprintf(w, "Run %s: key cache %.0f hits, %.0f misses.\n", r.RunID, r.Cache.Hits, r.Cache.Misses)
	}
}

func (r SyncResult) failed() int64 {
	var n int64
	for _, s := range r.Statistics {
		n += s.Failed
	}
	return n
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SyncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sync <drafts.yaml>",
		Short: "Resolve and write drafts into the catalog",
		Long: `Resolve the key references of every draft and create or update it in
the catalog. Categories are synced first, parents before children, so
products can reference categories from the same file.

Flags override the corresponding fields of --config.

Exit codes:
  0 - All drafts synced
  1 - One or more drafts failed to sync
  2 - Command error

Example:
  ctpsync sync --db ./catalog.db ./drafts.yaml
  ctpsync sync --config ./sync.cue --ensure-channels --parallel 4 ./drafts.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(opts, args[0], cmd)
		},
	}

	opts.register(cmd, true)
	cmd.Flags().BoolVar(&opts.EnsureChannels, "ensure-channels", false, "create missing supply channels")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", 0, "drafts per batch (default 30)")
	cmd.Flags().IntVar(&opts.ParallelProcessing, "parallel", 0, "drafts of a batch processed concurrently (default 1)")

	return cmd
}

func runSync(opts *SyncOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	cfg, err := opts.load(out)
	if err != nil {
		return err
	}
	doc, err := draft.LoadDocument(path)
	if err != nil {
		return out.Error(CodeInput, "failed to load drafts", err)
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.Must(uuid.NewV7()).String()
	}

	// Cancel between batches on Ctrl-C; drafts already in flight finish.
	ctx, cancel := context.WithCancel(opts.commandContext(cmd))
	defer cancel()
	logger := slogcontext.FromCtx(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Warn("received signal, stopping after current batch", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	st, err := openCatalog(cfg.Database, out)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	reg := prometheus.NewRegistry()
	svcOpts := cfg.ServiceOptions()
	svcOpts.Cache = cache.New(cache.WithMetrics(cache.NewMetrics(reg)))
	svc := service.New(st, svcOpts)

	var cb callbacks
	syncOpts := cfg.SyncOptions()
	flags := cmd.Flags()
	if flags.Changed("ensure-channels") {
		syncOpts.EnsureChannels = opts.EnsureChannels
	}
	if flags.Changed("batch-size") {
		syncOpts.BatchSize = opts.BatchSize
	}
	if flags.Changed("parallel") {
		syncOpts.ParallelProcessing = opts.ParallelProcessing
	}
	syncOpts.ErrorCallback = cb.onError
	syncOpts.WarningCallback = cb.onWarning
	syncOpts.RunID = func() string { return runID }

	logger.Info("sync starting", "drafts", doc.Len(), "db", cfg.Database, "run_id", runID)
	stats, syncErr := syncer.SyncDocument(ctx, st, svc, doc, syncOpts)

	result := SyncResult{
		RunID:      runID,
		Statistics: stats,
		Failures:   sortedFailures(cb.failures),
		Warnings:   append([]string{}, cb.warnings...),
	}
	if result.Statistics == nil {
		result.Statistics = []syncer.Statistics{}
	}
	if result.Cache, err = gatherCacheStats(reg); err != nil {
		logger.Warn("cache statistics unavailable", "error", err)
	}

	if syncErr != nil {
		if errors.Is(syncErr, context.Canceled) {
			return out.Failure(CodeSyncFailed, "sync interrupted", result)
		}
		return out.Failure(CodeSyncFailed, syncErr.Error(), result)
	}
	if n := result.failed(); n > 0 {
		return out.Failure(CodeSyncFailed, fmt.Sprintf("%d draft(s) failed to sync", n), result)
	}
	return out.Success(result)
}
