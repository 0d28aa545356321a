package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"
	"gopkg.in/yaml.v3"

	"github.com/roach88/ctpsync/internal/draft"
	"github.com/roach88/ctpsync/internal/service"
	"github.com/roach88/ctpsync/internal/syncer"
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	CatalogOptions
}

// ResolveResult is the output of the resolve command.
type ResolveResult struct {
	Drafts   *draft.Document `json:"drafts"`
	Failures []FailureOutput `json:"failures"`
}

// RenderText implements TextRenderer. Resolved drafts are printed as YAML so
// the output can be fed back to sync.
func (r ResolveResult) RenderText(w io.Writer, _ bool) {
	data, err := yaml.Marshal(r.Drafts)
	if err != nil {
		fmt.Fprintf(w, "failed to render drafts: %v\n", err)
	} else if r.Drafts.Len() > 0 {
		fmt.Fprint(w, string(data))
	}
	renderFailures(w, r.Failures)
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve <drafts.yaml>",
		Short: "Resolve draft references without writing",
		Long: `Resolve every key reference of the drafts against the catalog and print
the drafts with ids in place of keys. Nothing is written; drafts that
reference each other within the file only resolve once synced.

Exit codes:
  0 - All drafts resolved
  1 - One or more drafts failed to resolve
  2 - Command error

Example:
  ctpsync resolve --db ./catalog.db ./drafts.yaml
  ctpsync resolve --config ./sync.cue ./drafts.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(opts, args[0], cmd)
		},
	}

	opts.register(cmd, true)

	return cmd
}

func runResolve(opts *ResolveOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	ctx := opts.commandContext(cmd)
	logger := slogcontext.FromCtx(ctx)

	cfg, err := opts.load(out)
	if err != nil {
		return err
	}
	doc, err := draft.LoadDocument(path)
	if err != nil {
		return out.Error(CodeInput, "failed to load drafts", err)
	}

	st, err := openCatalog(cfg.Database, out)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	svc := service.New(st, cfg.ServiceOptions())
	resolved, errs := syncer.ResolveDocument(ctx, svc, doc, cfg.SyncOptions())

	result := ResolveResult{Drafts: resolved, Failures: make([]FailureOutput, 0, len(errs))}
	for _, err := range errs {
		result.Failures = append(result.Failures, failureOf(err.Error(), err))
	}
	logger.Debug("drafts resolved", "resolved", resolved.Len(), "failed", len(errs))

	if len(result.Failures) > 0 {
		return out.Failure(CodeResolveFailed, fmt.Sprintf("%d draft(s) failed to resolve", len(result.Failures)), result)
	}
	return out.Success(result)
}
