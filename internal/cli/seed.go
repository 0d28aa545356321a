package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/roach88/ctpsync/internal/store"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	CatalogOptions
}

// SeededResource is one resource created by the seed command.
type SeededResource struct {
	Type string `json:"type"`
	Key  string `json:"key"`
	ID   string `json:"id"`
}

// SeedResult is the output of the seed command.
type SeedResult struct {
	Resources []SeededResource `json:"resources"`
}

// RenderText implements TextRenderer.
func (r SeedResult) RenderText(w io.Writer, verbose bool) {
	fmt.Fprintf(w, "Seeded %d resources.\n", len(r.Resources))
	if !verbose {
		return
	}
	for _, res := range r.Resources {
		fmt.Fprintf(w, "  %s %s -> %s\n", res.Type, res.Key, res.ID)
	}
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <seed.yaml>",
		Short: "Create referenced resources in the catalog",
		Long: `Create the resources drafts refer to by key, such as custom types,
channels and product types.

Example seed file:
  resources:
    - type: type
      key: category-custom-type
    - type: channel
      key: warehouse-berlin
      id: 6b0c9f3e-1a2d-4c9b-8e57-51c2f0e0a001

Example:
  ctpsync seed --db ./catalog.db ./seed.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args[0], cmd)
		},
	}

	opts.register(cmd, false)
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSeed(opts *SeedOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	ctx := opts.commandContext(cmd)
	logger := slogcontext.FromCtx(ctx)

	resources, err := store.LoadSeed(path)
	if err != nil {
		return out.Error(CodeInput, "failed to load seed file", err)
	}

	st, err := openCatalog(opts.Database, out)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	created, err := st.Seed(ctx, resources)
	result := SeedResult{Resources: make([]SeededResource, 0, len(created))}
	for _, r := range created {
		result.Resources = append(result.Resources, SeededResource{Type: r.ResourceType, Key: r.Key, ID: r.ID})
		logger.Debug("seeded resource", "type", r.ResourceType, "key", r.Key, "id", r.ID)
	}
	if err != nil {
		return out.Failure(CodeSeedFailed, err.Error(), result)
	}
	return out.Success(result)
}
