// Package config loads sync run configuration from CUE files.
//
// A configuration file is unified with an embedded closed schema, so unknown
// fields and out-of-range values are rejected with their source position:
//
//	batchSize:          50
//	parallelProcessing: 4
//	ensureChannels:     true
//	lookupRateLimit:    20
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/ctpsync/internal/service"
	"github.com/roach88/ctpsync/internal/syncer"
)

//go:embed schema.cue
var schemaCUE string

// Config is a decoded configuration file. Zero values mean "use the default".
type Config struct {
	BatchSize          int     `json:"batchSize"`
	ParallelProcessing int     `json:"parallelProcessing"`
	EnsureChannels     bool    `json:"ensureChannels"`
	LookupRateLimit    float64 `json:"lookupRateLimit"`
	LookupBurst        int     `json:"lookupBurst"`
	Database           string  `json:"database"`
}

// Error is a configuration error with source position.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Field: "config", Message: err.Error()}
	}
	return Parse(data, path)
}

// Parse validates CUE source against the schema and decodes it. filename is
// used in error positions.
func Parse(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	return cfg, nil
}

// SyncOptions returns the sync options the configuration describes.
func (c Config) SyncOptions() syncer.Options {
	return syncer.Options{
		BatchSize:          c.BatchSize,
		ParallelProcessing: c.ParallelProcessing,
		EnsureChannels:     c.EnsureChannels,
	}
}

// ServiceOptions returns the lookup service options the configuration describes.
func (c Config) ServiceOptions() service.Options {
	return service.Options{
		LookupRateLimit: c.LookupRateLimit,
		LookupBurst:     c.LookupBurst,
	}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	field := "cue"
	if path := first.Path(); len(path) > 0 {
		field = path[len(path)-1]
	}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		return &Error{Field: field, Message: first.Error(), Pos: positions[0]}
	}
	return &Error{Field: field, Message: first.Error()}
}
