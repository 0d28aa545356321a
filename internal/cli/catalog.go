package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/ctpsync/internal/config"
	"github.com/roach88/ctpsync/internal/store"
)

// CatalogOptions are the flags shared by commands that work on a catalog.
type CatalogOptions struct {
	Database string
	Config   string
}

func (o *CatalogOptions) register(cmd *cobra.Command, withConfig bool) {
	cmd.Flags().StringVar(&o.Database, "db", "", "path to the catalog SQLite database")
	if withConfig {
		cmd.Flags().StringVar(&o.Config, "config", "", "path to a CUE sync configuration")
	}
}

// load reads the configuration file, if any, and settles the database path:
// --db wins over the config's database field, and one of them is required.
func (o *CatalogOptions) load(out *OutputFormatter) (config.Config, error) {
	var cfg config.Config
	if o.Config != "" {
		var err error
		cfg, err = config.Load(o.Config)
		if err != nil {
			return config.Config{}, out.Error(CodeConfig, "invalid configuration", err)
		}
	}
	if o.Database != "" {
		cfg.Database = o.Database
	}
	if cfg.Database == "" {
		return config.Config{}, out.Error(CodeConfig, "no database: pass --db or set database in --config", nil)
	}
	return cfg, nil
}

// openCatalog opens the catalog database, reporting failures as command errors.
func openCatalog(path string, out *OutputFormatter) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, out.Error(CodeDatabase, "failed to open database", err)
	}
	return st, nil
}
