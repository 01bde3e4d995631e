// Package cli implements the kelayakanctl command line.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"equipment-feasibility-backend/config"
)

const defaultConfigPath = "./config/config.yaml"

type options struct {
	configPath  string
	sourceKind  string
	catalog     string
	rentals     string
	maintenance string
	output      string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "kelayakanctl",
		Short: "Score rental equipment feasibility from catalog, rental and maintenance history",
		Long: `kelayakanctl scores every catalog item from its age, rental history and
maintenance history, and prints the resulting insight tables.

Input comes either from CSV/XLSX files or from the service database.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $CONFIG_PATH or "+defaultConfigPath+")")
	flags.StringVar(&opts.sourceKind, "source", "", "input source: files or database")
	flags.StringVar(&opts.catalog, "catalog", "", "catalog file (csv or xlsx)")
	flags.StringVar(&opts.rentals, "rentals", "", "rental log file (csv or xlsx)")
	flags.StringVar(&opts.maintenance, "maintenance", "", "maintenance log file (csv or xlsx)")
	flags.StringVarP(&opts.output, "output", "o", "table", "output format: table, markdown, csv or json")

	rootCmd.AddCommand(
		newImportCmd(opts),
		newScoreCmd(opts),
		newReportCmd(opts),
	)
	return rootCmd
}

// load resolves the configuration and applies flag overrides.
func (o *options) load(cmd *cobra.Command) error {
	config.LoadEnv()

	path := o.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	explicit := path != ""
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		cfg = config.Default()
	default:
		return fmt.Errorf("failed to load configuration from %s: %w", path, err)
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") || flags.Changed("rentals") || flags.Changed("maintenance") {
		cfg.Source.Kind = config.SourceFiles
	}
	if o.sourceKind != "" {
		cfg.Source.Kind = o.sourceKind
	}
	if o.catalog != "" {
		cfg.Source.CatalogPath = o.catalog
	}
	if o.rentals != "" {
		cfg.Source.RentalsPath = o.rentals
	}
	if o.maintenance != "" {
		cfg.Source.MaintenancePath = o.maintenance
	}
	// The CLI reads the source once per invocation.
	cfg.Refresh.Enabled = false

	switch o.output {
	case formatTable, formatMarkdown, formatCSV, formatJSON:
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}

	o.cfg = cfg
	return nil
}

// addAtFlag registers the reference date flag shared by the reporting commands.
func addAtFlag(cmd *cobra.Command, at *string) {
	cmd.Flags().StringVar(at, "at", "", "reference date (YYYY-MM-DD or RFC3339, default today)")
}

func parseAt(at string, loc *time.Location) (time.Time, error) {
	if at == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, at); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", at, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: expected YYYY-MM-DD or RFC3339", at)
	}
	return t, nil
}
