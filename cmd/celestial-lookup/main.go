package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/oxygene76/celestial-lookup/pkg/catalog"
	"github.com/oxygene76/celestial-lookup/pkg/client"
	"github.com/oxygene76/celestial-lookup/pkg/lookup"
	"github.com/oxygene76/celestial-lookup/pkg/utils"
)

const (
	appName = "celestial-lookup"
	version = "v1.0.0"
)

var (
	// Configuration
	cfgFile  string
	logLevel string

	config *utils.Config
	logger log.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Look up physical data for solar system bodies and exoplanets",
	Long: `celestial-lookup fetches body data from public astronomy APIs,
converts it to SI units and derives surface gravity, escape velocity,
orbital velocity, centripetal acceleration and orbital period.

Quantities a source does not report are shown as Unknown; a lookup with
partial data still succeeds.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "init" || cmd.Name() == "help" {
			return nil
		}
		return initConfig()
	},
}

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration, including the built-in sources and
display order, to --config or $HOME/.celestial/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := cfgFile
		if path == "" {
			var err error
			if path, err = utils.GetConfigPath(); err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}

		if err := utils.SaveConfig(utils.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

// bodiesCmd lists the catalog
var bodiesCmd = &cobra.Command{
	Use:   "bodies",
	Short: "List the bodies in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")

		cat, err := catalog.Load(config.Catalog.Path)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tSOURCE\tID\tORBITS")
		for _, e := range cat.Entries() {
			if kind != "" && !strings.EqualFold(e.Kind, kind) {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Kind, e.Source, e.ID, e.Orbits)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.celestial/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug|info|warn|error)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(bodiesCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)

	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	bodiesCmd.Flags().String("kind", "", "Only list bodies of this kind (planet, moon, 'dwarf planet', asteroid, exoplanet)")

	addLookupFlags()
	addServeFlags()
}

func initConfig() error {
	cfg, err := utils.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	l, err := utils.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	config = cfg
	logger = l.With("module", appName)
	return nil
}

// newPipeline builds a lookup pipeline from the loaded configuration.
func newPipeline(opts ...lookup.Option) (*lookup.Pipeline, error) {
	cat, err := catalog.Load(config.Catalog.Path)
	if err != nil {
		return nil, err
	}
	registry, err := config.Registry()
	if err != nil {
		return nil, err
	}
	return lookup.New(cat, client.NewBodyClient(config, nil), registry, config.Display.Order, logger, opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
