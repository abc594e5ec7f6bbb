// Package cmd provides the CLI commands for premium-estimator.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"premium-estimator/core/output"
	"premium-estimator/core/premium"
	"premium-estimator/core/pricing"
	"premium-estimator/internal/config"
	"premium-estimator/internal/logging"
)

// Version is the CLI version, overridable at link time
var Version = "1.0.0"

var (
	cfgFile   string
	ratesFile string
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "premium-estimator",
	Short: "Estimate property insurance premiums",
	Long: `premium-estimator prices property insurance quotes from a base rate,
seasonal, property age and regional risk factors.

Examples:
  premium-estimator estimate --type "Single Family Home" --year-built 2000 --state CA --coverage 250000
  premium-estimator estimate --file quote.yaml --range --format json
  premium-estimator factors --rates configs/rates.hcl
  premium-estimator rate --file profile.yaml`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().StringVar(&ratesFile, "rates", "", "HCL rate table file (overrides rates.path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(factorsCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadRateTable resolves --rates, then rates.path, then the built-in tables
func loadRateTable() (*pricing.RateTable, error) {
	path := ratesFile
	if path == "" {
		path = config.Get().Rates.Path
	}
	if path == "" {
		return pricing.DefaultRateTable(), nil
	}
	table, err := pricing.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logging.Debug("rate table loaded", zap.String("path", path), zap.String("version", table.Label()))
	return table, nil
}

// newCalculator builds a calculator on the configured rate table and timezone
func newCalculator() (*premium.Calculator, error) {
	table, err := loadRateTable()
	if err != nil {
		return nil, err
	}
	loc, err := config.Get().Rates.Location()
	if err != nil {
		return nil, err
	}
	return premium.New(table,
		premium.WithClock(premium.SystemClock(loc)),
		premium.WithLogger(logging.Logger),
	), nil
}

// formatter resolves the --format flag, falling back to output.format
func formatter(flag string) (output.Formatter, error) {
	if flag == "" {
		flag = config.Get().Output.Format
	}
	format, err := output.ParseFormat(flag)
	if err != nil {
		return nil, err
	}
	return output.New(format)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "premium-estimator version %s\n", Version)
	},
}
