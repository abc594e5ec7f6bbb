// Package cmd - factors command
package cmd

import (
	"github.com/spf13/cobra"
)

var factorsFormat string

// factorsCmd prints the active rate tables
var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "Show the base rates, seasonal adjustments and regional factors",
	Long: `Show the rate tables the calculator would use, with their version label
and content hash. Use --rates to inspect an HCL rate table before deploying it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := formatter(factorsFormat)
		if err != nil {
			return err
		}
		calc, err := newCalculator()
		if err != nil {
			return err
		}
		return out.RenderFactors(cmd.OutOrStdout(), calc.CalculationFactors())
	},
}

func init() {
	factorsCmd.Flags().StringVarP(&factorsFormat, "format", "f", "", "output format (cli, json, yaml)")
}
