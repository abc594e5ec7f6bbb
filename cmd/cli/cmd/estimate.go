// Package cmd - estimate command
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"premium-estimator/core/explanation"
	"premium-estimator/core/output"
	"premium-estimator/core/premium"
	"premium-estimator/core/types"
	"premium-estimator/internal/config"
	"premium-estimator/internal/errors"
	"premium-estimator/internal/logging"
)

type estimateOptions struct {
	propertyType string
	yearBuilt    int
	state        string
	coverage     string
	file         string
	withRange    bool
	explain      bool
	date         string
	format       string
}

var estimateOpts estimateOptions

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the premium for a quote",
	Long: `Estimate the premium for a single quote.

The quote comes either from flags or from a YAML/JSON quote file shaped like
the HTTP request body:

  propertyDetails:
    propertyType: Single Family Home
    yearBuilt: 2000
    address:
      state: CA
  policyDetails:
    coverageAmount: 250000
  evaluationDate: 2024-06-15   # optional

Examples:
  premium-estimator estimate --type Apartment --year-built 1995 --state FL --coverage 150000
  premium-estimator estimate --file quote.yaml --range
  premium-estimator estimate --file quote.json --date 2024-12-01 --format yaml`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVarP(&estimateOpts.propertyType, "type", "t", "", "property type (e.g. \"Single Family Home\")")
	f.IntVarP(&estimateOpts.yearBuilt, "year-built", "y", 0, "year the property was built")
	f.StringVarP(&estimateOpts.state, "state", "s", "", "2-letter state code; unknown states use the default region")
	f.StringVarP(&estimateOpts.coverage, "coverage", "c", "", "coverage amount")
	f.StringVar(&estimateOpts.file, "file", "", "quote file (YAML or JSON)")
	f.BoolVarP(&estimateOpts.withRange, "range", "r", false, "include the minimum/maximum/recommended range")
	f.BoolVar(&estimateOpts.explain, "explain", false, "show the formula and where each factor came from")
	f.StringVarP(&estimateOpts.date, "date", "d", "", "evaluation date YYYY-MM-DD (default today)")
	f.StringVarP(&estimateOpts.format, "format", "f", "", "output format (cli, json, yaml)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	out, err := formatter(estimateOpts.format)
	if err != nil {
		return err
	}

	req, err := estimateRequest()
	if err != nil {
		return err
	}
	quote, err := req.QuoteInput()
	if err != nil {
		return err
	}

	calc, err := newCalculator()
	if err != nil {
		return err
	}
	at, err := evaluationDate(calc, estimateOpts.date, req.EvaluationDate)
	if err != nil {
		return err
	}

	logging.Debug("estimating premium",
		zap.String("property_type", quote.Property.PropertyType.String()),
		zap.String("evaluation_date", at.Format(types.DateLayout)),
	)

	calculate := calc.CalculatePremiumAt
	if estimateOpts.withRange {
		calculate = calc.CalculatePremiumRangeAt
	}
	result, err := calculate(quote, at)
	if err != nil {
		return err
	}
	if err := out.RenderEstimate(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if estimateOpts.explain {
		// keep machine-readable stdout parseable
		w := cmd.ErrOrStderr()
		if out.Format() == output.FormatCLI {
			w = cmd.OutOrStdout()
		}
		_, err = fmt.Fprint(w, "\n"+explanation.Explain(calc.RateTable(), quote, result).ToNarrative())
	}
	return err
}

// estimateRequest builds the quote from --file or from the individual flags
func estimateRequest() (*types.QuoteRequest, error) {
	if estimateOpts.file != "" {
		var req types.QuoteRequest
		if err := readDocument(estimateOpts.file, &req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if estimateOpts.propertyType == "" || estimateOpts.coverage == "" {
		return nil, errors.InvalidInput("either --file or --type, --year-built and --coverage are required")
	}
	coverage, err := decimal.NewFromString(estimateOpts.coverage)
	if err != nil {
		return nil, errors.InvalidInputf("invalid --coverage %q", estimateOpts.coverage)
	}
	return &types.QuoteRequest{
		PropertyDetails: &types.PropertyDetails{
			PropertyType: types.PropertyType(estimateOpts.propertyType),
			YearBuilt:    estimateOpts.yearBuilt,
			Address:      types.Address{State: estimateOpts.state},
		},
		PolicyDetails: &types.PolicyDetails{CoverageAmount: &coverage},
	}, nil
}

// readDocument decodes a YAML or JSON file into v
func readDocument(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.TypeNotFound, err, "cannot read %s", path)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.Parsing("invalid document "+path, err)
	}
	return nil
}

// evaluationDate picks --date, then the document's date, then the calculator's clock
func evaluationDate(calc *premium.Calculator, flag, fromFile string) (time.Time, error) {
	raw := flag
	if raw == "" {
		raw = fromFile
	}
	if raw == "" {
		return calc.Now(), nil
	}
	loc, err := config.Get().Rates.Location()
	if err != nil {
		return time.Time{}, err
	}
	return premium.ParseDate(raw, loc)
}
