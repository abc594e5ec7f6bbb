// Package cmd - rate command
package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"premium-estimator/core/rating"
	"premium-estimator/core/types"
	"premium-estimator/internal/errors"
)

var rateOpts struct {
	file                string
	propertyType        string
	construction        string
	yearBuilt           int
	squareFootage       string
	state               string
	security            []string
	coverage            string
	deductible          string
	additionalCoverages []string
	creditScore         int
	claims              int
	date                string
	format              string
}

// rateCmd runs the standard rating worksheet
var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Rate a full underwriting profile and show every factor",
	Long: `Run the standard rating worksheet: the base rate multiplied by
construction, age, coverage, deductible, credit, claims, add-on coverage,
security discount, state and size factors.

Examples:
  premium-estimator rate --type "Single Family Home" --construction Brick --year-built 2014 \
    --sqft 2000 --state CA --coverage 250000 --deductible 1000 --credit-score 720 \
    --security "Alarm System" --add-on "Flood Protection"
  premium-estimator rate --file profile.yaml --format json`,
	Args: cobra.NoArgs,
	RunE: runRate,
}

func init() {
	f := rateCmd.Flags()
	f.StringVar(&rateOpts.file, "file", "", "underwriting profile (YAML or JSON)")
	f.StringVarP(&rateOpts.propertyType, "type", "t", "", "property type")
	f.StringVar(&rateOpts.construction, "construction", "", "construction type (Brick, Concrete, Steel Frame, Wood Frame, Stone)")
	f.IntVarP(&rateOpts.yearBuilt, "year-built", "y", 0, "year the property was built")
	f.StringVar(&rateOpts.squareFootage, "sqft", "0", "floor area in square feet")
	f.StringVarP(&rateOpts.state, "state", "s", "", "2-letter state code")
	f.StringSliceVar(&rateOpts.security, "security", nil, "security features (repeatable)")
	f.StringVarP(&rateOpts.coverage, "coverage", "c", "", "coverage amount")
	f.StringVar(&rateOpts.deductible, "deductible", "0", "deductible")
	f.StringSliceVar(&rateOpts.additionalCoverages, "add-on", nil, "additional coverages (repeatable)")
	f.IntVar(&rateOpts.creditScore, "credit-score", 0, "credit score")
	f.IntVar(&rateOpts.claims, "claims", 0, "number of previous claims")
	f.StringVarP(&rateOpts.date, "date", "d", "", "evaluation date YYYY-MM-DD (default today)")
	f.StringVarP(&rateOpts.format, "format", "f", "", "output format (cli, json, yaml)")
}

func runRate(cmd *cobra.Command, args []string) error {
	out, err := formatter(rateOpts.format)
	if err != nil {
		return err
	}

	var doc struct {
		rating.Input   `yaml:",inline"`
		EvaluationDate string `yaml:"evaluationDate"`
	}
	if rateOpts.file != "" {
		if err := readDocument(rateOpts.file, &doc); err != nil {
			return err
		}
	} else if doc.Input, err = ratingInputFromFlags(); err != nil {
		return err
	}

	calc, err := newCalculator()
	if err != nil {
		return err
	}
	at, err := evaluationDate(calc, rateOpts.date, doc.EvaluationDate)
	if err != nil {
		return err
	}

	ws, err := rating.Rate(calc.RateTable(), doc.Input, at)
	if err != nil {
		return err
	}
	return out.RenderWorksheet(cmd.OutOrStdout(), ws)
}

func ratingInputFromFlags() (rating.Input, error) {
	if rateOpts.propertyType == "" || rateOpts.coverage == "" {
		return rating.Input{}, errors.InvalidInput("either --file or --type, --year-built and --coverage are required")
	}
	amounts := map[string]string{
		"coverage":   rateOpts.coverage,
		"deductible": rateOpts.deductible,
		"sqft":       rateOpts.squareFootage,
	}
	parsed := make(map[string]decimal.Decimal, len(amounts))
	for flag, raw := range amounts {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return rating.Input{}, errors.InvalidInputf("invalid --%s %q", flag, raw)
		}
		parsed[flag] = v
	}

	return rating.Input{
		PropertyType:        types.PropertyType(rateOpts.propertyType),
		ConstructionType:    rateOpts.construction,
		YearBuilt:           rateOpts.yearBuilt,
		SquareFootage:       parsed["sqft"],
		State:               rateOpts.state,
		SecurityFeatures:    rateOpts.security,
		CoverageAmount:      parsed["coverage"],
		Deductible:          parsed["deductible"],
		AdditionalCoverages: rateOpts.additionalCoverages,
		CreditScore:         rateOpts.creditScore,
		PreviousClaims:      rateOpts.claims,
	}, nil
}
