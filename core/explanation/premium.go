// Package explanation - Premium explanation
// Exposes WHY a premium is what it is, not just the total: every factor,
// its value and where it came from, including rate table fallbacks.
package explanation

import (
	"fmt"
	"strings"
	"time"

	"premium-estimator/core/premium"
	"premium-estimator/core/pricing"
	"premium-estimator/core/types"
)

// Input sources
const (
	SourceQuote     = "quote"
	SourceRateTable = "rate_table"
	SourceDefault   = "default"
	SourceAgeCurve  = "age_curve"
	SourceComputed  = "calculated"
)

// PremiumExplanation provides full transparency for one estimate
type PremiumExplanation struct {
	// Formula breakdown
	Formula string  `json:"formula"`
	Inputs  []Input `json:"inputs"`

	// Provenance
	RateTable string `json:"rateTable"`

	// Fallbacks lists every lookup that used a default instead of a table entry
	Fallbacks []string `json:"fallbacks,omitempty"`
}

// Input represents an input to the premium formula
type Input struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Explain reconstructs how result was derived from quote using table.
// table must be the snapshot the result was calculated with.
func Explain(table *pricing.RateTable, quote types.QuoteInput, result *types.CalculationResult) *PremiumExplanation {
	e := &PremiumExplanation{
		Inputs:    make([]Input, 0, 6),
		RateTable: table.Label(),
	}

	pt := types.PropertyType(strings.TrimSpace(quote.Property.PropertyType.String()))
	base, known := table.BaseRate(pt)
	if known {
		e.addInput("baseRate", base.String(), SourceRateTable)
	} else {
		e.addInput("baseRate", base.String(), SourceDefault)
		e.Fallbacks = append(e.Fallbacks, fmt.Sprintf("property type %q has no base rate", pt))
	}

	e.addInput("coverageAmount", quote.Policy.CoverageAmount.String(), SourceQuote)

	month := int(result.EvaluatedAt.Month()) - 1
	seasonal := result.Adjustment(types.AdjustmentSeasonal)
	if table.HasSeasonalFactor(month) {
		e.addInput(types.AdjustmentSeasonal, seasonal.String(), SourceRateTable)
	} else {
		e.addInput(types.AdjustmentSeasonal, seasonal.String(), SourceDefault)
		e.Fallbacks = append(e.Fallbacks, fmt.Sprintf("%s has no seasonal adjustment", time.Month(month+1)))
	}

	age := result.Adjustment(types.AdjustmentPropertyAge)
	e.addInput(types.AdjustmentPropertyAge, age.String(), SourceAgeCurve)

	regional := result.Adjustment(types.AdjustmentRegionalRisk)
	region := types.NormalizeRegion(quote.Property.State)
	if !table.HasRegion(region) {
		e.Fallbacks = append(e.Fallbacks, fmt.Sprintf("state %q uses the %s region", quote.Property.State, types.DefaultRegion))
		region = types.DefaultRegion
	}
	if _, ok := table.Factors().RegionalFactors[region][pt]; ok {
		e.addInput(types.AdjustmentRegionalRisk, regional.String(), SourceRateTable)
	} else {
		e.addInput(types.AdjustmentRegionalRisk, regional.String(), SourceDefault)
		e.Fallbacks = append(e.Fallbacks, fmt.Sprintf("region %s has no factor for %q", region, pt))
	}

	e.Formula = fmt.Sprintf("%s × (1 + %s / %s) × %s × %s × %s = %s",
		base, quote.Policy.CoverageAmount, premium.CoverageUnit,
		seasonal, age, regional, result.Premium.StringFixed(2))
	return e
}

func (e *PremiumExplanation) addInput(name, value, source string) {
	e.Inputs = append(e.Inputs, Input{Name: name, Value: value, Source: source})
}

// ToNarrative returns a human-readable narrative
func (e *PremiumExplanation) ToNarrative() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Premium calculated as: %s\n", e.Formula))
	sb.WriteString("Inputs:\n")
	for _, input := range e.Inputs {
		sb.WriteString(fmt.Sprintf("  • %s = %s (%s)\n", input.Name, input.Value, input.Source))
	}
	if len(e.Fallbacks) > 0 {
		sb.WriteString("Fallbacks:\n")
		for _, f := range e.Fallbacks {
			sb.WriteString("  - " + f + "\n")
		}
	}
	sb.WriteString(fmt.Sprintf("Rate table: %s\n", e.RateTable))

	return sb.String()
}
