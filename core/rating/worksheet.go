// Package rating implements the standard rating worksheet: a base rate
// multiplied by one factor per underwriting attribute.
//
// Unlike the premium estimator it takes the full underwriting profile
// (construction, deductible, credit, claims history, add-on coverages,
// security features, floor area) and reports every factor it applied.
package rating

import (
	"time"

	"github.com/shopspring/decimal"

	"premium-estimator/core/premium"
	"premium-estimator/core/pricing"
	"premium-estimator/core/types"
	"premium-estimator/internal/errors"
)

// Worksheet line names, in application order
const (
	LineConstruction       = "construction"
	LinePropertyAge        = "propertyAge"
	LineCoverage           = "coverage"
	LineDeductible         = "deductible"
	LineCreditScore        = "creditScore"
	LineClaims             = "claims"
	LineAdditionalCoverage = "additionalCoverage"
	LineSecurityDiscount   = "securityDiscount"
	LineState              = "state"
	LineSize               = "size"
)

// Input is the underwriting profile of a quote
type Input struct {
	PropertyType        types.PropertyType `json:"propertyType" yaml:"propertyType"`
	ConstructionType    string             `json:"constructionType" yaml:"constructionType"`
	YearBuilt           int                `json:"yearBuilt" yaml:"yearBuilt"`
	SquareFootage       decimal.Decimal    `json:"squareFootage" yaml:"squareFootage"`
	State               string             `json:"state" yaml:"state"`
	SecurityFeatures    []string           `json:"securityFeatures,omitempty" yaml:"securityFeatures"`
	CoverageAmount      decimal.Decimal    `json:"coverageAmount" yaml:"coverageAmount"`
	Deductible          decimal.Decimal    `json:"deductible" yaml:"deductible"`
	AdditionalCoverages []string           `json:"additionalCoverages,omitempty" yaml:"additionalCoverages"`
	CreditScore         int                `json:"creditScore" yaml:"creditScore"`
	PreviousClaims      int                `json:"previousClaims" yaml:"previousClaims"`
}

// Line is one applied factor
type Line struct {
	Name   string          `json:"name"`
	Factor decimal.Decimal `json:"factor"`
}

// Worksheet is the rated premium with its factor breakdown
type Worksheet struct {
	BaseRate         decimal.Decimal `json:"baseRate"`
	Lines            []Line          `json:"lines"`
	Premium          decimal.Decimal `json:"premium"`
	RateTableVersion string          `json:"rateTableVersion"`
	EvaluatedAt      time.Time       `json:"evaluatedAt"`
}

// Factor returns the named line's factor, or 1 if absent
func (w *Worksheet) Factor(name string) decimal.Decimal {
	for _, l := range w.Lines {
		if l.Name == name {
			return l.Factor
		}
	}
	return decimal.NewFromInt(1)
}

// Rate prices in against table's base rates as of at
func Rate(table *pricing.RateTable, in Input, at time.Time) (*Worksheet, error) {
	if err := validate(in, at); err != nil {
		return nil, err
	}
	if table == nil {
		table = pricing.DefaultRateTable()
	}

	baseRate, _ := table.BaseRate(in.PropertyType)
	age := decimal.NewFromInt(int64(at.Year() - in.YearBuilt))

	lines := []Line{
		{LineConstruction, constructionFactor(in.ConstructionType)},
		{LinePropertyAge, atMost(ageTiers, age)},
		{LineCoverage, atMost(coverageTiers, in.CoverageAmount)},
		{LineDeductible, atLeast(deductibleTiers, in.Deductible)},
		{LineCreditScore, atLeast(creditTiers, decimal.NewFromInt(int64(in.CreditScore)))},
		{LineClaims, claimsFactor(in.PreviousClaims)},
		{LineAdditionalCoverage, additionalCoverageFactor(in.AdditionalCoverages)},
		{LineSecurityDiscount, securityFactor(in.SecurityFeatures)},
		{LineState, stateFactor(in.State)},
		{LineSize, decimal.NewFromInt(1).Add(in.SquareFootage.Div(squareFootageUnit))},
	}

	total := baseRate
	for _, l := range lines {
		total = total.Mul(l.Factor)
	}

	return &Worksheet{
		BaseRate:         baseRate,
		Lines:            lines,
		Premium:          total.Round(2),
		RateTableVersion: table.Label(),
		EvaluatedAt:      at,
	}, nil
}

func validate(in Input, at time.Time) error {
	err := premium.Validate(types.QuoteInput{
		Property: types.PropertyProfile{PropertyType: in.PropertyType, YearBuilt: in.YearBuilt, State: in.State},
		Policy:   types.PolicyProfile{CoverageAmount: in.CoverageAmount},
	}, at)
	if err != nil {
		return err
	}
	switch {
	case in.Deductible.IsNegative():
		return errors.InvalidInputf("deductible must not be negative: %s", in.Deductible)
	case in.SquareFootage.IsNegative():
		return errors.InvalidInputf("squareFootage must not be negative: %s", in.SquareFootage)
	case in.PreviousClaims < 0:
		return errors.InvalidInputf("previousClaims must not be negative: %d", in.PreviousClaims)
	case in.CreditScore < 0:
		return errors.InvalidInputf("creditScore must not be negative: %d", in.CreditScore)
	}
	return nil
}

func constructionFactor(construction string) decimal.Decimal {
	if f, ok := constructionFactors[construction]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}

func claimsFactor(claims int) decimal.Decimal {
	if claims < len(claimsFactors) {
		return claimsFactors[claims]
	}
	return claimsCeiling
}

// additionalCoverageFactor is 1 plus the loading of each distinct add-on
func additionalCoverageFactor(coverages []string) decimal.Decimal {
	factor := decimal.NewFromInt(1)
	for name := range distinct(coverages) {
		if loading, ok := additionalCoverageLoadings[name]; ok {
			factor = factor.Add(loading)
		}
	}
	return factor
}

// securityFactor is 1 minus the summed discounts, which are capped
func securityFactor(features []string) decimal.Decimal {
	discount := decimal.Zero
	for name := range distinct(features) {
		if disc, ok := securityDiscounts[name]; ok {
			discount = discount.Add(disc)
		}
	}
	return decimal.NewFromInt(1).Sub(decimal.Min(discount, maxSecurityDiscount))
}

func stateFactor(state string) decimal.Decimal {
	if f, ok := stateFactors[types.NormalizeRegion(state)]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}

func distinct(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
