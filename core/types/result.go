// Package types - Calculation result types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationResult is the outcome of one premium calculation
type CalculationResult struct {
	// Premium is the final premium rounded to 2 decimal places
	Premium decimal.Decimal `json:"premium"`

	// BaseRate is the coverage-scaled base premium before adjustments (unrounded)
	BaseRate decimal.Decimal `json:"baseRate"`

	// Adjustments maps adjustment name to the multiplier applied
	Adjustments map[string]decimal.Decimal `json:"adjustments"`

	// Range fields are only set by a range calculation
	MinimumPremium     *decimal.Decimal `json:"minimumPremium,omitempty"`
	MaximumPremium     *decimal.Decimal `json:"maximumPremium,omitempty"`
	RecommendedPremium *decimal.Decimal `json:"recommendedPremium,omitempty"`

	// RateTableVersion identifies the rate table snapshot used
	RateTableVersion string `json:"rateTableVersion,omitempty"`

	// EvaluatedAt is the evaluation date that selected the seasonal and age factors
	EvaluatedAt time.Time `json:"evaluatedAt"`
}

// HasRange reports whether the range fields are populated
func (r *CalculationResult) HasRange() bool {
	return r.MinimumPremium != nil && r.MaximumPremium != nil && r.RecommendedPremium != nil
}

// Adjustment returns the named multiplier, or 1 if it was not applied
func (r *CalculationResult) Adjustment(name string) decimal.Decimal {
	if v, ok := r.Adjustments[name]; ok {
		return v
	}
	return decimal.NewFromInt(1)
}
