// Package types - Quote input types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on the wire
const DateLayout = "2006-01-02"

// PropertyProfile describes the insured property
type PropertyProfile struct {
	// PropertyType selects the base rate and regional factor
	PropertyType PropertyType `json:"propertyType" yaml:"propertyType"`

	// YearBuilt is the construction year; must not be after the evaluation year
	YearBuilt int `json:"yearBuilt" yaml:"yearBuilt"`

	// State is the 2-letter region code; unknown codes use the default region
	State string `json:"state" yaml:"state"`
}

// PolicyProfile describes the requested policy
type PolicyProfile struct {
	// CoverageAmount is the sum insured
	CoverageAmount decimal.Decimal `json:"coverageAmount" yaml:"coverageAmount"`
}

// QuoteInput is everything the calculator needs from a quote.
// It is treated as immutable for the duration of one calculation.
type QuoteInput struct {
	Property PropertyProfile `json:"property" yaml:"property"`
	Policy   PolicyProfile   `json:"policy" yaml:"policy"`
}

// Age returns the property age in whole years at the given date.
// It is negative when YearBuilt lies after at's year.
func (q QuoteInput) Age(at time.Time) int {
	return at.Year() - q.Property.YearBuilt
}
