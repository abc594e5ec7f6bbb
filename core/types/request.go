// Package types - Quote request documents
package types

import (
	"strings"

	"github.com/shopspring/decimal"

	"premium-estimator/internal/errors"
)

// QuoteRequest is the nested quote document accepted by the HTTP API and
// by CLI quote files (JSON or YAML).
type QuoteRequest struct {
	PropertyDetails *PropertyDetails `json:"propertyDetails" yaml:"propertyDetails"`
	PolicyDetails   *PolicyDetails   `json:"policyDetails" yaml:"policyDetails"`

	// EvaluationDate optionally pins the date (YYYY-MM-DD); empty means today
	EvaluationDate string `json:"evaluationDate,omitempty" yaml:"evaluationDate,omitempty"`
}

// PropertyDetails is the property section of a QuoteRequest
type PropertyDetails struct {
	PropertyType PropertyType `json:"propertyType" yaml:"propertyType"`
	YearBuilt    int          `json:"yearBuilt" yaml:"yearBuilt"`
	Address      Address      `json:"address" yaml:"address"`
}

// Address carries the region used for regional factors
type Address struct {
	State string `json:"state" yaml:"state"`
}

// PolicyDetails is the policy section of a QuoteRequest
type PolicyDetails struct {
	CoverageAmount *decimal.Decimal `json:"coverageAmount" yaml:"coverageAmount"`
}

// QuoteInput flattens the request, rejecting structurally missing sections
func (r *QuoteRequest) QuoteInput() (QuoteInput, error) {
	if r.PropertyDetails == nil {
		return QuoteInput{}, errors.InvalidInput("propertyDetails is required")
	}
	if r.PolicyDetails == nil || r.PolicyDetails.CoverageAmount == nil {
		return QuoteInput{}, errors.InvalidInput("policyDetails.coverageAmount is required")
	}
	return QuoteInput{
		Property: PropertyProfile{
			PropertyType: PropertyType(strings.TrimSpace(string(r.PropertyDetails.PropertyType))),
			YearBuilt:    r.PropertyDetails.YearBuilt,
			State:        r.PropertyDetails.Address.State,
		},
		Policy: PolicyProfile{
			CoverageAmount: *r.PolicyDetails.CoverageAmount,
		},
	}, nil
}
