// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import "strings"

// PropertyType identifies the kind of insured dwelling.
// Values are the display names used on the wire.
type PropertyType string

const (
	SingleFamilyHome PropertyType = "Single Family Home"
	Apartment        PropertyType = "Apartment"
	Condominium      PropertyType = "Condominium"
	Townhouse        PropertyType = "Townhouse"
	MobileHome       PropertyType = "Mobile Home"
)

// PropertyTypes lists the known property types in display order
func PropertyTypes() []PropertyType {
	return []PropertyType{SingleFamilyHome, Apartment, Condominium, Townhouse, MobileHome}
}

// String returns the string representation of the property type
func (p PropertyType) String() string {
	return string(p)
}

// IsKnown checks if the property type is a member of the enumeration.
// Unknown types are still priced, at the default base rate.
func (p PropertyType) IsKnown() bool {
	switch p {
	case SingleFamilyHome, Apartment, Condominium, Townhouse, MobileHome:
		return true
	default:
		return false
	}
}

// DefaultRegion is the region key used when a state has no factor table
const DefaultRegion = "default"

// NormalizeRegion canonicalizes a state code for lookup ("ca " -> "CA")
func NormalizeRegion(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}

// Adjustment names reported in a CalculationResult
const (
	AdjustmentSeasonal     = "seasonal"
	AdjustmentPropertyAge  = "propertyAge"
	AdjustmentRegionalRisk = "regionalRisk"
)
