package pricing

import (
	"github.com/shopspring/decimal"

	"premium-estimator/core/types"
)

// DefaultVersion labels the built-in tables
const DefaultVersion = "builtin-1"

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultRateTable returns the built-in rate tables.
// It panics only if the literals below stop validating.
func DefaultRateTable() *RateTable {
	t, err := NewRateTable(DefaultVersion, defaultBaseRates(), defaultSeasonal(), defaultRegional())
	if err != nil {
		panic("pricing: built-in rate table is invalid: " + err.Error())
	}
	return t
}

func defaultBaseRates() map[types.PropertyType]decimal.Decimal {
	return map[types.PropertyType]decimal.Decimal{
		types.SingleFamilyHome: d("500"),
		types.Apartment:        d("350"),
		types.Condominium:      d("400"),
		types.Townhouse:        d("450"),
		types.MobileHome:       d("600"),
	}
}

func defaultSeasonal() map[int]decimal.Decimal {
	return map[int]decimal.Decimal{
		0:  d("1.05"), // winter
		1:  d("1.03"),
		2:  d("1.00"),
		3:  d("0.98"),
		4:  d("0.97"),
		5:  d("0.95"), // summer discount
		6:  d("0.96"),
		7:  d("0.98"),
		8:  d("0.99"),
		9:  d("1.00"),
		10: d("1.02"),
		11: d("1.04"),
	}
}

func defaultRegional() map[string]map[types.PropertyType]decimal.Decimal {
	return map[string]map[types.PropertyType]decimal.Decimal{
		"CA": {
			types.SingleFamilyHome: d("1.08"),
			types.Apartment:        d("1.05"),
			types.Condominium:      d("1.06"),
			types.Townhouse:        d("1.07"),
			types.MobileHome:       d("1.12"),
		},
		"FL": {
			types.SingleFamilyHome: d("1.15"),
			types.Apartment:        d("1.10"),
			types.Condominium:      d("1.12"),
			types.Townhouse:        d("1.13"),
			types.MobileHome:       d("1.25"),
		},
		types.DefaultRegion: {
			types.SingleFamilyHome: d("1.00"),
			types.Apartment:        d("0.98"),
			types.Condominium:      d("0.99"),
			types.Townhouse:        d("1.01"),
			types.MobileHome:       d("1.05"),
		},
	}
}
