package rating

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-estimator/core/pricing"
	"premium-estimator/core/types"
	"premium-estimator/internal/errors"
)

var at = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestRateTypicalHome(t *testing.T) {
	ws, err := Rate(pricing.DefaultRateTable(), Input{
		PropertyType:        types.SingleFamilyHome,
		ConstructionType:    "Brick",
		YearBuilt:           2014,
		SquareFootage:       d("2000"),
		State:               "CA",
		SecurityFeatures:    []string{"Alarm System", "Smoke Detectors", "Alarm System"},
		CoverageAmount:      d("250000"),
		Deductible:          d("1000"),
		AdditionalCoverages: []string{"Flood Protection"},
		CreditScore:         720,
		PreviousClaims:      0,
	}, at)
	require.NoError(t, err)

	assert.True(t, ws.BaseRate.Equal(d("500")))
	assert.Len(t, ws.Lines, 10)
	assert.True(t, ws.Factor(LineSecurityDiscount).Equal(d("0.92")), "duplicate features count once")
	assert.True(t, ws.Factor(LineSize).Equal(d("1.2")))
	assert.Equal(t, "499.79", ws.Premium.StringFixed(2))
	assert.Equal(t, pricing.DefaultVersion, ws.RateTableVersion)
}

// TestRateWorstCase exercises every ceiling tier and the security discount cap
func TestRateWorstCase(t *testing.T) {
	ws, err := Rate(nil, Input{
		PropertyType:     types.MobileHome,
		ConstructionType: "Wood Frame",
		YearBuilt:        1970,
		SquareFootage:    d("5000"),
		State:            "zz",
		SecurityFeatures: []string{"Alarm System", "Smoke Detectors", "Fire Alarm", "Security Guard", "CCTV", "Doorman", "Key Card Access"},
		CoverageAmount:   d("650000"),
		Deductible:       d("250"),
		AdditionalCoverages: []string{
			"Flood Protection", "Earthquake Coverage", "Theft Protection",
			"Fire Protection", "Water Damage", "Jewelry Coverage",
		},
		CreditScore:    500,
		PreviousClaims: 5,
	}, at)
	require.NoError(t, err)

	assert.True(t, ws.Factor(LineSecurityDiscount).Equal(d("0.8")))
	assert.True(t, ws.Factor(LineAdditionalCoverage).Equal(d("1.7")))
	assert.True(t, ws.Factor(LineState).Equal(d("1")))
	assert.Equal(t, "6143.62", ws.Premium.StringFixed(2))
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"coverage at 100k", atMost(coverageTiers, d("100000")), "0.8"},
		{"coverage just above 100k", atMost(coverageTiers, d("100000.01")), "0.9"},
		{"coverage above 500k", atMost(coverageTiers, d("500001")), "1.3"},
		{"deductible 2000", atLeast(deductibleTiers, d("2000")), "0.8"},
		{"deductible 499", atLeast(deductibleTiers, d("499")), "1.1"},
		{"credit 650", atLeast(creditTiers, d("650")), "1.0"},
		{"credit 549", atLeast(creditTiers, d("549")), "1.3"},
		{"age 5", atMost(ageTiers, d("5")), "0.9"},
		{"age 51", atMost(ageTiers, d("51")), "1.5"},
		{"claims 2", claimsFactor(2), "1.15"},
		{"claims 9", claimsFactor(9), "1.5"},
		{"unknown construction", constructionFactor("Straw"), "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.got.Equal(d(tt.want)), "got %s, want %s", tt.got, tt.want)
		})
	}
}

func TestRateValidation(t *testing.T) {
	valid := Input{PropertyType: types.Apartment, YearBuilt: 2000, CoverageAmount: d("100000")}

	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"future year", func(in *Input) { in.YearBuilt = 2030 }},
		{"negative coverage", func(in *Input) { in.CoverageAmount = d("-1") }},
		{"negative deductible", func(in *Input) { in.Deductible = d("-5") }},
		{"negative area", func(in *Input) { in.SquareFootage = d("-5") }},
		{"negative claims", func(in *Input) { in.PreviousClaims = -1 }},
		{"missing type", func(in *Input) { in.PropertyType = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := Rate(nil, in, at)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInput(err))
		})
	}
}
