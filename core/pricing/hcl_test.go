package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-estimator/core/types"
	"premium-estimator/internal/errors"
)

// TestLoadFileMatchesBuiltin proves the shipped HCL file encodes the built-in tables
func TestLoadFileMatchesBuiltin(t *testing.T) {
	table, err := LoadFile("testdata/rates.hcl")
	require.NoError(t, err)

	assert.Equal(t, "2024.1", table.Version())
	assert.Equal(t, DefaultRateTable().Hash(), table.Hash())
	assert.True(t, table.SeasonalFactor(5).Equal(d("0.95")))
	assert.True(t, table.RegionalFactor("FL", types.Townhouse).Equal(d("1.13")))
}

func TestParseHCLPartialSeasonal(t *testing.T) {
	src := `
base_rates           = { Apartment = 350 }
seasonal_adjustments = [1.10, 1.05]
regional_factors     = { default = { Apartment = 0.98 } }
`
	table, err := ParseHCL([]byte(src), "partial.hcl")
	require.NoError(t, err)

	assert.True(t, table.SeasonalFactor(0).Equal(d("1.1")))
	assert.True(t, table.SeasonalFactor(1).Equal(d("1.05")))
	assert.True(t, table.SeasonalFactor(6).Equal(NeutralFactor))
	assert.Equal(t, "", table.Version())
}

func TestParseHCLErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		errType errors.Type
	}{
		{"syntax", `base_rates = {`, errors.TypeParsing},
		{"unknown attribute", `surcharge = 1.2`, errors.TypeParsing},
		{"block not allowed", `region "CA" {}`, errors.TypeParsing},
		{"version not string", `version = 3`, errors.TypeParsing},
		{"base rate not number", `base_rates = { Apartment = "cheap" }`, errors.TypeParsing},
		{"too many months", `seasonal_adjustments = [1,1,1,1,1,1,1,1,1,1,1,1,1]`, errors.TypeParsing},
		{"seasonal not a list", `seasonal_adjustments = { jan = 1 }`, errors.TypeParsing},
		{"missing default region", `
base_rates       = { Apartment = 350 }
regional_factors = { CA = { Apartment = 1.05 } }
`, errors.TypeConfig},
		{"empty file", ``, errors.TypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHCL([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.errType), "expected %s, got %v", tt.errType, err)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.hcl")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}
