package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-estimator/internal/errors"
)

// execute runs the root command with fresh flag values
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile, ratesFile, verbose = "", "", false
	factorsFormat = ""
	estimateOpts = estimateOptions{}
	rateOpts.file, rateOpts.date, rateOpts.format = "", "", ""
	rateOpts.security, rateOpts.additionalCoverages = nil, nil

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestEstimateFromFlags(t *testing.T) {
	out, err := execute(t, "estimate",
		"--type", "Single Family Home", "--year-built", "2014", "--state", "CA",
		"--coverage", "200000", "--date", "2024-06-15", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"premium": 1026.00`)
	assert.NotContains(t, out, "minimumPremium")
}

func TestEstimateFromFileWithRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
propertyDetails:
  propertyType: Single Family Home
  yearBuilt: 2014
  address:
    state: CA
policyDetails:
  coverageAmount: 200000
evaluationDate: "2024-06-15"
`), 0o644))

	out, err := execute(t, "estimate", "--file", path, "--range")
	require.NoError(t, err)
	assert.Contains(t, out, "$1,026.00")
	assert.Contains(t, out, "$872.10")
	assert.Contains(t, out, "$1,179.90")
}

func TestEstimateExplain(t *testing.T) {
	out, err := execute(t, "estimate",
		"--type", "Castle", "--year-built", "2014", "--state", "ZZ",
		"--coverage", "200000", "--date", "2024-06-15", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "Premium calculated as:")
	assert.Contains(t, out, "uses the default region")
}

func TestEstimateRequiresQuote(t *testing.T) {
	_, err := execute(t, "estimate", "--state", "CA")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestEstimateRejectsFutureYear(t *testing.T) {
	_, err := execute(t, "estimate",
		"--type", "Apartment", "--year-built", "2030", "--coverage", "1000", "--date", "2024-06-15")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestFactorsFromRatesFile(t *testing.T) {
	out, err := execute(t, "factors", "--rates", filepath.Join("..", "..", "..", "configs", "rates.hcl"), "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "version: \"2024.1\"")
}

func TestRateFromFlags(t *testing.T) {
	out, err := execute(t, "rate",
		"--type", "Single Family Home", "--construction", "Brick", "--year-built", "2014",
		"--sqft", "2000", "--state", "CA", "--coverage", "250000", "--deductible", "1000",
		"--credit-score", "720", "--security", "Alarm System", "--security", "Smoke Detectors",
		"--add-on", "Flood Protection", "--date", "2024-06-15", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"premium": 499.79`)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}
