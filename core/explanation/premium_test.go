package explanation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-estimator/core/premium"
	"premium-estimator/core/pricing"
	"premium-estimator/core/types"
)

var june2024 = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func explain(t *testing.T, quote types.QuoteInput) *PremiumExplanation {
	t.Helper()
	table := pricing.DefaultRateTable()
	result, err := premium.New(table).CalculatePremiumAt(quote, june2024)
	require.NoError(t, err)
	return Explain(table, quote, result)
}

func TestExplainKnownQuote(t *testing.T) {
	e := explain(t, types.QuoteInput{
		Property: types.PropertyProfile{PropertyType: types.SingleFamilyHome, YearBuilt: 2014, State: "CA"},
		Policy:   types.PolicyProfile{CoverageAmount: decimal.RequireFromString("200000")},
	})

	assert.Equal(t, "500 × (1 + 200000 / 200000) × 0.95 × 1 × 1.08 = 1026.00", e.Formula)
	assert.Empty(t, e.Fallbacks)
	assert.Equal(t, pricing.DefaultVersion, e.RateTable)
	for _, in := range e.Inputs {
		assert.NotEqual(t, SourceDefault, in.Source, in.Name)
	}
}

func TestExplainReportsFallbacks(t *testing.T) {
	e := explain(t, types.QuoteInput{
		Property: types.PropertyProfile{PropertyType: "Castle", YearBuilt: 2000, State: "ZZ"},
		Policy:   types.PolicyProfile{CoverageAmount: decimal.RequireFromString("100000")},
	})

	require.Len(t, e.Fallbacks, 3)
	assert.Contains(t, e.Fallbacks[0], "Castle")
	assert.Contains(t, e.Fallbacks[1], "default region")
	assert.Contains(t, e.Fallbacks[2], "no factor")
	assert.Contains(t, e.ToNarrative(), "Fallbacks:")
}
