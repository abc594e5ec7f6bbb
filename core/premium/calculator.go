// Package premium estimates insurance premiums from a quote and the active rate table.
//
// A premium is the coverage-scaled base rate multiplied by the seasonal,
// property age and regional risk factors, in that order, rounded to cents.
// Calculations are pure functions of (quote, evaluation date, rate table):
// the calculator holds no mutable state and may be shared between goroutines.
package premium

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"premium-estimator/core/pricing"
	"premium-estimator/core/types"
	"premium-estimator/internal/errors"
)

var (
	// CoverageUnit is the coverage amount that adds one base rate to the premium.
	// The scaling is linear and deliberately uncapped.
	CoverageUnit = decimal.NewFromInt(200000)

	// RangeLowerMultiplier and RangeUpperMultiplier bound the premium range (±15%)
	RangeLowerMultiplier = decimal.RequireFromString("0.85")
	RangeUpperMultiplier = decimal.RequireFromString("1.15")

	one = decimal.NewFromInt(1)
)

// Calculator computes premium estimates
type Calculator struct {
	rates  pricing.Source
	clock  Clock
	logger *zap.Logger
}

// Option configures a Calculator
type Option func(*Calculator)

// WithClock sets the clock that supplies the evaluation date
func WithClock(clock Clock) Option {
	return func(c *Calculator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a calculator reading rates from source.
// A nil source uses the built-in rate table.
func New(source pricing.Source, opts ...Option) *Calculator {
	if source == nil {
		source = pricing.DefaultRateTable()
	}
	c := &Calculator{
		rates:  source,
		clock:  SystemClock(nil),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RateTable returns the snapshot new calculations will read
func (c *Calculator) RateTable() *pricing.RateTable {
	return c.rates.Current()
}

// Now returns the evaluation date the clock currently reports
func (c *Calculator) Now() time.Time {
	return c.clock.Now()
}

// CalculatePremium estimates the premium for quote at the clock's current date
func (c *Calculator) CalculatePremium(quote types.QuoteInput) (*types.CalculationResult, error) {
	return c.CalculatePremiumAt(quote, c.clock.Now())
}

// CalculatePremiumAt estimates the premium for quote as of at.
// at supplies the month for the seasonal factor and the year for the property age.
func (c *Calculator) CalculatePremiumAt(quote types.QuoteInput, at time.Time) (*types.CalculationResult, error) {
	if err := Validate(quote, at); err != nil {
		return nil, err
	}

	table := c.rates.Current()
	propertyType := types.PropertyType(strings.TrimSpace(quote.Property.PropertyType.String()))

	baseRate, known := table.BaseRate(propertyType)
	basePremium := baseRate.Mul(one.Add(quote.Policy.CoverageAmount.Div(CoverageUnit)))

	seasonal := table.SeasonalFactor(int(at.Month()) - 1)
	ageImpact := AgeImpact(quote.Age(at))
	regional := table.RegionalFactor(quote.Property.State, propertyType)

	premium := basePremium.Mul(seasonal).Mul(ageImpact).Mul(regional).Round(2)

	c.logger.Debug("premium calculated",
		zap.String("propertyType", propertyType.String()),
		zap.Bool("knownPropertyType", known),
		zap.String("state", quote.Property.State),
		zap.Bool("regionFallback", !table.HasRegion(quote.Property.State)),
		zap.String("basePremium", basePremium.String()),
		zap.String("seasonal", seasonal.String()),
		zap.String("propertyAge", ageImpact.String()),
		zap.String("regionalRisk", regional.String()),
		zap.String("premium", premium.StringFixed(2)),
		zap.String("rateTable", table.Label()),
	)

	return &types.CalculationResult{
		Premium:  premium,
		BaseRate: basePremium,
		Adjustments: map[string]decimal.Decimal{
			types.AdjustmentSeasonal:     seasonal,
			types.AdjustmentPropertyAge:  ageImpact,
			types.AdjustmentRegionalRisk: regional,
		},
		RateTableVersion: table.Label(),
		EvaluatedAt:      at,
	}, nil
}

// CalculatePremiumRange estimates the premium and a ±15% band around it
func (c *Calculator) CalculatePremiumRange(quote types.QuoteInput) (*types.CalculationResult, error) {
	return c.CalculatePremiumRangeAt(quote, c.clock.Now())
}

// CalculatePremiumRangeAt is CalculatePremiumRange as of at.
// Each bound is rounded on its own from the rounded premium.
func (c *Calculator) CalculatePremiumRangeAt(quote types.QuoteInput, at time.Time) (*types.CalculationResult, error) {
	result, err := c.CalculatePremiumAt(quote, at)
	if err != nil {
		return nil, err
	}

	minimum := result.Premium.Mul(RangeLowerMultiplier).Round(2)
	maximum := result.Premium.Mul(RangeUpperMultiplier).Round(2)
	recommended := result.Premium

	result.MinimumPremium = &minimum
	result.MaximumPremium = &maximum
	result.RecommendedPremium = &recommended
	return result, nil
}

// CalculationFactors returns a detached copy of the active rate tables
func (c *Calculator) CalculationFactors() *pricing.Factors {
	return c.rates.Current().Factors()
}

// Validate rejects quotes that cannot be priced as of at.
// Unknown property types and states are not errors.
func Validate(quote types.QuoteInput, at time.Time) error {
	if strings.TrimSpace(quote.Property.PropertyType.String()) == "" {
		return errors.InvalidInput("propertyType is required")
	}
	if quote.Property.YearBuilt <= 0 {
		return errors.InvalidInput("yearBuilt is required")
	}
	if quote.Property.YearBuilt > at.Year() {
		return errors.InvalidInputf("yearBuilt %d is after the evaluation year %d", quote.Property.YearBuilt, at.Year()).
			WithContext("yearBuilt", quote.Property.YearBuilt)
	}
	if quote.Policy.CoverageAmount.IsNegative() {
		return errors.InvalidInputf("coverageAmount must not be negative: %s", quote.Policy.CoverageAmount).
			WithContext("coverageAmount", quote.Policy.CoverageAmount.String())
	}
	return nil
}
