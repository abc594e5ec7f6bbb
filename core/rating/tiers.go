package rating

import (
	"github.com/shopspring/decimal"
)

var d = decimal.RequireFromString

// tier maps a value range to a multiplier. Tiers are checked in order; the
// first whose bound admits the value wins. A nil bound admits everything.
type tier struct {
	bound  *decimal.Decimal
	factor decimal.Decimal
}

func bounded(bound, factor string) tier {
	b := d(bound)
	return tier{bound: &b, factor: d(factor)}
}

func otherwise(factor string) tier {
	return tier{factor: d(factor)}
}

// atMost picks the first tier with value <= bound
func atMost(tiers []tier, value decimal.Decimal) decimal.Decimal {
	for _, t := range tiers {
		if t.bound == nil || value.LessThanOrEqual(*t.bound) {
			return t.factor
		}
	}
	return decimal.NewFromInt(1)
}

// atLeast picks the first tier with value >= bound
func atLeast(tiers []tier, value decimal.Decimal) decimal.Decimal {
	for _, t := range tiers {
		if t.bound == nil || value.GreaterThanOrEqual(*t.bound) {
			return t.factor
		}
	}
	return decimal.NewFromInt(1)
}

var (
	ageTiers = []tier{
		bounded("5", "0.9"),
		bounded("10", "1.0"),
		bounded("20", "1.1"),
		bounded("30", "1.2"),
		bounded("50", "1.3"),
		otherwise("1.5"),
	}

	coverageTiers = []tier{
		bounded("100000", "0.8"),
		bounded("200000", "0.9"),
		bounded("300000", "1.0"),
		bounded("400000", "1.1"),
		bounded("500000", "1.2"),
		otherwise("1.3"),
	}

	// bounds are minimums for these two
	deductibleTiers = []tier{
		bounded("2000", "0.8"),
		bounded("1500", "0.85"),
		bounded("1000", "0.9"),
		bounded("750", "0.95"),
		bounded("500", "1.0"),
		otherwise("1.1"),
	}

	creditTiers = []tier{
		bounded("750", "0.85"),
		bounded("700", "0.9"),
		bounded("650", "1.0"),
		bounded("600", "1.1"),
		bounded("550", "1.2"),
		otherwise("1.3"),
	}

	claimsFactors = []decimal.Decimal{d("0.9"), d("1.0"), d("1.15"), d("1.3")}
	claimsCeiling = d("1.5")

	constructionFactors = map[string]decimal.Decimal{
		"Brick":       d("0.9"),
		"Concrete":    d("0.85"),
		"Steel Frame": d("0.95"),
		"Wood Frame":  d("1.2"),
		"Stone":       d("0.95"),
	}

	additionalCoverageLoadings = map[string]decimal.Decimal{
		"Flood Protection":    d("0.15"),
		"Earthquake Coverage": d("0.2"),
		"Theft Protection":    d("0.1"),
		"Fire Protection":     d("0.05"),
		"Water Damage":        d("0.1"),
		"Jewelry Coverage":    d("0.1"),
	}

	securityDiscounts = map[string]decimal.Decimal{
		"Alarm System":    d("0.05"),
		"Smoke Detectors": d("0.03"),
		"Fire Alarm":      d("0.03"),
		"Security Guard":  d("0.07"),
		"CCTV":            d("0.04"),
		"Doorman":         d("0.05"),
		"Key Card Access": d("0.03"),
	}
	maxSecurityDiscount = d("0.2")

	stateFactors = map[string]decimal.Decimal{
		"CA": d("1.2"),
		"FL": d("1.3"),
		"NY": d("1.15"),
		"TX": d("1.1"),
		"IL": d("1.05"),
		"WA": d("1.0"),
		"MI": d("1.0"),
	}

	squareFootageUnit = d("10000")
)
