package premium

import (
	"github.com/shopspring/decimal"
)

// ageBand is one segment of the property age curve:
// factor = base + (age - from) * step, with the increment capped at maxIncrement when set.
type ageBand struct {
	upTo         int // inclusive upper age; last band ignores it
	base         decimal.Decimal
	from         int
	step         decimal.Decimal
	maxIncrement *decimal.Decimal
}

var ageCurve = func() []ageBand {
	d := decimal.RequireFromString
	maxInc := d("0.30")
	return []ageBand{
		{upTo: 5, base: d("0.88")},
		{upTo: 10, base: d("0.92"), from: 5, step: d("0.016")},
		{upTo: 20, base: d("1.00"), from: 10, step: d("0.008")},
		{upTo: 40, base: d("1.08"), from: 20, step: d("0.006")},
		{upTo: 60, base: d("1.20"), from: 40, step: d("0.005")},
		{base: d("1.30"), from: 60, step: d("0.002"), maxIncrement: &maxInc},
	}
}()

// AgeImpact returns the property age multiplier.
// The first band whose upper bound covers age wins, so zero and negative
// ages price as new construction. The step from 0.88 at age 5 to 0.936 at
// age 6 is part of the curve; beyond 60 years the factor plateaus at 1.60.
func AgeImpact(age int) decimal.Decimal {
	band := ageCurve[len(ageCurve)-1]
	for _, b := range ageCurve[:len(ageCurve)-1] {
		if age <= b.upTo {
			band = b
			break
		}
	}

	increment := decimal.NewFromInt(int64(age - band.from)).Mul(band.step)
	if band.maxIncrement != nil {
		increment = decimal.Min(increment, *band.maxIncrement)
	}
	return band.base.Add(increment)
}
