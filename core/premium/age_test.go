package premium

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAgeImpactBreakpoints(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{-3, "0.88"},
		{0, "0.88"},
		{5, "0.88"},
		{6, "0.936"},
		{10, "1.00"},
		{11, "1.008"},
		{20, "1.08"},
		{21, "1.086"},
		{40, "1.20"},
		{41, "1.205"},
		{60, "1.30"},
		{61, "1.302"},
		{100, "1.38"},
		{209, "1.598"},
		{210, "1.60"},
		{211, "1.60"},
		{1000, "1.60"},
	}

	for _, tt := range tests {
		got := AgeImpact(tt.age)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("AgeImpact(%d) = %s, want %s", tt.age, got, tt.want)
		}
	}
}

// TestAgeImpactMonotonic proves the curve never decreases and only jumps at 5 -> 6
func TestAgeImpactMonotonic(t *testing.T) {
	maxStep := decimal.RequireFromString("0.016")
	prev := AgeImpact(-10)
	for age := -9; age <= 400; age++ {
		cur := AgeImpact(age)
		if cur.LessThan(prev) {
			t.Fatalf("AgeImpact decreased at age %d: %s -> %s", age, prev, cur)
		}
		if age != 6 && cur.Sub(prev).GreaterThan(maxStep) {
			t.Errorf("unexpected jump at age %d: %s -> %s", age, prev, cur)
		}
		prev = cur
	}

	jump := AgeImpact(6).Sub(AgeImpact(5))
	if !jump.Equal(decimal.RequireFromString("0.056")) {
		t.Errorf("expected 0.056 step between ages 5 and 6, got %s", jump)
	}
}

// TestAgeImpactContinuousAtBandEdges proves each band starts where the previous one ends
func TestAgeImpactContinuousAtBandEdges(t *testing.T) {
	for i := 1; i < len(ageCurve)-1; i++ {
		edge := ageCurve[i].upTo
		next := ageCurve[i+1]
		fromNext := next.base.Add(decimal.NewFromInt(int64(edge - next.from)).Mul(next.step))
		if !AgeImpact(edge).Equal(fromNext) {
			t.Errorf("discontinuity at age %d: %s vs %s", edge, AgeImpact(edge), fromNext)
		}
	}
}
