// Package pricing provides immutable rate table snapshots with content hashing.
package pricing

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"premium-estimator/core/determinism"
	"premium-estimator/core/types"
	"premium-estimator/internal/errors"
)

var (
	// DefaultBaseRate prices property types missing from the base rate table
	DefaultBaseRate = decimal.NewFromInt(500)

	// NeutralFactor is the multiplier used when a factor lookup misses
	NeutralFactor = decimal.NewFromInt(1)
)

// RateTable is IMMUTABLE after creation.
// It holds the base rates and adjustment factor tables a calculation reads.
// A *RateTable may be shared between goroutines without locking.
type RateTable struct {
	version  string
	base     map[types.PropertyType]decimal.Decimal
	seasonal map[int]decimal.Decimal
	regional map[string]map[types.PropertyType]decimal.Decimal
	hash     determinism.ContentHash
}

// Factors is a detached copy of a rate table, safe to hand to callers
type Factors struct {
	Version             string                                            `json:"version"`
	Hash                string                                            `json:"hash"`
	BaseRates           map[types.PropertyType]decimal.Decimal            `json:"baseRates"`
	SeasonalAdjustments map[int]decimal.Decimal                           `json:"seasonalAdjustments"`
	RegionalFactors     map[string]map[types.PropertyType]decimal.Decimal `json:"regionalFactors"`
}

// NewRateTable validates the tables and returns a sealed snapshot.
// The input maps are copied; later changes to them are not observed.
func NewRateTable(
	version string,
	baseRates map[types.PropertyType]decimal.Decimal,
	seasonal map[int]decimal.Decimal,
	regional map[string]map[types.PropertyType]decimal.Decimal,
) (*RateTable, error) {
	t := &RateTable{
		version:  version,
		base:     copyTypeMap(baseRates),
		seasonal: make(map[int]decimal.Decimal, len(seasonal)),
		regional: make(map[string]map[types.PropertyType]decimal.Decimal, len(regional)),
	}
	for month, factor := range seasonal {
		t.seasonal[month] = factor
	}
	for region, factors := range regional {
		key := region
		if region != types.DefaultRegion {
			key = types.NormalizeRegion(region)
		}
		if _, dup := t.regional[key]; dup {
			return nil, errors.Newf(errors.TypeConfig, "region %q is defined more than once", key)
		}
		t.regional[key] = copyTypeMap(factors)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(t.canonical())
	if err != nil {
		return nil, errors.Internal("failed to encode rate table", err)
	}
	t.hash = determinism.ComputeHash(data)
	return t, nil
}

func (t *RateTable) validate() error {
	if len(t.base) == 0 {
		return errors.Config("rate table has no base rates")
	}
	for pt, rate := range t.base {
		if pt == "" {
			return errors.Config("base rate has an empty property type")
		}
		if rate.IsNegative() {
			return errors.Newf(errors.TypeConfig, "base rate for %q is negative: %s", pt, rate)
		}
	}

	for month, factor := range t.seasonal {
		if month < 0 || month > 11 {
			return errors.Newf(errors.TypeConfig, "seasonal month index %d is outside 0-11", month)
		}
		if !factor.IsPositive() {
			return errors.Newf(errors.TypeConfig, "seasonal factor for month %d must be positive: %s", month, factor)
		}
	}

	defaults, ok := t.regional[types.DefaultRegion]
	if !ok {
		return errors.Newf(errors.TypeConfig, "regional factors must define a %q region", types.DefaultRegion)
	}
	for pt := range t.base {
		if _, ok := defaults[pt]; !ok {
			return errors.Newf(errors.TypeConfig, "default region has no factor for %q", pt).
				WithContext("propertyType", pt.String())
		}
	}
	for region, factors := range t.regional {
		for pt, factor := range factors {
			if !factor.IsPositive() {
				return errors.Newf(errors.TypeConfig, "regional factor %s/%s must be positive: %s", region, pt, factor)
			}
		}
	}
	return nil
}

// Version returns the configured version label
func (t *RateTable) Version() string {
	return t.version
}

// Hash returns the content hash of the tables
func (t *RateTable) Hash() determinism.ContentHash {
	return t.hash
}

// Label identifies the snapshot: the version when set, otherwise the short hash
func (t *RateTable) Label() string {
	if t.version != "" {
		return t.version
	}
	return "sha256:" + t.hash.Short()
}

// BaseRate returns the base premium for a property type.
// Unknown types use DefaultBaseRate; the second result reports whether the type was found.
func (t *RateTable) BaseRate(pt types.PropertyType) (decimal.Decimal, bool) {
	if rate, ok := t.base[pt]; ok {
		return rate, true
	}
	return DefaultBaseRate, false
}

// SeasonalFactor returns the multiplier for a 0-based month index, or 1 if absent
func (t *RateTable) SeasonalFactor(month int) decimal.Decimal {
	if factor, ok := t.seasonal[month]; ok {
		return factor
	}
	return NeutralFactor
}

// HasSeasonalFactor reports whether month has an explicit multiplier
func (t *RateTable) HasSeasonalFactor(month int) bool {
	_, ok := t.seasonal[month]
	return ok
}

// RegionalFactor returns the multiplier for a (state, property type) pair.
// States without a table use the default region; a missing property type yields 1.
func (t *RateTable) RegionalFactor(state string, pt types.PropertyType) decimal.Decimal {
	factors, ok := t.regional[types.NormalizeRegion(state)]
	if !ok {
		factors = t.regional[types.DefaultRegion]
	}
	if factor, ok := factors[pt]; ok {
		return factor
	}
	return NeutralFactor
}

// HasRegion reports whether state has its own factor table
func (t *RateTable) HasRegion(state string) bool {
	_, ok := t.regional[types.NormalizeRegion(state)]
	return ok
}

// Factors returns a deep copy of the tables
func (t *RateTable) Factors() *Factors {
	f := &Factors{
		Version:             t.Label(),
		Hash:                t.hash.Hex(),
		BaseRates:           copyTypeMap(t.base),
		SeasonalAdjustments: make(map[int]decimal.Decimal, len(t.seasonal)),
		RegionalFactors:     make(map[string]map[types.PropertyType]decimal.Decimal, len(t.regional)),
	}
	for month, factor := range t.seasonal {
		f.SeasonalAdjustments[month] = factor
	}
	for region, factors := range t.regional {
		f.RegionalFactors[region] = copyTypeMap(factors)
	}
	return f
}

// Current returns t itself so a bare table can serve as a Source
func (t *RateTable) Current() *RateTable {
	return t
}

// canonicalTable is the hashed encoding; every collection is sorted
type canonicalTable struct {
	Base     [][2]string            `json:"base"`
	Seasonal [][2]string            `json:"seasonal"`
	Regional map[string][][2]string `json:"regional"`
}

func (t *RateTable) canonical() canonicalTable {
	c := canonicalTable{Regional: make(map[string][][2]string, len(t.regional))}
	for _, pt := range determinism.SortedKeys(t.base) {
		c.Base = append(c.Base, [2]string{pt.String(), t.base[pt].String()})
	}
	for _, month := range determinism.SortedKeys(t.seasonal) {
		c.Seasonal = append(c.Seasonal, [2]string{fmt.Sprint(month), t.seasonal[month].String()})
	}
	for region, factors := range t.regional {
		var rows [][2]string
		for _, pt := range determinism.SortedKeys(factors) {
			rows = append(rows, [2]string{pt.String(), factors[pt].String()})
		}
		c.Regional[region] = rows
	}
	return c
}

func copyTypeMap(m map[types.PropertyType]decimal.Decimal) map[types.PropertyType]decimal.Decimal {
	out := make(map[types.PropertyType]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
