// Package pricing - HCL rate table loader
//
// A rate table file looks like:
//
//	version              = "2024.1"
//	base_rates           = { "Single Family Home" = 500, Apartment = 350 }
//	seasonal_adjustments = [1.05, 1.03, 1.00, 0.98, 0.97, 0.95, 0.96, 0.98, 0.99, 1.00, 1.02, 1.04]
//	regional_factors     = {
//	  CA      = { "Single Family Home" = 1.08 }
//	  default = { "Single Family Home" = 1.00, Apartment = 0.98 }
//	}
//
// seasonal_adjustments is indexed by month, 0 = January.
package pricing

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"premium-estimator/core/types"
	"premium-estimator/internal/errors"
)

const (
	attrVersion  = "version"
	attrBase     = "base_rates"
	attrSeasonal = "seasonal_adjustments"
	attrRegional = "regional_factors"
)

// LoadFile parses and validates a rate table file
func LoadFile(path string) (*RateTable, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to read rate table %s", path)
	}
	return ParseHCL(src, path)
}

// ParseHCL parses rate table source. filename is only used in diagnostics.
func ParseHCL(src []byte, filename string) (*RateTable, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid rate table syntax", diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.Parsing("rate table must only contain attributes", diags)
	}

	var (
		version  string
		base     map[types.PropertyType]decimal.Decimal
		seasonal map[int]decimal.Decimal
		regional = map[string]map[types.PropertyType]decimal.Decimal{}
	)

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, errors.Parsing(fmt.Sprintf("cannot evaluate %s", name), diags)
		}
		if val.IsNull() || !val.IsWhollyKnown() {
			return nil, parseErrorAt(attr, "%s must have a value", name)
		}

		var err error
		switch name {
		case attrVersion:
			if val.Type() != cty.String {
				return nil, parseErrorAt(attr, "%s must be a string", name)
			}
			version = val.AsString()
		case attrBase:
			base, err = factorObject(val)
		case attrSeasonal:
			seasonal, err = monthList(val)
		case attrRegional:
			if !isObjectLike(val) {
				return nil, parseErrorAt(attr, "%s must be an object of regions", name)
			}
			for it := val.ElementIterator(); it.Next(); {
				k, v := it.Element()
				factors, ferr := factorObject(v)
				if ferr != nil {
					err = fmt.Errorf("region %s: %w", k.AsString(), ferr)
					break
				}
				regional[k.AsString()] = factors
			}
		default:
			return nil, parseErrorAt(attr, "unknown attribute %q", name)
		}
		if err != nil {
			return nil, errors.Parsing(fmt.Sprintf("invalid %s at %s", name, attr.Range), err)
		}
	}

	return NewRateTable(version, base, seasonal, regional)
}

func parseErrorAt(attr *hcl.Attribute, format string, args ...interface{}) error {
	return errors.Newf(errors.TypeParsing, format, args...).WithContext("range", attr.Range.String())
}

func isObjectLike(v cty.Value) bool {
	return v.Type().IsObjectType() || v.Type().IsMapType()
}

// factorObject converts { "Property Type" = number, ... }
func factorObject(v cty.Value) (map[types.PropertyType]decimal.Decimal, error) {
	if !isObjectLike(v) {
		return nil, fmt.Errorf("expected an object keyed by property type, got %s", v.Type().FriendlyName())
	}
	out := make(map[types.PropertyType]decimal.Decimal)
	for it := v.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		n, err := ctyDecimal(ev)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k.AsString(), err)
		}
		out[types.PropertyType(k.AsString())] = n
	}
	return out, nil
}

// monthList converts [jan, feb, ...] into month-index keyed factors
func monthList(v cty.Value) (map[int]decimal.Decimal, error) {
	if !v.Type().IsTupleType() && !v.Type().IsListType() {
		return nil, fmt.Errorf("expected a list of monthly factors, got %s", v.Type().FriendlyName())
	}
	if n := v.LengthInt(); n > 12 {
		return nil, fmt.Errorf("expected at most 12 monthly factors, got %d", n)
	}
	out := make(map[int]decimal.Decimal)
	month := 0
	for it := v.ElementIterator(); it.Next(); month++ {
		_, ev := it.Element()
		n, err := ctyDecimal(ev)
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", month, err)
		}
		out[month] = n
	}
	return out, nil
}

func ctyDecimal(v cty.Value) (decimal.Decimal, error) {
	if v.IsNull() || v.Type() != cty.Number {
		return decimal.Zero, fmt.Errorf("expected a number, got %s", v.Type().FriendlyName())
	}
	return decimal.NewFromString(v.AsBigFloat().Text('f', -1))
}
