// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"premium-estimator/core/pricing"
	"premium-estimator/core/rating"
	"premium-estimator/core/types"
	"premium-estimator/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatYAML is machine-readable YAML
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag or config value to a Format
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCLI, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatCLI, nil
	default:
		return "", errors.InvalidInputf("unknown output format %q (want cli, json or yaml)", s)
	}
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderEstimate writes a premium estimate
	RenderEstimate(w io.Writer, result *types.CalculationResult) error

	// RenderFactors writes the rate tables
	RenderFactors(w io.Writer, factors *pricing.Factors) error

	// RenderWorksheet writes a rating worksheet
	RenderWorksheet(w io.Writer, ws *rating.Worksheet) error
}

// New returns the formatter for f
func New(f Format) (Formatter, error) {
	switch f {
	case FormatCLI:
		return &cliFormatter{}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	case FormatYAML:
		return &yamlFormatter{}, nil
	default:
		return nil, errors.InvalidInputf("unknown output format %q", f)
	}
}

// EstimateView is the wire form of a CalculationResult. Money is fixed to
// two decimals; multipliers keep their full precision.
type EstimateView struct {
	Premium            json.Number            `json:"premium" yaml:"premium"`
	BaseRate           json.Number            `json:"baseRate" yaml:"baseRate"`
	Adjustments        map[string]json.Number `json:"adjustments" yaml:"adjustments"`
	MinimumPremium     *json.Number           `json:"minimumPremium,omitempty" yaml:"minimumPremium,omitempty"`
	MaximumPremium     *json.Number           `json:"maximumPremium,omitempty" yaml:"maximumPremium,omitempty"`
	RecommendedPremium *json.Number           `json:"recommendedPremium,omitempty" yaml:"recommendedPremium,omitempty"`
	RateTableVersion   string                 `json:"rateTableVersion" yaml:"rateTableVersion"`
	EvaluationDate     string                 `json:"evaluationDate" yaml:"evaluationDate"`
}

// NewEstimateView converts r
func NewEstimateView(r *types.CalculationResult) *EstimateView {
	v := &EstimateView{
		Premium:          money(r.Premium),
		BaseRate:         factor(r.BaseRate),
		Adjustments:      make(map[string]json.Number, len(r.Adjustments)),
		RateTableVersion: r.RateTableVersion,
		EvaluationDate:   r.EvaluatedAt.Format(types.DateLayout),
	}
	for name, f := range r.Adjustments {
		v.Adjustments[name] = factor(f)
	}
	if r.HasRange() {
		v.MinimumPremium = moneyPtr(*r.MinimumPremium)
		v.MaximumPremium = moneyPtr(*r.MaximumPremium)
		v.RecommendedPremium = moneyPtr(*r.RecommendedPremium)
	}
	return v
}

// FactorsView is the wire form of the rate tables
type FactorsView struct {
	Version             string                            `json:"version" yaml:"version"`
	Hash                string                            `json:"hash" yaml:"hash"`
	BaseRates           map[string]json.Number            `json:"baseRates" yaml:"baseRates"`
	SeasonalAdjustments map[int]json.Number               `json:"seasonalAdjustments" yaml:"seasonalAdjustments"`
	RegionalFactors     map[string]map[string]json.Number `json:"regionalFactors" yaml:"regionalFactors"`
}

// NewFactorsView converts f
func NewFactorsView(f *pricing.Factors) *FactorsView {
	v := &FactorsView{
		Version:             f.Version,
		Hash:                f.Hash,
		BaseRates:           typeMap(f.BaseRates, money),
		SeasonalAdjustments: make(map[int]json.Number, len(f.SeasonalAdjustments)),
		RegionalFactors:     make(map[string]map[string]json.Number, len(f.RegionalFactors)),
	}
	for month, m := range f.SeasonalAdjustments {
		v.SeasonalAdjustments[month] = factor(m)
	}
	for region, factors := range f.RegionalFactors {
		v.RegionalFactors[region] = typeMap(factors, factor)
	}
	return v
}

// WorksheetView is the wire form of a rating worksheet
type WorksheetView struct {
	BaseRate         json.Number `json:"baseRate" yaml:"baseRate"`
	Lines            []LineView  `json:"lines" yaml:"lines"`
	Premium          json.Number `json:"premium" yaml:"premium"`
	RateTableVersion string      `json:"rateTableVersion" yaml:"rateTableVersion"`
	EvaluationDate   string      `json:"evaluationDate" yaml:"evaluationDate"`
}

// LineView is one worksheet line
type LineView struct {
	Name   string      `json:"name" yaml:"name"`
	Factor json.Number `json:"factor" yaml:"factor"`
}

// NewWorksheetView converts ws
func NewWorksheetView(ws *rating.Worksheet) *WorksheetView {
	v := &WorksheetView{
		BaseRate:         money(ws.BaseRate),
		Lines:            make([]LineView, 0, len(ws.Lines)),
		Premium:          money(ws.Premium),
		RateTableVersion: ws.RateTableVersion,
		EvaluationDate:   ws.EvaluatedAt.Format(types.DateLayout),
	}
	for _, l := range ws.Lines {
		v.Lines = append(v.Lines, LineView{Name: l.Name, Factor: factor(l.Factor)})
	}
	return v
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func moneyPtr(d decimal.Decimal) *json.Number {
	n := money(d)
	return &n
}

func factor(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func typeMap(m map[types.PropertyType]decimal.Decimal, conv func(decimal.Decimal) json.Number) map[string]json.Number {
	out := make(map[string]json.Number, len(m))
	for pt, d := range m {
		out[pt.String()] = conv(d)
	}
	return out
}
