package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"premium-estimator/core/pricing"
	"premium-estimator/core/rating"
	"premium-estimator/core/types"
)

type jsonFormatter struct{}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) RenderEstimate(w io.Writer, result *types.CalculationResult) error {
	return writeJSON(w, NewEstimateView(result))
}

func (f *jsonFormatter) RenderFactors(w io.Writer, factors *pricing.Factors) error {
	return writeJSON(w, NewFactorsView(factors))
}

func (f *jsonFormatter) RenderWorksheet(w io.Writer, ws *rating.Worksheet) error {
	return writeJSON(w, NewWorksheetView(ws))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type yamlFormatter struct{}

func (f *yamlFormatter) Format() Format { return FormatYAML }

func (f *yamlFormatter) RenderEstimate(w io.Writer, result *types.CalculationResult) error {
	return writeYAML(w, NewEstimateView(result))
}

func (f *yamlFormatter) RenderFactors(w io.Writer, factors *pricing.Factors) error {
	return writeYAML(w, NewFactorsView(factors))
}

func (f *yamlFormatter) RenderWorksheet(w io.Writer, ws *rating.Worksheet) error {
	return writeYAML(w, NewWorksheetView(ws))
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
