package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"premium-estimator/core/determinism"
	"premium-estimator/core/pricing"
	"premium-estimator/core/rating"
	"premium-estimator/core/types"
)

const boxWidth = 73

// cliFormatter draws boxed tables with thousands-separated amounts
type cliFormatter struct{}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) RenderEstimate(w io.Writer, result *types.CalculationResult) error {
	t := newTable(w)
	t.rule("┌", "┐")
	t.title("PREMIUM ESTIMATE")
	t.rule("├", "┤")
	t.row("Base rate (coverage scaled)", t.amount(result.BaseRate))
	for _, name := range determinism.SortedKeys(result.Adjustments) {
		t.row("  × "+name, result.Adjustments[name].String())
	}
	t.rule("├", "┤")
	t.row("PREMIUM", t.amount(result.Premium))
	if result.HasRange() {
		t.row("  minimum", t.amount(*result.MinimumPremium))
		t.row("  maximum", t.amount(*result.MaximumPremium))
		t.row("  recommended", t.amount(*result.RecommendedPremium))
	}
	t.rule("└", "┘")
	t.footer(result.RateTableVersion, result.EvaluatedAt)
	return t.err
}

func (f *cliFormatter) RenderFactors(w io.Writer, factors *pricing.Factors) error {
	t := newTable(w)
	t.rule("┌", "┐")
	t.title("RATE TABLES " + factors.Version)
	t.rule("├", "┤")
	t.row("Base rates", "")
	for _, pt := range determinism.SortedKeys(factors.BaseRates) {
		t.row("  "+pt.String(), t.amount(factors.BaseRates[pt]))
	}
	t.rule("├", "┤")
	t.row("Seasonal adjustments", "")
	for _, month := range determinism.SortedKeys(factors.SeasonalAdjustments) {
		t.row("  "+time.Month(month+1).String(), factors.SeasonalAdjustments[month].String())
	}
	for _, region := range determinism.SortedKeys(factors.RegionalFactors) {
		t.rule("├", "┤")
		t.row("Regional factors "+region, "")
		byType := factors.RegionalFactors[region]
		for _, pt := range determinism.SortedKeys(byType) {
			t.row("  "+pt.String(), byType[pt].String())
		}
	}
	t.rule("└", "┘")
	t.printf("\nContent hash: %s\n", factors.Hash)
	return t.err
}

func (f *cliFormatter) RenderWorksheet(w io.Writer, ws *rating.Worksheet) error {
	t := newTable(w)
	t.rule("┌", "┐")
	t.title("RATING WORKSHEET")
	t.rule("├", "┤")
	t.row("Base rate", t.amount(ws.BaseRate))
	for _, l := range ws.Lines {
		t.row("  × "+l.Name, l.Factor.String())
	}
	t.rule("├", "┤")
	t.row("PREMIUM", t.amount(ws.Premium))
	t.rule("└", "┘")
	t.footer(ws.RateTableVersion, ws.EvaluatedAt)
	return t.err
}

// table keeps the first write error so render methods can stay linear
type table struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func newTable(w io.Writer) *table {
	return &table{w: w, p: message.NewPrinter(language.English)}
}

func (t *table) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *table) rule(left, right string) {
	t.printf("%s%s%s\n", left, strings.Repeat("─", boxWidth), right)
}

func (t *table) title(s string) {
	pad := boxWidth - len(s)
	t.printf("│%s%s%s│\n", strings.Repeat(" ", pad/2), s, strings.Repeat(" ", pad-pad/2))
}

func (t *table) row(label, value string) {
	t.printf("│ %-50s %20s │\n", truncate(label, 50), value)
}

func (t *table) footer(version string, at time.Time) {
	t.printf("\nRate table: %s\nEvaluation date: %s\n", version, at.Format(types.DateLayout))
}

// amount formats money as $1,234.56. Values are rounded to cents before the
// float conversion, so the conversion cannot change the displayed digits.
func (t *table) amount(d decimal.Decimal) string {
	return t.p.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
