// Package render formats engine output for the CLI: single-deal score
// blocks, batch tables, CSV exports, and run summaries. It is pure
// presentation; nothing here feeds back into scoring.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/cpq-ors/internal/model"
)

// tierColors maps risk tiers to their display colors: green, amber, red.
var tierColors = map[model.RiskTier]text.Colors{
	model.TierLow:    {text.FgGreen},
	model.TierMedium: {text.FgYellow},
	model.TierHigh:   {text.FgRed},
}

// Renderer formats scores for human and machine output.
type Renderer struct {
	printer *message.Printer
}

// New creates a Renderer with English number formatting.
func New() *Renderer {
	return &Renderer{printer: message.NewPrinter(language.English)}
}

// Money formats a dollar amount with grouping, e.g. "$180,000".
func (r *Renderer) Money(amount int64) string {
	return r.printer.Sprintf("$%d", amount)
}

// Multiplier formats a multiplier as displayed, e.g. "x1.3".
func Multiplier(m decimal.Decimal) string {
	return "x" + m.StringFixed(1)
}

// TierLine returns the colorized routing line for a tier.
func TierLine(tier model.RiskTier) string {
	return tierColors[tier].Sprint(tier.Label())
}

// WriteScore writes the full single-deal assessment block. The approver line
// is omitted when no approver is required.
func (r *Renderer) WriteScore(w io.Writer, name string, in model.DealInput, res model.ScoreResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Deal:           %s (%s)\n", name, in.DealType.Label())
	fmt.Fprintf(&b, "Revenue Types:  %s\n", strings.Join(in.RevenueTypes.Labels(), ", "))
	fmt.Fprintf(&b, "ACV:            %s\n", r.Money(in.ACV))
	if in.DealType == model.DealTypeUpsell {
		fmt.Fprintf(&b, "Growth ACV:     %s\n", r.Money(in.GrowthACV))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Base ORS:       %d\n", res.BaseORS)
	fmt.Fprintf(&b, "ACV Multiplier: %s\n", Multiplier(res.Multiplier))
	fmt.Fprintf(&b, "Final ORS:      %s\n", res.FinalORS.StringFixed(1))
	b.WriteString("\n")
	b.WriteString(TierLine(res.Tier))
	b.WriteString("\n")
	if len(res.Approvers) > 0 {
		fmt.Fprintf(&b, "Approvers:      %s\n", strings.Join(res.Approvers, ", "))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "render: write score")
	}
	return nil
}

// WriteJSON writes any value as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "render: encode JSON")
	}
	return nil
}

// WriteBatchTable writes scored deals as an aligned table.
func (r *Renderer) WriteBatchTable(w io.Writer, deals []model.ScoredDeal) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Deal", "Type", "ACV", "Base", "Mult", "Final", "Tier", "Approvers"})
	for _, d := range deals {
		tw.AppendRow(table.Row{
			d.Name,
			d.Input.DealType.Label(),
			r.Money(d.Input.ACV),
			d.Result.BaseORS,
			Multiplier(d.Result.Multiplier),
			d.Result.FinalORS.StringFixed(1),
			tierColors[d.Result.Tier].Sprint(string(d.Result.Tier)),
			strings.Join(d.Result.Approvers, ", "),
		})
	}
	tw.Render()
}

// WriteBatchCSV writes scored deals as CSV.
func WriteBatchCSV(w io.Writer, deals []model.ScoredDeal) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"name", "deal_type", "acv", "base_ors", "multiplier", "final_ors", "tier", "approvers"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "render: write CSV header")
	}

	for _, d := range deals {
		row := []string{
			d.Name,
			string(d.Input.DealType),
			fmt.Sprintf("%d", d.Input.ACV),
			fmt.Sprintf("%d", d.Result.BaseORS),
			d.Result.Multiplier.StringFixed(1),
			d.Result.FinalORS.StringFixed(1),
			string(d.Result.Tier),
			strings.Join(d.Result.Approvers, "|"),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "render: write CSV row")
		}
	}
	return nil
}

// WriteSummary writes the batch footer: totals, tier histogram, score range.
func WriteSummary(w io.Writer, deals []model.ScoredDeal) {
	if len(deals) == 0 {
		fmt.Fprintln(w, "No deals scored.")
		return
	}

	tiers := map[model.RiskTier]int{}
	minScore := deals[0].Result.FinalORS
	maxScore := deals[0].Result.FinalORS
	for _, d := range deals {
		tiers[d.Result.Tier]++
		if d.Result.FinalORS.LessThan(minScore) {
			minScore = d.Result.FinalORS
		}
		if d.Result.FinalORS.GreaterThan(maxScore) {
			maxScore = d.Result.FinalORS
		}
	}

	fmt.Fprintf(w, "\n--- Summary ---\n")
	fmt.Fprintf(w, "Deals scored: %d\n", len(deals))
	fmt.Fprintf(w, "Low:          %d\n", tiers[model.TierLow])
	fmt.Fprintf(w, "Medium:       %d\n", tiers[model.TierMedium])
	fmt.Fprintf(w, "High:         %d\n", tiers[model.TierHigh])
	fmt.Fprintf(w, "Score range:  %s - %s\n", minScore.StringFixed(1), maxScore.StringFixed(1))
}
