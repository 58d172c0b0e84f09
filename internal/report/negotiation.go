package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sourcing-cli/internal/model"
)

var caseLabels = map[model.NegotiationCase]string{
	model.CaseSupplyShortage: "Supply Shortage",
	model.CaseLogisticsRisk:  "Logistics Risk",
	model.CaseGreed:          "Greed",
	model.CaseGoldenTime:     "Golden Time",
	model.CaseBearMarket:     "Bear Market",
	model.CaseGeneral:        "General",
}

// CaseLabel returns the display name of a negotiation case.
func CaseLabel(c model.NegotiationCase) string {
	if l, ok := caseLabels[c]; ok {
		return l
	}
	return string(c)
}

var advantageLabels = map[model.Advantage]string{
	model.AdvantageBuyer:    "Buyer advantage",
	model.AdvantageSupplier: "Supplier advantage",
	model.AdvantageNeutral:  "Neutral",
}

// Analysis returns the gap-analysis paragraphs for a verdict.
func Analysis(in model.NegotiationInput, v model.Verdict) []string {
	d := v.Decomposition
	out := []string{
		fmt.Sprintf("1. Market base: the current market average is %s. This is the baseline of the negotiation.",
			Money(d.Base)),
		fmt.Sprintf("2. Allowed premium: you accepted %d%% (+%s) for the supplier's brand and quality.",
			in.SupplierMarginPct, Money(d.Premium)),
	}
	if d.Bubble > 0 {
		out = append(out, fmt.Sprintf(
			"3. Negotiation target: the offer (%s) is %s above your fair price (%s). "+
				"That is %s of the offer and looks like unexplained margin. Removing this red zone is the core goal of this negotiation.",
			Money(in.OfferPrice), Money(d.Bubble), Money(v.FairPrice), Percent(v.BubbleSharePct)))
	} else {
		out = append(out, fmt.Sprintf(
			"3. Fair price: the offer (%s) is within your fair price (%s). "+
				"Focus on non-price terms such as securing volume or payment conditions.",
			Money(in.OfferPrice), Money(v.FairPrice)))
	}
	return out
}

// WriteVerdict renders a verdict as plain text.
func WriteVerdict(w io.Writer, in model.NegotiationInput, v model.Verdict) error {
	if err := writeHeading(w, fmt.Sprintf("Verdict: %s (%s)", v.Title, CaseLabel(v.Case))); err != nil {
		return err
	}
	if err := writeParagraph(w, v.Narrative); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return eris.Wrap(err, "report: write verdict")
	}

	rows := []row{
		{"Offer", Money(in.OfferPrice)},
		{"Fair price", Money(v.FairPrice)},
		{"Target price", fmt.Sprintf("%s (%s)", Money(v.TargetPrice), SignedMoney(v.TargetDelta))},
		{"Gap", fmt.Sprintf("%s (%s)", SignedMoney(v.Gap), Percent(v.GapPct))},
		{"Leverage", fmt.Sprintf("%s, %s", advantageLabels[v.Advantage], v.Leverage)},
		{"Timing", v.Timing},
		{"Strategy", v.StrategyPoint},
	}
	if v.TargetLow != v.TargetHigh {
		rows = append(rows[:3], append([]row{{"Target range", Money(v.TargetLow) + " - " + Money(v.TargetHigh)}}, rows[3:]...)...)
	}
	if err := writeTable(w, rows); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "\nGap analysis\n"); err != nil {
		return eris.Wrap(err, "report: write verdict")
	}
	for _, p := range Analysis(in, v) {
		if err := writeParagraph(w, p); err != nil {
			return err
		}
	}
	if err := writeBars(w, ShouldCostChart(in, v)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "\nWhat-if\n"); err != nil {
		return eris.Wrap(err, "report: write verdict")
	}
	return writeParagraph(w, v.WhatIf)
}

const barWidth = 40

// writeBars draws the stacked chart as one horizontal bar per segment.
func writeBars(w io.Writer, c Chart) error {
	scale := c.OfferLine
	var total float64
	for _, s := range c.Segments {
		total += s.Value
	}
	scale = math.Max(scale, total)
	if scale <= 0 {
		return nil
	}

	rows := make([]row, 0, len(c.Segments)+1)
	for _, s := range c.Segments {
		n := int(math.Round(s.Value / scale * barWidth))
		rows = append(rows, row{s.Name, strings.Repeat("#", n) + " " + s.Label})
	}
	n := int(math.Round(c.OfferLine / scale * barWidth))
	rows = append(rows, row{"Offer", strings.Repeat("-", n) + " " + Money(c.OfferLine)})

	if _, err := fmt.Fprintln(w); err != nil {
		return eris.Wrap(err, "report: write chart")
	}
	return writeTable(w, rows)
}

// VerdictMarkdown renders a verdict as a markdown document.
func VerdictMarkdown(in model.NegotiationInput, v model.Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", v.Title)
	fmt.Fprintf(&b, "_%s_\n\n", v.Narrative)
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Case | %s |\n", CaseLabel(v.Case))
	fmt.Fprintf(&b, "| Offer | %s |\n", Money(in.OfferPrice))
	fmt.Fprintf(&b, "| Target price | %s (%s) |\n", Money(v.TargetPrice), SignedMoney(v.TargetDelta))
	fmt.Fprintf(&b, "| Fair price | %s |\n", Money(v.FairPrice))
	fmt.Fprintf(&b, "| Leverage | %s (%s) |\n", advantageLabels[v.Advantage], v.Leverage)
	fmt.Fprintf(&b, "| Timing | %s |\n\n", v.Timing)
	fmt.Fprintf(&b, "**Strategy:** %s\n\n", v.StrategyPoint)
	b.WriteString("### Gap analysis\n\n")
	for _, p := range Analysis(in, v) {
		b.WriteString(p + "\n\n")
	}
	b.WriteString("### What-if\n\n")
	b.WriteString(v.WhatIf + "\n")
	return b.String()
}
