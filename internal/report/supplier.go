package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sourcing-cli/internal/model"
)

var factorLabels = map[string]string{
	"volume_trend":   "Volume trend",
	"destinations":   "Destinations",
	"buyer_tier":     "Buyer tier",
	"export_history": "Export history",
	"dependency":     "Dependency",
}

func factorLabel(f string) string {
	if l, ok := factorLabels[f]; ok {
		return l
	}
	return f
}

func signedPoints(p int) string {
	if p > 0 {
		return fmt.Sprintf("+%d", p)
	}
	return fmt.Sprintf("%d", p)
}

// WriteScore renders a supplier score report as plain text.
func WriteScore(w io.Writer, r model.ScoreReport) error {
	name := r.SupplierName
	if name == "" {
		name = "Unnamed supplier"
	}
	if err := writeHeading(w, fmt.Sprintf("%s: %s", name, r.GradeTitle)); err != nil {
		return err
	}

	rows := []row{
		{"Score", fmt.Sprintf("%d", r.Score)},
		{"Grade", string(r.Grade)},
		{"Risk", r.RiskStatus},
	}
	for _, c := range r.Breakdown {
		rows = append(rows, row{"  " + factorLabel(c.Factor), fmt.Sprintf("%-14s %s", c.Value, signedPoints(c.Points))})
	}
	if err := writeTable(w, rows); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nStrategy: %s\n", r.StrategyTitle); err != nil {
		return eris.Wrap(err, "report: write score")
	}
	if err := writeParagraph(w, r.StrategyDesc); err != nil {
		return err
	}

	tone := r.EmailTone
	if r.Polished {
		tone += ", polished"
	}
	if _, err := fmt.Fprintf(w, "\nOpening email (%s)\n\n", tone); err != nil {
		return eris.Wrap(err, "report: write score")
	}
	for _, line := range strings.Split(strings.TrimRight(r.EmailBody, "\n"), "\n") {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return eris.Wrap(err, "report: write email")
		}
	}
	return nil
}

// ScoreMarkdown renders a supplier score report as a markdown document.
func ScoreMarkdown(r model.ScoreReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", r.GradeTitle)
	if r.SupplierName != "" {
		fmt.Fprintf(&b, "**Supplier:** %s\n\n", r.SupplierName)
	}
	fmt.Fprintf(&b, "**Score:** %d  \n**Risk:** %s\n\n", r.Score, r.RiskStatus)
	b.WriteString("| Factor | Value | Points |\n|---|---|---|\n")
	for _, c := range r.Breakdown {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", factorLabel(c.Factor), c.Value, signedPoints(c.Points))
	}
	fmt.Fprintf(&b, "\n### Strategy: %s\n\n%s\n\n", r.StrategyTitle, r.StrategyDesc)
	fmt.Fprintf(&b, "### Opening email (%s)\n\n```\n%s\n```\n", r.EmailTone, strings.TrimRight(r.EmailBody, "\n"))
	return b.String()
}
