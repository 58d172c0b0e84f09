// Package report renders verdicts and score reports for terminals and markdown.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats a $/kg price with two decimals and thousands separators.
func Money(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

// SignedMoney formats a price delta with an explicit sign.
func SignedMoney(v float64) string {
	if v >= 0 {
		return "+" + Money(v)
	}
	return Money(v)
}

// Percent formats a percentage with one decimal.
func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

// row is one line of a key/value table.
type row struct {
	key   string
	value string
}

// writeTable prints rows with keys padded to a common display width.
func writeTable(w io.Writer, rows []row) error {
	width := 0
	for _, r := range rows {
		if n := runewidth.StringWidth(r.key); n > width {
			width = n
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "  %s  %s\n", padRight(r.key, width), r.value); err != nil {
			return eris.Wrap(err, "report: write table row")
		}
	}
	return nil
}

func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func writeHeading(w io.Writer, title string) error {
	line := strings.Repeat("=", runewidth.StringWidth(title))
	_, err := fmt.Fprintf(w, "%s\n%s\n", title, line)
	return eris.Wrap(err, "report: write heading")
}

// wrap breaks s into lines of at most width display columns.
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		if curWidth > 0 && curWidth+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += ww
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func writeParagraph(w io.Writer, s string) error {
	for _, line := range wrap(s, 76) {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return eris.Wrap(err, "report: write paragraph")
		}
	}
	return nil
}
