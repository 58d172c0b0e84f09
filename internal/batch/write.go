package batch

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sourcing-cli/internal/model"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Write encodes results in the given format.
func Write(w io.Writer, format string, kind model.EvaluationKind, results []Result) error {
	switch format {
	case "", FormatJSON:
		return WriteJSON(w, results)
	case FormatCSV:
		return WriteCSV(w, kind, results)
	default:
		return eris.Errorf("batch: unknown output format %q (want json or csv)", format)
	}
}

// WriteJSON writes results as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(results), "batch: encode json")
}

var negotiationColumns = []string{
	"line", "case", "title", "fair_price", "target_price", "target_low", "target_high",
	"gap", "gap_pct", "advantage", "timing", "error",
}

var supplierColumns = []string{
	"line", "supplier_name", "score", "grade", "strategy_title", "risk_status", "error",
}

// WriteCSV writes one summary line per result.
func WriteCSV(w io.Writer, kind model.EvaluationKind, results []Result) error {
	cw := csv.NewWriter(w)
	cols := supplierColumns
	if kind == model.KindNegotiation {
		cols = negotiationColumns
	}
	if err := cw.Write(cols); err != nil {
		return eris.Wrap(err, "batch: write csv header")
	}
	for _, r := range results {
		if err := cw.Write(csvRecord(kind, r)); err != nil {
			return eris.Wrap(err, "batch: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "batch: flush csv")
}

func csvRecord(kind model.EvaluationKind, r Result) []string {
	line := strconv.Itoa(r.Line)
	if kind == model.KindNegotiation {
		rec := make([]string, len(negotiationColumns))
		rec[0] = line
		if v := r.Verdict; v != nil {
			rec[1] = string(v.Case)
			rec[2] = v.Title
			rec[3] = price(v.FairPrice)
			rec[4] = price(v.TargetPrice)
			rec[5] = price(v.TargetLow)
			rec[6] = price(v.TargetHigh)
			rec[7] = price(v.Gap)
			rec[8] = strconv.FormatFloat(v.GapPct, 'f', 2, 64)
			rec[9] = string(v.Advantage)
			rec[10] = v.Timing
		}
		rec[11] = r.Error
		return rec
	}

	rec := make([]string, len(supplierColumns))
	rec[0] = line
	if s := r.Score; s != nil {
		rec[1] = s.SupplierName
		rec[2] = strconv.Itoa(s.Score)
		rec[3] = string(s.Grade)
		rec[4] = s.StrategyTitle
		rec[5] = s.RiskStatus
	}
	rec[6] = r.Error
	return rec
}

func price(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
