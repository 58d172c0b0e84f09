package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/report"
)

// Report formats.
const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", formatText, "output format: text, markdown, json")
}

func writeJSONOut(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json output")
}

func writeVerdict(w io.Writer, format string, in model.NegotiationInput, v model.Verdict) error {
	switch format {
	case formatText, "":
		return report.WriteVerdict(w, in, v)
	case formatMarkdown, "md":
		_, err := fmt.Fprint(w, report.VerdictMarkdown(in, v))
		return err
	case formatJSON:
		return writeJSONOut(w, v)
	default:
		return eris.Errorf("unknown format %q (want text, markdown or json)", format)
	}
}

func writeScore(w io.Writer, format string, r model.ScoreReport) error {
	switch format {
	case formatText, "":
		return report.WriteScore(w, r)
	case formatMarkdown, "md":
		_, err := fmt.Fprint(w, report.ScoreMarkdown(r))
		return err
	case formatJSON:
		return writeJSONOut(w, r)
	default:
		return eris.Errorf("unknown format %q (want text, markdown or json)", format)
	}
}
