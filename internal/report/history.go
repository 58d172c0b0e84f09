package report

import (
	"fmt"
	"io"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sourcing-cli/internal/model"
)

// WriteEvaluations lists saved evaluations one per line.
func WriteEvaluations(w io.Writer, evals []model.Evaluation) error {
	if len(evals) == 0 {
		_, err := fmt.Fprintln(w, "No saved evaluations.")
		return eris.Wrap(err, "report: write evaluations")
	}

	const idWidth = 36
	if _, err := fmt.Fprintf(w, "%s  %s  %s  %s\n",
		padRight("ID", idWidth), padRight("Saved", 16), padRight("Kind", 11), "Result"); err != nil {
		return eris.Wrap(err, "report: write evaluations")
	}
	for _, e := range evals {
		_, err := fmt.Fprintf(w, "%s  %s  %s  %s\n",
			padRight(e.ID, idWidth),
			e.CreatedAt.In(time.Local).Format("2006-01-02 15:04"),
			padRight(string(e.Kind), 11),
			e.Summary,
		)
		if err != nil {
			return eris.Wrap(err, "report: write evaluations")
		}
	}
	return nil
}
