package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/sourcing-cli/internal/batch"
	"github.com/sells-group/sourcing-cli/internal/model"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Evaluate every row of a CSV, XLSX or YAML file",
	Long: "Reads rows whose header names the input fields (the JSON field names), " +
		"evaluates them concurrently and writes one result per row in input order. " +
		"Invalid rows are reported in the output and do not stop the run.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		if concurrency > 0 {
			cfg.Batch.Concurrency = concurrency
		}
		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		kindFlag, _ := cmd.Flags().GetString("kind")
		kind := model.EvaluationKind(kindFlag)
		if !kind.Valid() {
			return eris.Errorf("--kind must be negotiation or supplier, got %q", kindFlag)
		}

		rows, err := batch.ReadFile(ctx, args[0])
		if err != nil {
			return err
		}

		scorer, err := initScorer()
		if err != nil {
			return err
		}
		runner := &batch.Runner{Concurrency: cfg.Batch.Concurrency, Scorer: scorer}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
			runner.Recorder = st
		}

		results, sum, err := runner.Run(ctx, kind, rows)
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		if err := writeBatch(cmd.OutOrStdout(), outPath, format, kind, results); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%d rows: %d evaluated, %d rejected\n", sum.Total, sum.Succeeded, sum.Failed)
		return nil
	},
}

// writeBatch writes results to outPath, or stdout when outPath is empty or
// "-". An empty format is taken from the output file extension.
func writeBatch(stdout io.Writer, outPath, format string, kind model.EvaluationKind, results []batch.Result) error {
	if format == "" {
		format = batch.FormatJSON
		if strings.EqualFold(filepath.Ext(outPath), ".csv") {
			format = batch.FormatCSV
		}
	}
	if outPath == "" || outPath == "-" {
		return batch.Write(stdout, format, kind, results)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return eris.Wrap(err, "create output file")
	}
	if err := batch.Write(f, format, kind, results); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrap(f.Close(), "close output file")
}

func init() {
	batchCmd.Flags().String("kind", "", "which tool to run: negotiation or supplier")
	batchCmd.Flags().String("out", "", "output file (default stdout)")
	batchCmd.Flags().String("format", "", "output format: json or csv (default from --out extension, else json)")
	batchCmd.Flags().Int("concurrency", 0, "rows evaluated at once (default from config)")
	_ = batchCmd.MarkFlagRequired("kind")
	rootCmd.AddCommand(batchCmd)
}
