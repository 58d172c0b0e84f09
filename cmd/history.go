package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/report"
	"github.com/sells-group/sourcing-cli/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved evaluations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent evaluations, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		ctx := cmd.Context()

		kindFlag, _ := cmd.Flags().GetString("kind")
		limit, _ := cmd.Flags().GetInt("limit")
		filter := store.EvaluationFilter{Kind: model.EvaluationKind(kindFlag), Limit: limit}
		if filter.Kind != "" && !filter.Kind.Valid() {
			return eris.Errorf("--kind must be negotiation or supplier, got %q", kindFlag)
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st == nil {
			return errHistoryDisabled
		}
		defer st.Close() //nolint:errcheck

		evals, err := st.ListEvaluations(ctx, filter)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if evals == nil {
				evals = []model.Evaluation{}
			}
			return writeJSONOut(cmd.OutOrStdout(), evals)
		}
		return report.WriteEvaluations(cmd.OutOrStdout(), evals)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one saved evaluation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st == nil {
			return errHistoryDisabled
		}
		defer st.Close() //nolint:errcheck

		e, err := st.GetEvaluation(ctx, args[0])
		if err != nil {
			return err
		}
		return writeJSONOut(cmd.OutOrStdout(), e)
	},
}

func init() {
	historyListCmd.Flags().String("kind", "", "only negotiation or supplier evaluations")
	historyListCmd.Flags().Int("limit", store.DefaultListLimit, "maximum evaluations to list")
	historyListCmd.Flags().Bool("json", false, "print JSON")
	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
