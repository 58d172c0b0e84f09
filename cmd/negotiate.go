package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/sourcing-cli/internal/batch"
	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/negotiation"
	"github.com/sells-group/sourcing-cli/internal/schema"
)

var negotiateCmd = &cobra.Command{
	Use:   "negotiate",
	Short: "Decide a negotiation stance against a supplier's quoted price",
	Example: `  sourcing-cli negotiate --forecast-trend stable --market-trend drop \
    --market-avg-price 0.50 --offer-price 0.58 --supplier-margin-pct 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		in, err := negotiationInput(cmd)
		if err != nil {
			return err
		}
		v, err := negotiation.ValidateAndEvaluate(in)
		if err != nil {
			return err
		}
		record(ctx, model.KindNegotiation, string(v.Case), in, v)

		format, _ := cmd.Flags().GetString("format")
		return writeVerdict(cmd.OutOrStdout(), format, in, v)
	},
}

func negotiationInput(cmd *cobra.Command) (model.NegotiationInput, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		var in model.NegotiationInput
		return in, decodeFile(path, schema.ValidateNegotiation, &in)
	}
	return batch.NegotiationInput(rowFromFlags(cmd, negotiationFields))
}

func init() {
	addFieldFlags(negotiateCmd, negotiationFields)
	addFormatFlag(negotiateCmd)
	rootCmd.AddCommand(negotiateCmd)
}
