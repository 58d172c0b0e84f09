package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sourcing-cli/internal/batch"
	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/outreach"
	"github.com/sells-group/sourcing-cli/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Score a supplier and draft an opening email",
	Example: `  sourcing-cli validate --supplier-name "ABC Export Co." --volume-trend growth \
    --destinations high_standard --buyer-tier tier1 --export-history recent --dependency low`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		in, err := supplierInput(cmd)
		if err != nil {
			return err
		}
		scorer, err := initScorer()
		if err != nil {
			return err
		}
		rep, err := scorer.ValidateAndEvaluate(in)
		if err != nil {
			return err
		}

		if polish, _ := cmd.Flags().GetBool("polish"); polish {
			p := initPolisher()
			if p == nil {
				zap.L().Warn("anthropic.key is not set; keeping templated email")
			}
			outreach.Apply(ctx, p, in, &rep)
		}
		record(ctx, model.KindSupplier, string(rep.Grade), in, rep)

		format, _ := cmd.Flags().GetString("format")
		return writeScore(cmd.OutOrStdout(), format, rep)
	},
}

func supplierInput(cmd *cobra.Command) (model.SupplierInput, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		var in model.SupplierInput
		return in, decodeFile(path, schema.ValidateSupplier, &in)
	}
	return batch.SupplierInput(rowFromFlags(cmd, supplierFields))
}

func init() {
	addFieldFlags(validateCmd, supplierFields)
	addFormatFlag(validateCmd)
	validateCmd.Flags().Bool("polish", false, "rewrite the email with Claude (needs anthropic.key)")
	rootCmd.AddCommand(validateCmd)
}
