package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/negotiation"
	"github.com/sells-group/sourcing-cli/internal/outreach"
	"github.com/sells-group/sourcing-cli/internal/wizard"
)

var wizardCmd = &cobra.Command{
	Use:       "wizard negotiation|supplier",
	Short:     "Fill in a tool's inputs with an interactive form",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(model.KindNegotiation), string(model.KindSupplier)},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		format, _ := cmd.Flags().GetString("format")
		out := cmd.OutOrStdout()

		switch model.EvaluationKind(args[0]) {
		case model.KindNegotiation:
			in, err := wizard.RunNegotiation(os.Stdin, out)
			if err != nil {
				return err
			}
			v, err := negotiation.ValidateAndEvaluate(in)
			if err != nil {
				return err
			}
			record(ctx, model.KindNegotiation, string(v.Case), in, v)
			return writeVerdict(out, format, in, v)
		case model.KindSupplier:
			in, err := wizard.RunSupplier(os.Stdin, out)
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
				outreach.Apply(ctx, initPolisher(), in, &rep)
			}
			record(ctx, model.KindSupplier, string(rep.Grade), in, rep)
			return writeScore(out, format, rep)
		default:
			return eris.Errorf("unknown tool %q", args[0])
		}
	},
}

func init() {
	addFormatFlag(wizardCmd)
	wizardCmd.Flags().Bool("polish", false, "rewrite the supplier email with Claude (needs anthropic.key)")
	rootCmd.AddCommand(wizardCmd)
}
