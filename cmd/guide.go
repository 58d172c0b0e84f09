package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/sourcing-cli/internal/guide"
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Print the guide to gathering price and supplier data",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if list, _ := cmd.Flags().GetBool("list"); list {
			for i, title := range guide.Chapters() {
				fmt.Fprintf(out, "%d. %s\n", i+1, title)
			}
			return nil
		}
		if html, _ := cmd.Flags().GetBool("html"); html {
			b, err := guide.HTML()
			if err != nil {
				return err
			}
			_, err = out.Write(b)
			return err
		}

		text := guide.Markdown()
		if n, _ := cmd.Flags().GetInt("chapter"); n > 0 {
			var err error
			if text, err = guide.Chapter(n); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(out, text)
		return err
	},
}

func init() {
	guideCmd.Flags().Int("chapter", 0, "print only this chapter")
	guideCmd.Flags().Bool("list", false, "list chapter titles")
	guideCmd.Flags().Bool("html", false, "render the guide as HTML")
	rootCmd.AddCommand(guideCmd)
}
