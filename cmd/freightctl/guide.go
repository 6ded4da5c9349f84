package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"freightcalc/internal/modules/guide"
)

var guideCmd = &cobra.Command{
	Use:   "guide [chapter-id]",
	Short: "Print the user guide",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := translator()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, ch := range guide.Localize(t) {
			if len(args) == 1 && args[0] != ch.ID {
				continue
			}
			fmt.Fprintf(out, "# %s\n\n%s\n\n", ch.Title, ch.Content)
			if len(args) == 1 {
				return nil
			}
		}
		if len(args) == 1 {
			return fmt.Errorf("unknown chapter %q", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
