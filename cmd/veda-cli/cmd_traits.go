package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func traitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "traits",
		Short: "Print the questionnaire trait keys and option ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, q := range a.catalog.Questions() {
				fmt.Fprintf(out, "%s (%s)\n", q.Key, q.Label)
				for _, opt := range q.Options {
					fmt.Fprintf(out, "  %-20s %s\n", opt.ID, opt.Label)
				}
			}
			return nil
		},
	}
}
