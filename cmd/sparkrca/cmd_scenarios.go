package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sparkrca/internal/format"
	"sparkrca/internal/logcorpus"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the built-in failure scenarios and their ground truth",
	RunE: func(cmd *cobra.Command, _ []string) error {
		corpus := logcorpus.Default()
		tb := format.NewTable(format.ASCII)
		tb.Header("Scenario", "Ground Truth", "Description")
		for _, name := range corpus.List() {
			s := corpus.Scenario(name)
			tb.Row(name,
				fmt.Sprintf("%s/%s", s.FailureType, s.Confidence),
				format.Truncate(s.Description, 60))
		}
		fmt.Fprintln(cmd.OutOrStdout(), tb.String())
		return nil
	},
}
