// cmd/sales-cli/root.go
package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	noColor  bool
	jsonMode bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sales-cli",
		Short: "Operator tools for the sales turn pipeline",
		Long: `sales-cli runs single turns and scripted conversations against catalog
fixtures, inspects budget parsing, maintains the activity registry and
scaffolds new worker packages.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVar(&opts.jsonMode, "json", false, "print raw JSON results")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "print the trace of each turn")

	cmd.AddCommand(
		newTurnCmd(opts),
		newReplayCmd(opts),
		newBudgetCmd(opts),
		newRegistryCmd(opts),
		newScaffoldCmd(opts),
	)
	return cmd
}
