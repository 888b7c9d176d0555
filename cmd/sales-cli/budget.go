// cmd/sales-cli/budget.go
package main

import (
	"fmt"
	"io"
	"strings"

	parsebudget "sales-workers/internal/workers/sales/parse-budget"

	"github.com/spf13/cobra"
)

func newBudgetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "budget [text]",
		Short:   "Show how a message's budget is parsed",
		Example: `  sales-cli budget "zwischen 50 und 100 Euro"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBudget(cmd.OutOrStdout(), root, strings.Join(args, " "))
		},
	}
}

func runBudget(out io.Writer, root *rootOptions, text string) error {
	budget := parsebudget.Parse(text)

	p := newPrinter(out, root)
	if root.jsonMode {
		return p.JSON(budget)
	}

	p.heading.Fprint(out, "Budget: ")
	fmt.Fprintln(out, budget.Describe())
	fmt.Fprintf(out, "  budget word  %t\n", budget.HasBudgetWord)
	fmt.Fprintf(out, "  ambiguous    %t\n", budget.IsAmbiguous)
	for _, note := range budget.Notes {
		p.muted.Fprintf(out, "  note: %s\n", note)
	}
	return nil
}
