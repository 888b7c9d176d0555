// cmd/sales-cli/turn.go
package main

import (
	"fmt"
	"io"
	"strings"

	"sales-workers/internal/models"
	processturn "sales-workers/internal/workers/sales/process-turn"

	"github.com/spf13/cobra"
)

type turnOptions struct {
	catalogPath string
	plan        string
	intent      string
	category    string
}

func newTurnCmd(root *rootOptions) *cobra.Command {
	opts := &turnOptions{}

	cmd := &cobra.Command{
		Use:   "turn [text]",
		Short: "Answer a single utterance against a catalog fixture",
		Example: `  sales-cli turn --catalog testdata/catalog.yaml "Zeige mir Snowboards unter 300 Euro"
  sales-cli turn --catalog catalog.yaml --plan starter --category snowboard "was Günstigeres?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTurn(cmd.OutOrStdout(), root, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.catalogPath, "catalog", "c", "", "catalog fixture (YAML)")
	cmd.Flags().StringVar(&opts.plan, "plan", "", "plan override (starter, pro, enterprise)")
	cmd.Flags().StringVar(&opts.intent, "intent", "", "intent carried from the previous turn")
	cmd.Flags().StringVar(&opts.category, "category", "", "active category from the previous turn")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func runTurn(out io.Writer, root *rootOptions, opts *turnOptions, text string) error {
	fixture, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}

	plan := fixture.Plan
	if opts.plan != "" {
		plan = models.Plan(opts.plan)
	}

	var convCtx *models.ConversationContext
	if opts.category != "" {
		convCtx = &models.ConversationContext{ActiveCategorySlug: models.String(opts.category)}
	}

	intent := models.Intent(opts.intent)
	if opts.intent != "" && !intent.Valid() {
		return fmt.Errorf("unknown intent %q", opts.intent)
	}

	result := processturn.ProcessTurn(processturn.Request{
		Text:          text,
		CurrentIntent: intent,
		Catalog:       fixture.Products,
		Plan:          plan,
		Context:       convCtx,
		Options:       processturn.LoadConfig().Options(),
	})

	p := newPrinter(out, root)
	if root.jsonMode {
		return p.JSON(result)
	}
	p.Turn(0, text, result)
	return nil
}
