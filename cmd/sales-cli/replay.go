// cmd/sales-cli/replay.go
package main

import (
	"fmt"
	"io"
	"strings"

	"sales-workers/internal/models"
	processturn "sales-workers/internal/workers/sales/process-turn"

	"github.com/spf13/cobra"
)

func newReplayCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay [script.yaml...]",
		Short: "Replay scripted conversations and check their expectations",
		Long: `replay runs every turn of a script in order. The context, intent and
recommendations of each turn feed the next one, exactly as a conversation
would. Turns with an expect block are checked and any mismatch makes the
command fail.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				script, err := loadScript(path)
				if err != nil {
					return err
				}
				n, err := runScript(cmd.OutOrStdout(), root, script)
				if err != nil {
					return err
				}
				failed += n
			}
			if failed > 0 {
				return fmt.Errorf("%d expectation(s) failed", failed)
			}
			return nil
		},
	}
}

type turnReport struct {
	Text     string            `json:"text"`
	Result   models.TurnResult `json:"result"`
	Failures []string          `json:"failures,omitempty"`
}

// runScript returns the number of turns whose expectations failed.
func runScript(out io.Writer, root *rootOptions, script *Script) (int, error) {
	p := newPrinter(out, root)
	opts := processturn.LoadConfig().Options()

	var (
		convCtx  *models.ConversationContext
		intent   models.Intent
		previous []models.Product
		reports  []turnReport
		failed   int
	)

	if !root.jsonMode && script.Name != "" {
		p.heading.Fprintf(out, "%s\n", script.Name)
	}

	for i, turn := range script.Turns {
		result := processturn.ProcessTurn(processturn.Request{
			Text:                turn.Text,
			CurrentIntent:       intent,
			Catalog:             script.Products,
			Plan:                script.Plan,
			PreviousRecommended: previous,
			Context:             convCtx,
			Options:             opts,
		})

		failures := checkExpectation(turn.Expect, result)
		if len(failures) > 0 {
			failed++
		}

		if root.jsonMode {
			reports = append(reports, turnReport{Text: turn.Text, Result: result, Failures: failures})
		} else {
			p.Turn(i+1, turn.Text, result)
			for _, f := range failures {
				p.Failure("%s", f)
			}
		}

		convCtx = result.NextContext
		intent = result.Intent
		if len(result.Recommended) > 0 {
			previous = result.Recommended
		}
	}

	if root.jsonMode {
		return failed, p.JSON(reports)
	}
	if failed == 0 {
		p.Success("%d turn(s) replayed", len(script.Turns))
	}
	return failed, nil
}

func checkExpectation(exp *Expectation, r models.TurnResult) []string {
	if exp == nil {
		return nil
	}

	var failures []string
	if exp.Intent != "" && r.Intent != exp.Intent {
		failures = append(failures, fmt.Sprintf("intent: want %s, got %s", exp.Intent, r.Intent))
	}
	if exp.Action != "" && r.SalesDecision.PrimaryAction != exp.Action {
		failures = append(failures, fmt.Sprintf("action: want %s, got %s", exp.Action, r.SalesDecision.PrimaryAction))
	}
	if exp.AiReason != "" {
		if r.AiTrigger == nil || r.AiTrigger.Reason != exp.AiReason {
			got := "none"
			if r.AiTrigger != nil {
				got = string(r.AiTrigger.Reason)
			}
			failures = append(failures, fmt.Sprintf("ai reason: want %s, got %s", exp.AiReason, got))
		}
	}
	if exp.MinRecommended != nil && len(r.Recommended) < *exp.MinRecommended {
		failures = append(failures, fmt.Sprintf("recommended: want at least %d, got %d", *exp.MinRecommended, len(r.Recommended)))
	}
	if exp.MaxRecommended != nil && len(r.Recommended) > *exp.MaxRecommended {
		failures = append(failures, fmt.Sprintf("recommended: want at most %d, got %d", *exp.MaxRecommended, len(r.Recommended)))
	}
	if exp.MaxPrice != nil {
		for _, prod := range r.Recommended {
			if prod.Price > *exp.MaxPrice {
				failures = append(failures, fmt.Sprintf("recommended %s costs %s, above %s",
					prod.ID, models.FormatEuro(prod.Price), models.FormatEuro(*exp.MaxPrice)))
			}
		}
	}
	if exp.ReplyContains != "" && !strings.Contains(strings.ToLower(r.ReplyText), strings.ToLower(exp.ReplyContains)) {
		failures = append(failures, fmt.Sprintf("reply does not contain %q", exp.ReplyContains))
	}
	return failures
}
