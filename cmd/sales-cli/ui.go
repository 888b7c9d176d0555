// cmd/sales-cli/ui.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sales-workers/internal/models"

	"github.com/fatih/color"
)

type printer struct {
	out     io.Writer
	opts    *rootOptions
	heading *color.Color
	good    *color.Color
	bad     *color.Color
	muted   *color.Color
}

func newPrinter(out io.Writer, opts *rootOptions) *printer {
	return &printer{
		out:     out,
		opts:    opts,
		heading: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed, color.Bold),
		muted:   color.New(color.FgHiBlack),
	}
}

func (p *printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) Success(format string, args ...interface{}) {
	p.good.Fprintf(p.out, "✓ %s\n", fmt.Sprintf(format, args...))
}

func (p *printer) Failure(format string, args ...interface{}) {
	p.bad.Fprintf(p.out, "✗ %s\n", fmt.Sprintf(format, args...))
}

func (p *printer) Turn(n int, text string, r models.TurnResult) {
	if n > 0 {
		p.heading.Fprintf(p.out, "Turn %d: ", n)
	} else {
		p.heading.Fprint(p.out, "Turn: ")
	}
	fmt.Fprintln(p.out, text)

	fmt.Fprintf(p.out, "  intent   %s\n", r.Intent)
	fmt.Fprintf(p.out, "  action   %s", r.SalesDecision.PrimaryAction)
	if len(r.SalesDecision.Notes) > 0 {
		notes := make([]string, 0, len(r.SalesDecision.Notes))
		for _, n := range r.SalesDecision.Notes {
			notes = append(notes, string(n))
		}
		p.muted.Fprintf(p.out, " (%s)", strings.Join(notes, ", "))
	}
	fmt.Fprintln(p.out)

	if r.AiTrigger != nil && r.AiTrigger.NeedsAiHelp {
		p.bad.Fprintf(p.out, "  ai       %s", r.AiTrigger.Reason)
		if len(r.AiTrigger.UnknownTerms) > 0 {
			fmt.Fprintf(p.out, " [%s]", strings.Join(r.AiTrigger.UnknownTerms, ", "))
		}
		fmt.Fprintln(p.out)
	}
	if r.MissingCategoryHint != "" {
		fmt.Fprintf(p.out, "  missing  %s\n", r.MissingCategoryHint)
	}

	for _, prod := range r.Recommended {
		fmt.Fprintf(p.out, "  • %-40s %10s  ", prod.Title, models.FormatEuro(prod.Price))
		p.muted.Fprintf(p.out, "%s\n", prod.ID)
	}
	p.good.Fprintf(p.out, "  » %s\n", r.ReplyText)

	if p.opts.verbose {
		for _, ev := range r.Trace {
			p.muted.Fprintf(p.out, "    [%s] %s\n", ev.Stage, ev.Message)
		}
	}
}
