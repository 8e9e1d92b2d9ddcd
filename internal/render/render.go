// Package render prints analysis results as aligned terminal tables.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/lotofacil/internal/backtest"
	"github.com/lox/lotofacil/internal/classify"
	"github.com/lox/lotofacil/internal/coverage"
	"github.com/lox/lotofacil/internal/frequency"
	"github.com/lox/lotofacil/internal/generator"
	"github.com/lox/lotofacil/internal/strategy"
)

// Disclaimer accompanies every backtest table
const Disclaimer = "Historical performance only. Every combination has the same chance in the next draw."

// Printer writes styled tables to out
type Printer struct {
	out io.Writer

	header  lipgloss.Style
	numbers lipgloss.Style
	hot     lipgloss.Style
	cold    lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	muted   lipgloss.Style
}

// New creates a printer. With noColor set, styles render as plain text.
func New(out io.Writer, noColor bool) *Printer {
	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		out:     out,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		numbers: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		hot:     r.NewStyle().Foreground(lipgloss.Color("9")),
		cold:    r.NewStyle().Foreground(lipgloss.Color("12")),
		good:    r.NewStyle().Foreground(lipgloss.Color("10")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (p *Printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
}

func (p *Printer) row(w io.Writer, cells ...string) {
	fmt.Fprintln(w, strings.Join(cells, "\t"))
}

func (p *Printer) headerRow(w io.Writer, names ...string) {
	cells := make([]string, len(names))
	for i, n := range names {
		cells[i] = p.header.Render(n)
	}
	p.row(w, cells...)
}

// Frequency prints one line per number with its class
func (p *Printer) Frequency(a *frequency.Analysis, cls classify.Classification) {
	fmt.Fprintf(p.out, "%s over %d draws\n\n", p.header.Render("frequency"), a.Draws)

	w := p.table()
	p.headerRow(w, "number", "count", "score", "gap", "class")
	for _, n := range cls.Ranking {
		label := cls.Label(n)
		p.row(w,
			p.numbers.Render(fmt.Sprintf("%02d", n)),
			fmt.Sprint(a.Counts[n]),
			fmt.Sprintf("%.3f", a.Scores[n]),
			fmt.Sprint(a.Gaps[n]),
			p.label(label),
		)
	}
	w.Flush()

	fmt.Fprintf(p.out, "\nhot  %s\ncold %s\n", p.hot.Render(joinNumbers(cls.Hot)), p.cold.Render(joinNumbers(cls.Cold)))
}

func (p *Printer) label(l classify.Label) string {
	switch l {
	case classify.Hot:
		return p.hot.Render(string(l))
	case classify.Cold:
		return p.cold.Render(string(l))
	case classify.Both:
		return p.warn.Render(string(l))
	default:
		return p.muted.Render(string(l))
	}
}

// Games prints generated games with their sum and even count, plus backtest
// columns when results is non-nil
func (p *Printer) Games(res generator.Result, results []*backtest.Result) {
	w := p.table()
	if results != nil {
		p.headerRow(w, "#", "game", "sum", "evens", "mean", "min", "max")
	} else {
		p.headerRow(w, "#", "game", "sum", "evens")
	}
	for i, g := range res.Games {
		cells := []string{fmt.Sprint(i + 1), p.numbers.Render(g.String()), fmt.Sprint(g.Sum()), fmt.Sprint(g.Evens())}
		if results != nil && i < len(results) {
			r := results[i]
			cells = append(cells, fmt.Sprintf("%.2f", r.Mean), fmt.Sprint(r.Min), fmt.Sprint(r.Max))
		}
		p.row(w, cells...)
	}
	w.Flush()

	fmt.Fprintf(p.out, "\n%d of %d games in %d attempts", len(res.Games), res.Requested, res.Attempts)
	if short := res.Shortfall(); short > 0 {
		fmt.Fprintf(p.out, " %s", p.warn.Render(fmt.Sprintf("(%d short: constraints too tight or base too small)", short)))
	}
	fmt.Fprintln(p.out)
}

// Backtest prints the match distribution and prize tiers of each candidate
func (p *Printer) Backtest(results []*backtest.Result) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(p.out)
		}
		fmt.Fprintf(p.out, "%s %s\n", p.header.Render("candidate"), p.numbers.Render(r.Candidate.String()))
		fmt.Fprintf(p.out, "%d draws  mean %.2f  sd %.2f  median %.1f  min %d  max %d\n\n",
			r.Draws(), r.Mean, r.StdDev, r.Median, r.Min, r.Max)

		w := p.table()
		p.headerRow(w, "matches", "draws", "share")
		for k := r.Max; k >= r.Min; k-- {
			hits := r.Hits(k)
			if hits == 0 {
				continue
			}
			matches := fmt.Sprint(k)
			if k >= backtest.PrizeMin {
				matches = p.good.Render(matches)
			}
			p.row(w, matches, fmt.Sprint(hits), fmt.Sprintf("%.1f%%", 100*float64(hits)/float64(r.Draws())))
		}
		w.Flush()

		tiers := r.Tiers()
		parts := make([]string, len(tiers))
		for t, n := range tiers {
			parts[t] = fmt.Sprintf("%d:%d", backtest.PrizeMin+t, n)
		}
		fmt.Fprintf(p.out, "prize tiers %s\n", strings.Join(parts, " "))
	}
	fmt.Fprintf(p.out, "\n%s\n", p.muted.Render(Disclaimer))
}

// Comparison prints the strategy ranking
func (p *Printer) Comparison(cmp *strategy.Comparison) {
	fmt.Fprintf(p.out, "%s over %d draws\n\n", p.header.Render("strategies"), cmp.Draws)

	w := p.table()
	p.headerRow(w, "rank", "strategy", "base", "games", "score", "status")
	rank := 0
	for _, o := range cmp.Outcomes {
		rankCell, score := "-", "-"
		status := p.muted.Render(string(o.Status))
		if o.Status == strategy.StatusRanked {
			rank++
			rankCell = fmt.Sprint(rank)
			score = fmt.Sprintf("%.3f", o.Score)
			status = p.good.Render(string(o.Status))
		} else if o.Status == strategy.StatusEmpty {
			status = p.warn.Render(string(o.Status))
		}
		p.row(w, rankCell, o.Strategy, fmt.Sprint(o.Base.Len()), fmt.Sprint(len(o.Games)), score, status)
	}
	w.Flush()

	if best, ok := cmp.Best(); ok {
		lo, hi := best.Summary.ConfidenceInterval95()
		fmt.Fprintf(p.out, "\nbest %s  mean %.3f  95%% CI [%.3f, %.3f]\n", p.good.Render(best.Strategy), best.Score, lo, hi)
	} else {
		fmt.Fprintf(p.out, "\n%s\n", p.warn.Render("no strategy produced games under the current constraints"))
	}
	fmt.Fprintf(p.out, "%s\n", p.muted.Render(Disclaimer))
}

// Coverage prints the games picked for a pool and the coverage reached
func (p *Printer) Coverage(sel *coverage.Selection) {
	fmt.Fprintf(p.out, "%s %s (%d candidates)\n\n", p.header.Render("pool"), p.numbers.Render(sel.Pool.String()), sel.Candidates)

	w := p.table()
	p.headerRow(w, "#", "game", "new numbers", "new pairs")
	for i, pick := range sel.Picks {
		p.row(w, fmt.Sprint(i+1), p.numbers.Render(pick.Game.String()), fmt.Sprint(pick.NewNumbers), fmt.Sprint(pick.NewPairs))
	}
	w.Flush()

	fmt.Fprintf(p.out, "\nnumbers %d/%d (%.0f%%)  pairs %d/%d (%.1f%%)\n",
		sel.NumbersCovered, sel.Pool.Len(), 100*sel.NumberCoverage(),
		sel.PairsCovered, sel.TotalPairs, 100*sel.PairCoverage())
}

func joinNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, " ")
}

