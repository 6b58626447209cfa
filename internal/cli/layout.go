package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	traceio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/level"
	"github.com/matzehuels/flametower/pkg/pipeline"
)

// layoutCommand creates the layout command for assigning levels.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		quiet   bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "layout [trace]",
		Short: "Assign flame graph levels to a trace",
		Long: `Assign flame graph levels to a trace.

The layout command reads a trace (.json or .toml), assigns every operation a
level, and writes the leveled node list as JSON. Children always sit on a
deeper level than their parents, and operations sharing a level never overlap
in time.

Strategies:
  relocate     moves subtrees up into free rows for a compact graph (default)
  single-pass  places each operation once, in input order

Assignments are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, quiet)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <trace>.layout.json)")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "level strategy: relocate (default), single-pass")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "skip the per-level table")

	return cmd
}

// runLayout loads the trace, assigns levels, and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, quiet bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	trace, err := runner.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load trace %s: %w", input, err)
	}

	prog := newProgress(c.Logger)
	leveled, cached, err := runner.Assign(ctx, trace, opts)
	if err != nil {
		return err
	}
	opts.SetDefaults()
	prog.done(fmt.Sprintf("Assigned %d operations to %d levels", level.Count(leveled), level.MaxLevel(leveled)+1))

	if output == "" {
		output = defaultOutput(input, ".layout.json")
	}
	strategy := opts.LevelStrategy().String()
	if err := traceio.ExportLayout(leveled, strategy, output); err != nil {
		return err
	}

	printSuccess("Layout computed")
	printStats(level.Count(leveled), level.MaxLevel(leveled)+1, countSkips(leveled), cached)
	printKeyValue("Strategy", strategy)
	if !quiet && len(leveled) > 0 {
		printNewline()
		fmt.Println(levelTable(leveled))
	}
	printNewline()
	printFile(output)
	printNewline()
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, input))
	return nil
}

// countSkips counts parent/child pairs more than one level apart. Each one
// becomes a connector when both ends are on the canvas.
func countSkips[T any](roots []*level.Leveled[T]) int {
	n := 0
	level.Walk(roots, func(l *level.Leveled[T]) bool {
		if p := l.Parent(); p != nil && l.Level > p.Level+1 {
			n++
		}
		return true
	})
	return n
}

// levelStats summarizes one level row.
type levelStats struct {
	Level      int
	Operations int
	Start, End float64 // earliest start and latest end on the row
	Busy       float64 // summed duration
	Errors     int
}

// summarizeLevels returns one entry per level, top to bottom.
func summarizeLevels(roots []*level.Leveled[traceio.Span]) []levelStats {
	rows := level.Rows(roots)
	stats := make([]levelStats, len(rows))
	for i, row := range rows {
		s := levelStats{Level: i, Operations: len(row)}
		for j, l := range row {
			iv := l.Interval()
			if j == 0 {
				s.Start, s.End = iv.Start, iv.End
			}
			s.Start = min(s.Start, iv.Start)
			s.End = max(s.End, iv.End)
			s.Busy += l.Op.Duration
			if l.Op.Entity.Error {
				s.Errors++
			}
		}
		stats[i] = s
	}
	return stats
}

// levelTable renders the per-level summary.
func levelTable(roots []*level.Leveled[traceio.Span]) string {
	var rows [][]string
	for _, s := range summarizeLevels(roots) {
		rows = append(rows, []string{
			levelLabel(s.Level),
			strconv.Itoa(s.Operations),
			fmt.Sprintf("[%g, %g)", s.Start, s.End),
			fmt.Sprintf("%g", s.Busy),
			strconv.Itoa(s.Errors),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Level", "Ops", "Extent (ms)", "Busy (ms)", "Errors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleTableHeader
			case col == 0:
				return styleLevel
			case col == 4 && rows[row][4] != "0":
				return styleErrors
			}
			return styleTableCell
		}).
		String()
}
