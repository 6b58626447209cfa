package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flametower/pkg/pipeline"
)

// browseCommand creates the interactive level browser.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "browse [trace]",
		Short: "Browse the levels of a trace interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "level strategy: relocate (default), single-pass")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	trace, err := runner.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load trace %s: %w", input, err)
	}
	leveled, _, err := runner.Assign(ctx, trace, opts)
	if err != nil {
		return err
	}
	opts.SetDefaults()

	m := NewLevelBrowserModel(leveled, opts.LevelStrategy().String())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(LevelBrowserModel)
	if !ok || fm.Selected == nil {
		return nil
	}

	sel := fm.Selected
	span := sel.Op.Entity
	printInfo("%s", StyleHighlight.Render(span.Name))
	printKeyValue("ID", span.ID)
	printKeyValue("Level", fmt.Sprint(sel.Level))
	printKeyValue("Start", fmt.Sprintf("%g ms", sel.Op.Start))
	printKeyValue("Duration", fmt.Sprintf("%g ms", sel.Op.Duration))
	printKeyValue("Children", fmt.Sprint(len(sel.Children)))
	if span.Error {
		printKeyValue("Status", StyleWarning.Render("error"))
	}
	for _, k := range slices.Sorted(maps.Keys(span.Attrs)) {
		printDetail("%s = %s", k, span.Attrs[k])
	}
	return nil
}
