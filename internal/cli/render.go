package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flametower/pkg/pipeline"
	"github.com/matzehuels/flametower/pkg/render"
)

// renderFlags holds the flags of the render command that do not map
// directly onto pipeline.Options.
type renderFlags struct {
	output       string
	formats      string
	config       string
	from, to     float64
	rowGap       int
	noConnectors bool
	noCache      bool
}

// renderCommand creates the render command for drawing flame graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags renderFlags
		opts  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [trace]",
		Short: "Render a trace as a flame graph",
		Long: `Render a trace as a flame graph.

Levels are assigned as with 'layout', then the time window given by --from and
--to (in milliseconds, defaulting to the whole trace) is projected onto a canvas
--width pixels wide. Operations outside the window are kept in the layout but
not drawn.

Formats (comma-separated with -f):
  svg       flame graph (default)
  png, pdf  flame graph converted with rsvg-convert
  json      projected bars and connectors
  layout    leveled node list, as written by 'layout'
  dot       Graphviz source of the leveled tree
  tree-svg  leveled tree drawn by Graphviz

Options can also be read from a TOML file with --config; flags win over it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveRenderOptions(cmd, flags, opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], resolved, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.ValidFormats, ", "))
	cmd.Flags().StringVar(&flags.config, "config", "", "read options from a TOML file")
	cmd.Flags().Float64Var(&flags.from, "from", 0, "window start in ms (default: trace start)")
	cmd.Flags().Float64Var(&flags.to, "to", 0, "window end in ms (default: trace end)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, fmt.Sprintf("canvas width in pixels (default %d)", pipeline.DefaultWidth))
	cmd.Flags().IntVar(&opts.RowHeight, "row-height", 0, "bar height in pixels")
	cmd.Flags().IntVar(&flags.rowGap, "row-gap", 0, "gap between rows in pixels")
	cmd.Flags().IntVar(&opts.MinWidth, "min-width", 0, "minimum bar width in pixels")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "level strategy: relocate (default), single-pass")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "color theme: light (default), dark")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title drawn above the graph")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "embed hover and click-to-zoom script (svg)")
	cmd.Flags().BoolVar(&flags.noConnectors, "no-connectors", false, "hide connectors between distant parents and children")
	cmd.Flags().BoolVar(&opts.VisibleOnly, "visible-only", false, "omit off-canvas bars (json)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label tree nodes with timings (dot, tree-svg)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, fmt.Sprintf("raster scale factor (png, default %g)", pipeline.DefaultScale))
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// resolveRenderOptions folds flags that were explicitly set into opts and
// merges the result over the config file, if any.
func resolveRenderOptions(cmd *cobra.Command, flags renderFlags, opts pipeline.Options) (pipeline.Options, error) {
	fs := cmd.Flags()
	if fs.Changed("from") {
		opts.From = &flags.from
	}
	if fs.Changed("to") {
		opts.To = &flags.to
	}
	if fs.Changed("row-gap") {
		opts.RowGap = &flags.rowGap
	}
	if flags.noConnectors {
		off := false
		opts.Connectors = &off
	}
	opts.Formats = parseFormats(flags.formats)

	if flags.config != "" {
		base, err := pipeline.LoadConfig(flags.config)
		if err != nil {
			return opts, err
		}
		refresh := opts.Refresh
		opts = opts.Merge(base)
		opts.Refresh = refresh
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	if needsRasterizer(opts.Formats) && !render.Available() {
		printWarning("rsvg-convert not found; png and pdf output will fail")
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	trace, err := runner.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load trace %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	result, err := runner.Execute(ctx, trace, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s", filepath.Base(input))
	printStats(result.Stats.Operations, result.Stats.Levels, result.Stats.Connectors,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	printDetail("window [%g, %g) ms · %d of %d bars visible",
		result.Container.From, result.Container.To,
		result.Stats.Visible, result.Stats.Operations)
	printNewline()

	logger := loggerFromContext(ctx)
	paths := outputPaths(flags.output, input, opts.Formats)
	for _, format := range opts.Formats {
		path := paths[format]
		data := result.Artifacts[format]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote output", "format", format, "path", path, "bytes", len(data))
		printFile(path)
	}
	return nil
}

func needsRasterizer(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatPNG) || slices.Contains(formats, pipeline.FormatPDF)
}

// formatExt maps a format to its file suffix. JSON outputs get a compound
// suffix so they never overwrite a .json trace.
func formatExt(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return ".flame.json"
	case pipeline.FormatLayout:
		return ".layout.json"
	case pipeline.FormatTreeSVG:
		return ".tree.svg"
	default:
		return "." + format
	}
}

// outputPaths assigns a file path to every format. A single format writes
// to output as given; multiple formats share output (or the input path)
// as a base with per-format suffixes.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + formatExt(f)
	}
	return paths
}

// basePath derives the base output path. If output is empty, the input's
// extension is stripped. A known format extension on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	exts := make([]string, len(pipeline.ValidFormats))
	for i, f := range pipeline.ValidFormats {
		exts[i] = formatExt(f)
	}
	// ".layout.json" before ".json"
	slices.SortFunc(exts, func(a, b string) int { return len(b) - len(a) })
	for _, ext := range exts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
