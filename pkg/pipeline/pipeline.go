// Package pipeline runs the load → assign → project → render pipeline shared
// by the CLI and the HTTP server.
//
// # Architecture
//
//  1. Load: read a trace file into an operation forest ([io.ImportFile])
//  2. Assign: compute levels with the selected strategy ([level.AssignWith])
//  3. Project: map the leveled forest onto a canvas ([viewport.Project])
//  4. Render: produce SVG, JSON, PNG, PDF or Graphviz output
//
// Level assignments and rendered artifacts are memoized through a
// [cache.Cache], keyed by the SHA-256 of the serialized trace plus the
// options that affect each stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	trace, err := runner.Load(ctx, "trace.json")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, trace, pipeline.Options{
//	    Width:   1200,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// [io.ImportFile]: github.com/matzehuels/flametower/pkg/io.ImportFile
// [level.AssignWith]: github.com/matzehuels/flametower/pkg/level.AssignWith
// [viewport.Project]: github.com/matzehuels/flametower/pkg/viewport.Project
package pipeline

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/flametower/pkg/cache"
	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/level"
	"github.com/matzehuels/flametower/pkg/render/flame"
	"github.com/matzehuels/flametower/pkg/viewport"
)

// Defaults shared by the CLI, the config file and the server.
const (
	DefaultWidth    = 1200
	DefaultStrategy = level.NameRelocate
	DefaultTheme    = string(flame.ThemeLight)
	DefaultScale    = 2.0
)

// Output formats.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatJSON    = "json"
	FormatLayout  = "layout"   // flat leveled node list
	FormatDOT     = "dot"      // Graphviz source of the leveled tree
	FormatTreeSVG = "tree-svg" // Graphviz-rendered leveled tree
)

// ValidFormats lists every supported format in display order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatLayout, FormatDOT, FormatTreeSVG}

// ValidateFormat checks that a format is supported. Formats are
// case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: %s)",
			format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options configures a pipeline run. It can be decoded from a TOML config
// file (see [LoadConfig]) or from a JSON request body.
type Options struct {
	// Layout options
	Strategy string `json:"strategy,omitempty" toml:"strategy"`

	// Viewport options. A nil bound extends the window to the trace edge on
	// that side.
	From      *float64 `json:"from,omitempty" toml:"from"`
	To        *float64 `json:"to,omitempty" toml:"to"`
	Width     int      `json:"width,omitempty" toml:"width"`
	RowHeight int      `json:"row_height,omitempty" toml:"row_height"`
	RowGap    *int     `json:"row_gap,omitempty" toml:"row_gap"`
	MinWidth  int      `json:"min_width,omitempty" toml:"min_width"`

	// Render options
	Formats     []string `json:"formats,omitempty" toml:"formats"`
	Theme       string   `json:"theme,omitempty" toml:"theme"`
	Interactive bool     `json:"interactive,omitempty" toml:"interactive"`
	Connectors  *bool    `json:"connectors,omitempty" toml:"connectors"`
	VisibleOnly bool     `json:"visible_only,omitempty" toml:"visible_only"`
	Detailed    bool     `json:"detailed,omitempty" toml:"detailed"`
	Scale       float64  `json:"scale,omitempty" toml:"scale"`
	Title       string   `json:"title,omitempty" toml:"title"`

	// Refresh bypasses cached results (not serialized).
	Refresh bool `json:"-" toml:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	TraceHash string
	Leveled   []*level.Leveled[Span]
	Container viewport.RenderContainer[Span]
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	Operations  int
	Levels      int
	Connectors  int
	Visible     int
	LayoutTime  time.Duration
	ProjectTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool // Level assignment came from cache
	RenderHit bool // All artifacts came from cache
}

// SetDefaults fills unset fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.RowHeight == 0 {
		o.RowHeight = viewport.DefaultRowHeightPx
	}
	if o.RowGap == nil {
		gap := viewport.DefaultRowGapPx
		o.RowGap = &gap
	}
	if o.MinWidth == 0 {
		o.MinWidth = viewport.DefaultMinWidthPx
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Connectors == nil {
		on := true
		o.Connectors = &on
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// Validate checks every option. Call [Options.SetDefaults] first.
func (o *Options) Validate() error {
	if _, err := level.ParseStrategy(o.Strategy); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStrategy, err, "invalid strategy %q", o.Strategy)
	}
	if _, err := flame.ParseTheme(o.Theme); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateCanvas(o.Width); err != nil {
		return err
	}
	if w := o.Window(); w.Bounded {
		if err := errors.ValidateWindow(w.From, w.To); err != nil {
			return err
		}
	}
	if o.RowHeight < 0 || o.MinWidth < 0 || (o.RowGap != nil && *o.RowGap < 0) {
		return errors.New(errors.ErrCodeInvalidCanvas, "row geometry must not be negative")
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative, got %v", o.Scale)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// LevelStrategy returns the parsed strategy, falling back to the default for
// unknown names. Validate reports unknown names.
func (o *Options) LevelStrategy() level.Strategy {
	s, err := level.ParseStrategy(o.Strategy)
	if err != nil {
		return level.StrategyRelocate
	}
	return s
}

// FlameTheme returns the parsed theme.
func (o *Options) FlameTheme() flame.Theme {
	t, err := flame.ParseTheme(o.Theme)
	if err != nil {
		return flame.ThemeLight
	}
	return t
}

// Window returns the requested viewport window.
func (o *Options) Window() viewport.Window {
	if o.From == nil && o.To == nil {
		return viewport.FullExtent()
	}
	from, to := -math.MaxFloat64, math.MaxFloat64
	if o.From != nil {
		from = *o.From
	}
	if o.To != nil {
		to = *o.To
	}
	return viewport.Between(from, to)
}

// ViewportOptions returns the row geometry.
func (o *Options) ViewportOptions() viewport.Options {
	vo := viewport.Options{
		RowHeightPx: o.RowHeight,
		RowGapPx:    viewport.DefaultRowGapPx,
		MinWidthPx:  o.MinWidth,
	}
	if o.RowGap != nil {
		vo.RowGapPx = *o.RowGap
	}
	return vo
}

// LayoutKeyOpts returns cache key options for level assignment.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Strategy: o.LevelStrategy().String()}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	w := o.Window()
	vo := o.ViewportOptions()
	return cache.ArtifactKeyOpts{
		Strategy:  o.LevelStrategy().String(),
		Format:    format + o.renderVariant(),
		From:      w.From,
		To:        w.To,
		Bounded:   w.Bounded,
		Width:     o.Width,
		RowHeight: vo.RowHeightPx,
		RowGap:    vo.RowGapPx,
		MinWidth:  vo.MinWidthPx,
		Theme:     string(o.FlameTheme()),
	}
}

// renderVariant folds the boolean render switches into the format name so
// they take part in artifact keys.
func (o *Options) renderVariant() string {
	var b strings.Builder
	if o.Interactive {
		b.WriteString("+i")
	}
	if o.Connectors != nil && !*o.Connectors {
		b.WriteString("-c")
	}
	if o.VisibleOnly {
		b.WriteString("+v")
	}
	if o.Detailed {
		b.WriteString("+d")
	}
	if o.Title != "" {
		fmt.Fprintf(&b, "+t%s", cache.Hash([]byte(o.Title))[:8])
	}
	if o.Scale != 0 && o.Scale != DefaultScale {
		fmt.Fprintf(&b, "@%g", o.Scale)
	}
	return b.String()
}
