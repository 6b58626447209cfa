package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flametower/pkg/cache"
	traceio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/level"
	"github.com/matzehuels/flametower/pkg/observability"
	"github.com/matzehuels/flametower/pkg/optree"
	"github.com/matzehuels/flametower/pkg/viewport"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Load reads and validates a trace file.
func (r *Runner) Load(ctx context.Context, path string) (Trace, error) {
	observability.Pipeline().OnImportStart(ctx, path)
	start := time.Now()
	trace, err := traceio.ImportFile(path)
	observability.Pipeline().OnImportComplete(ctx, path, optree.Count(trace), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded trace", "path", path, "operations", optree.Count(trace))
	return trace, nil
}

// TraceHash returns the content hash used in cache keys.
func TraceHash(trace Trace) (string, error) {
	data, err := traceio.MarshalTrace(trace)
	if err != nil {
		return "", fmt.Errorf("serialize trace: %w", err)
	}
	return cache.Hash(data), nil
}

// Execute runs assign → project → render with caching.
func (r *Runner) Execute(ctx context.Context, trace Trace, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hash, err := TraceHash(trace)
	if err != nil {
		return nil, err
	}
	result := &Result{TraceHash: hash}

	layoutStart := time.Now()
	leveled, hit, err := r.assign(ctx, trace, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Leveled = leveled
	result.CacheInfo.LayoutHit = hit
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Operations = level.Count(leveled)
	result.Stats.Levels = level.MaxLevel(leveled) + 1

	r.Logger.Info("assigned levels",
		"operations", result.Stats.Operations,
		"levels", result.Stats.Levels,
		"strategy", opts.LevelStrategy(),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	projectStart := time.Now()
	result.Container = r.Project(ctx, leveled, opts)
	result.Stats.ProjectTime = time.Since(projectStart)
	result.Stats.Connectors = len(result.Container.Connectors)
	for _, it := range result.Container.Items {
		if it.Visible {
			result.Stats.Visible++
		}
	}

	renderStart := time.Now()
	artifacts, hit, err := r.render(ctx, hash, leveled, result.Container, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Assign levels the trace, reusing a cached assignment when one exists.
func (r *Runner) Assign(ctx context.Context, trace Trace, opts Options) ([]*level.Leveled[Span], bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hash, err := TraceHash(trace)
	if err != nil {
		return nil, false, err
	}
	return r.assign(ctx, trace, hash, opts)
}

func (r *Runner) assign(ctx context.Context, trace Trace, hash string, opts Options) ([]*level.Leveled[Span], bool, error) {
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var levels []int
			if err := json.Unmarshal(data, &levels); err == nil {
				if leveled, err := level.FromLevels(trace, levels); err == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					return leveled, true, nil
				}
			}
			r.Logger.Warn("discarding unusable cached layout", "key", key)
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	strategy := opts.LevelStrategy()
	n := optree.Count(trace)
	observability.Pipeline().OnLayoutStart(ctx, strategy.String(), n)
	start := time.Now()
	leveled := level.AssignWith(strategy, trace)
	observability.Pipeline().OnLayoutComplete(ctx, strategy.String(), level.MaxLevel(leveled)+1, time.Since(start), nil)

	if r.Logger.GetLevel() <= log.DebugLevel {
		if err := level.Validate(leveled); err != nil {
			r.Logger.Error("level assignment broke an invariant", "strategy", strategy, "error", err)
		}
	}

	if data, err := json.Marshal(level.Levels(leveled)); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.LayoutTTL); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return leveled, false, nil
}

// Project maps the leveled forest onto the canvas described by opts.
// opts must already carry defaults.
func (r *Runner) Project(ctx context.Context, leveled []*level.Leveled[Span], opts Options) viewport.RenderContainer[Span] {
	w := opts.Window()
	observability.Pipeline().OnProjectStart(ctx, w.From, w.To, opts.Width)
	start := time.Now()
	c := viewport.Project(leveled, w, opts.Width, opts.ViewportOptions())
	observability.Pipeline().OnProjectComplete(ctx, len(c.Items), time.Since(start))
	return c
}

func (r *Runner) render(ctx context.Context, hash string, leveled []*level.Leveled[Span], c viewport.RenderContainer[Span], opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	for _, format := range missing {
		observability.Pipeline().OnRenderStart(ctx, format)
		start := time.Now()
		one := opts
		one.Formats = []string{format}
		rendered, err := Render(ctx, leveled, c, one)
		observability.Pipeline().OnRenderComplete(ctx, format, len(rendered[format]), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}

		data := rendered[format]
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
