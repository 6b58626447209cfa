package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline, cache and server events as debug log lines.
// A single value satisfies all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger. A nil logger uses the
// package-level default logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnImportStart(_ context.Context, source string) {
	h.logger.Debug("importing trace", "source", source)
}

func (h *LogHooks) OnImportComplete(_ context.Context, source string, ops int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("import failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("imported trace", "source", source, "operations", ops, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, strategy string, ops int) {
	h.logger.Debug("assigning levels", "strategy", strategy, "operations", ops)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, strategy string, levels int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("level assignment failed", "strategy", strategy, "error", err)
		return
	}
	h.logger.Debug("assigned levels", "strategy", strategy, "levels", levels, "duration", d)
}

func (h *LogHooks) OnProjectStart(_ context.Context, from, to float64, widthPx int) {
	h.logger.Debug("projecting viewport", "from", from, "to", to, "width", widthPx)
}

func (h *LogHooks) OnProjectComplete(_ context.Context, items int, d time.Duration) {
	h.logger.Debug("projected viewport", "items", items, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("rendering", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, bytes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("rendered", "format", format, "bytes", bytes, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
