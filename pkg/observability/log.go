package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every pipeline and cache event as a debug log line.
// The CLI installs them at -vv.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse start", "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, boxes, diagnostics int, d time.Duration, err error) {
	h.logger.Debug("parse done", "source", source, "boxes", boxes, "diagnostics", diagnostics, "took", d, "err", err)
}

func (h *LogHooks) OnEmitStart(_ context.Context, boxes int) {
	h.logger.Debug("emit start", "boxes", boxes)
}

func (h *LogHooks) OnEmitComplete(_ context.Context, edges int, d time.Duration, err error) {
	h.logger.Debug("emit done", "edges", edges, "took", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render start", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("render done", "format", format, "bytes", size, "took", d, "err", err)
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

var _ Hooks = (*LogHooks)(nil)
