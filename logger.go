package prismal

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// silent discards every record; Enabled reports false so disabled calls
// never format their arguments.
var silent = slog.New(slog.DiscardHandler)

// pkgLogger is shared by every Renderer built without WithLogger.
var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(silent)
}

// SetLogger sets the logger used by renderers that were not given one with
// WithLogger. Passing nil silences them again, which is the default.
//
// Renderers log each pass at [slog.LevelDebug]: one record per layer with
// its drawn and culled polygon counts, and one when a pass stops early.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	pkgLogger.Store(l)
}

// Logger returns the logger set with SetLogger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return pkgLogger.Load()
}

// passLogger returns the logger for one render pass, annotated with the
// geometry the pass works on.
func (r *Renderer) passLogger(cfg *RenderConfig, bounds Rect) *slog.Logger {
	l := r.logger
	if l == nil {
		l = Logger()
	}
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return l
	}
	return l.With(slog.Group("pass",
		slog.Int("layers", cfg.LayerCount()),
		slog.Int("structure", cfg.StructureVertexCount()),
		slog.Int("polygon", cfg.PolygonVertexCount()),
		slog.String("options", cfg.DrawingOptions().String()),
		slog.Float64("width", bounds.Width),
		slog.Float64("height", bounds.Height),
	))
}
