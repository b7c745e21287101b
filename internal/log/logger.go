package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is a slog.Logger tagged with the component that owns it. The
// component is a handler attribute, so every record carries it exactly once.
type Logger struct {
	*slog.Logger
	// base holds the attributes added with With, without the component.
	base      *slog.Logger
	component string
}

// Config holds logger configuration. Level applies whether or not Handler
// is set; Output is used only when Handler is nil.
type Config struct {
	Level     slog.Level
	Component string
	Output    io.Writer
	Handler   slog.Handler
}

// DefaultConfig logs at info to stdout.
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Component: "app",
		Output:    os.Stdout,
	}
}

// New creates a logger from config.
func New(config Config) *Logger {
	var handler slog.Handler
	if config.Handler != nil {
		handler = &levelHandler{min: config.Level, next: config.Handler}
	} else {
		out := config.Output
		if out == nil {
			out = os.Stdout
		}
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: config.Level})
	}
	return scoped(slog.New(handler), config.Component)
}

func scoped(base *slog.Logger, component string) *Logger {
	l := base
	if component != "" {
		l = base.With(FieldComponent, component)
	}
	return &Logger{Logger: l, base: base, component: component}
}

// With returns a logger carrying the given attributes as well.
func (l *Logger) With(args ...any) *Logger {
	return scoped(l.base.With(args...), l.component)
}

// WithComponent returns a logger whose records name component instead of
// the current one.
func (l *Logger) WithComponent(component string) *Logger {
	return scoped(l.base, component)
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault sets the default logger for the application.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}

// levelHandler drops records below min before they reach next.
type levelHandler struct {
	min  slog.Level
	next slog.Handler
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.min && h.next.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{min: h.min, next: h.next.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{min: h.min, next: h.next.WithGroup(name)}
}
