package log

import (
	"context"
	"log/slog"
	"net/http"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// FromContext extracts a logger from the request context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return scoped(slog.Default(), "unknown")
}

// ComponentMiddleware creates middleware that adds component context to the logger
func ComponentMiddleware(component string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get logger from context and add component
			logger := FromContext(r.Context()).WithComponent(component)
			
			// Update context with component logger
			ctx := context.WithValue(r.Context(), LoggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogHTTPStart logs the start of an HTTP request
func (sl *StructuredLogger) LogHTTPStart(ctx context.Context, r *http.Request, clientIP string) {
	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent"), r.Header.Get("Referer")).
		WithClientIP(clientIP).
		WithComponent(ComponentHTTP)

	sl.log(ctx, slog.LevelInfo, "HTTP request started", fields)
}

// LogHTTPEnd logs the completion of an HTTP request
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, r *http.Request, statusCode int, durationMs int64, clientIP string) {
	level := slog.LevelInfo
	if statusCode >= 400 && statusCode < 500 {
		level = slog.LevelWarn
	} else if statusCode >= 500 {
		level = slog.LevelError
	}

	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, "", "").
		WithHTTPResponse(statusCode, durationMs, statusCode < 400).
		WithClientIP(clientIP).
		WithComponent(ComponentHTTP)

	sl.log(ctx, level, "HTTP request completed", fields)
}

// LogContributionRecorded logs a stored contribution without its contributor.
func (sl *StructuredLogger) LogContributionRecorded(ctx context.Context, typ string, amount float64, hasNotes bool) {
	fields := NewFields().
		WithContribution(typ, amount, hasNotes).
		WithOperation(OpSubmit).
		WithComponent(ComponentContribution)

	sl.log(ctx, slog.LevelInfo, "Contribution recorded", fields)
}

// LogFetchFailure logs a failed read that was absorbed by a fail-soft policy.
func (sl *StructuredLogger) LogFetchFailure(ctx context.Context, err error, policy string) {
	fields := NewFields().
		WithError(err).
		WithErrorType(ErrorTypeStorage).
		WithOperation(OpFetch).
		WithComponent(ComponentReport)
	fields[FieldPolicy] = policy

	sl.log(ctx, slog.LevelWarn, "Summary fetch failed", fields)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation).
		WithComponent(component)

	sl.log(ctx, slog.LevelError, msg, allFields)
}

// log writes fields at level. A component in fields rescopes the logger
// rather than being added as a second attribute.
func (sl *StructuredLogger) log(ctx context.Context, level slog.Level, msg string, fields LogFields) {
	logger := sl.logger
	if c, ok := fields[FieldComponent].(string); ok {
		delete(fields, FieldComponent)
		logger = logger.WithComponent(c)
	}
	logger.Log(ctx, level, msg, fields.ToSlice()...)
}
