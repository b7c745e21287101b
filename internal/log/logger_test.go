package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestComponentAppearsOnce(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: slog.LevelInfo, Component: "app", Output: &buf})

	tests := []struct {
		name string
		emit func()
		want string
	}{
		{"base", func() { base.Info("started") }, "component=app"},
		{"with component", func() { base.WithComponent(ComponentHTTP).Warn("slow") }, "component=http"},
		{"rescoped twice", func() { base.WithComponent("a").WithComponent(ComponentReport).Error("x") }, "component=report"},
		{"with then component", func() { base.With("k", "v").WithComponent(ComponentStorage).InfoContext(context.Background(), "y") }, "component=storage"},
		{"structured", func() {
			NewStructuredLogger(base.WithComponent(ComponentHTTP)).LogFetchFailure(context.Background(), errors.New("down"), "fail_soft")
		}, "component=report"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.emit()
			out := buf.String()
			if n := strings.Count(out, "component="); n != 1 {
				t.Fatalf("expected one component attribute, got %d:\n%s", n, out)
			}
			if !strings.Contains(out, tt.want) {
				t.Fatalf("expected %s in %s", tt.want, out)
			}
		})
	}
}

func TestWithKeepsAttributesAcrossComponents(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Component: "app", Output: &buf}).With("request_id", "r1").WithComponent("http").Info("hi")
	if !strings.Contains(buf.String(), "request_id=r1") {
		t.Fatalf("attribute lost: %s", buf.String())
	}
}

func TestLevelHonoured(t *testing.T) {
	tests := []struct {
		name    string
		handler func(*bytes.Buffer) slog.Handler
	}{
		{"default handler", func(*bytes.Buffer) slog.Handler { return nil }},
		{"custom handler", func(b *bytes.Buffer) slog.Handler {
			return slog.NewTextHandler(b, &slog.HandlerOptions{Level: slog.LevelDebug})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Level: slog.LevelWarn, Component: "test", Output: &buf, Handler: tt.handler(&buf)})
			l.Debug("debug")
			l.Info("info")
			l.Warn("warn")
			out := buf.String()
			if strings.Contains(out, "msg=debug") || strings.Contains(out, "msg=info") {
				t.Fatalf("records below warn were written:\n%s", out)
			}
			if !strings.Contains(out, "msg=warn") {
				t.Fatalf("warn record missing:\n%s", out)
			}
			if l.Enabled(context.Background(), slog.LevelInfo) {
				t.Fatal("info must be disabled")
			}
		})
	}
}
