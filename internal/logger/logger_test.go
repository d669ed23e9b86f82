package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Envs(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		l, err := NewLogger(env)
		if err != nil {
			t.Fatalf("env %s: unexpected error: %v", env, err)
		}
		if l == nil {
			t.Fatalf("env %s: nil logger", env)
		}
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging"); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core).With(zap.String("request_id", "req-1"))

	ctx := ContextWithLogger(context.Background(), l)
	FromContext(ctx).Info("search")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["request_id"]; got != "req-1" {
		t.Errorf("request_id = %v", got)
	}
}

func TestFromContext_Missing(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected a no-op logger, got nil")
	}
}

func TestOr(t *testing.T) {
	fallback := zap.NewNop()
	if Or(context.Background(), fallback) != fallback {
		t.Error("expected fallback outside a request")
	}
	l := zap.NewExample()
	if Or(ContextWithLogger(context.Background(), l), fallback) != l {
		t.Error("expected request logger")
	}
}

func TestAnnotate(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))
	ctx, ev := ContextWithEvent(ctx)

	ctx = Annotate(ctx, zap.String("q", "writ"), zap.String("sort", "rating"))
	ctx = Annotate(ctx, zap.Bool("cached", true))
	FromContext(ctx).Warn("suggestions failed")

	fields := ev.Fields()
	if len(fields) != 3 || fields[0].Key != "q" || fields[2].Key != "cached" {
		t.Fatalf("event fields = %v", fields)
	}
	got := logs.All()[0].ContextMap()
	if got["q"] != "writ" || got["sort"] != "rating" || got["cached"] != true {
		t.Errorf("logger fields = %v", got)
	}
}

func TestAnnotate_OutsideRequest(t *testing.T) {
	ctx := context.Background()
	if Annotate(ctx, zap.String("q", "x")) != ctx {
		t.Error("expected ctx unchanged without logger or event")
	}
}
