package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

func TestNewJSONTo_WritesFieldsAndRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	logger.DebugContext(ctx, "hidden")
	logger.WarnContext(ctx, "division refresh failed", "division", "Majors", "error", errors.New("boom"), "orphan")
	_ = logger.Sync()

	var entry map[string]any
	if err := jsoniter.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single json line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "division refresh failed" || entry["level"] != "WARN" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry["division"] != "Majors" || entry["error"] != "boom" || entry["request_id"] != "req-1" {
		t.Fatalf("unexpected fields: %+v", entry)
	}
	if _, ok := entry["orphan"]; !ok {
		t.Fatalf("expected dangling key to be kept: %+v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q): expected %s, got %s", raw, want, got)
		}
	}
}

func TestDefault_NilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("ignored")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected nop logger from nil receiver")
	}
	if ContextWithRequestID(context.Background(), "") != context.Background() {
		t.Fatalf("expected empty request id to leave ctx untouched")
	}
}
