package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestMultiHandler(t *testing.T) {
	var text, js bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&js, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("collection", "posts")

	logger.Debug("walking", "dir", "content/posts")

	if text.Len() != 0 {
		t.Errorf("text handler should skip Debug, got %q", text.String())
	}
	var rec map[string]any
	if err := json.Unmarshal(js.Bytes(), &rec); err != nil {
		t.Fatalf("json output invalid: %v (%q)", err, js.String())
	}
	if rec["collection"] != "posts" || rec["dir"] != "content/posts" {
		t.Errorf("unexpected json record: %v", rec)
	}

	logger.WithGroup("entry").Warn("invalid", "field", "link")
	if !strings.Contains(text.String(), "entry.field=link") {
		t.Errorf("text handler missing grouped attr: %q", text.String())
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	if !h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected Info enabled by the second handler")
	}
	if h.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected Debug disabled by both handlers")
	}
}

type failingHandler struct {
	slog.Handler
	err error
}

func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }

func TestMultiHandler_HandleErrors(t *testing.T) {
	errA := errors.New("disk full")
	errB := errors.New("closed")
	var js bytes.Buffer

	h := NewMultiHandler(
		failingHandler{Handler: slog.NewTextHandler(&bytes.Buffer{}, nil), err: errA},
		nil,
		slog.NewJSONHandler(&js, nil),
		failingHandler{Handler: slog.NewTextHandler(&bytes.Buffer{}, nil), err: errB},
	)

	err := slog.New(h).Handler().Handle(t.Context(), slog.NewRecord(time.Now(), slog.LevelInfo, "loaded", 0))
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Handle() error = %v, want both handler errors", err)
	}
	if !strings.Contains(js.String(), `"msg":"loaded"`) {
		t.Errorf("healthy handler should still receive the record, got %q", js.String())
	}
}
