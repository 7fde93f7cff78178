package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		wantJSON bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, true},
		{"unknown falls back to text", Format("xml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: slog.LevelInfo, Format: tt.format, Output: &buf})
			logger.Info("validated", "collection", "posts", "count", 3)

			var parsed map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &parsed) == nil
			if isJSON != tt.wantJSON {
				t.Fatalf("json output = %v, want %v: %q", isJSON, tt.wantJSON, buf.String())
			}
			for _, want := range []string{"validated", "posts", "3"} {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q: %q", want, buf.String())
				}
			}
		})
	}
}

func TestNew_File(t *testing.T) {
	var out, file bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Format: FormatText, Output: &out, File: &file})

	logger.Debug("walking")
	if out.Len() != 0 {
		t.Errorf("console should filter Debug, got %q", out.String())
	}
	if !strings.Contains(file.String(), `"msg":"walking"`) {
		t.Errorf("log file should receive every level as JSON, got %q", file.String())
	}
}

func TestNew_Color(t *testing.T) {
	tests := []struct {
		mode ColorMode
		want bool
	}{
		{ColorAlways, true},
		{ColorNever, false},
		{ColorAuto, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Setenv("FORCE_COLOR", "")
			var buf bytes.Buffer
			New(Config{Level: slog.LevelWarn, Output: &buf, Color: tt.mode}).Warn("missing")

			if got := strings.Contains(buf.String(), "\x1b["); got != tt.want {
				t.Errorf("escape codes present = %v, want %v: %q", got, tt.want, buf.String())
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		config slog.Level
		level  slog.Level
		want   bool
	}{
		{"info at info", slog.LevelInfo, slog.LevelInfo, true},
		{"debug at info", slog.LevelInfo, slog.LevelDebug, false},
		{"error at warn", slog.LevelWarn, slog.LevelError, true},
		{"info at warn", slog.LevelWarn, slog.LevelInfo, false},
		{"trace at debug", slog.LevelDebug, LevelTrace, false},
		{"trace at trace", LevelTrace, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.config, Output: &buf})
			logger.Log(t.Context(), tt.level, "message")
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v (%q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{7, LevelTrace},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Output: &buf})

	ctx := NewContext(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Error("FromContext did not return the stored logger")
	}
	if FromContext(context.Background()) != slog.Default() {
		t.Error("FromContext should fall back to slog.Default")
	}
}

func TestDefaultAndDiscard(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default returned nil")
	}
	if Default().Enabled(t.Context(), slog.LevelInfo) {
		t.Error("Default should be at Warn")
	}
	if NewDiscard().Enabled(t.Context(), slog.LevelError) {
		t.Error("discard logger should not be enabled")
	}
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	logger.Debug("debug from test logger", "test", t.Name())
	logger.Error("error from test logger")
}

func TestTestWriter(t *testing.T) {
	tw := &testWriter{t: t}
	for _, in := range []string{"line\n", "no newline", ""} {
		n, err := tw.Write([]byte(in))
		if err != nil || n != len(in) {
			t.Errorf("Write(%q) = %d, %v", in, n, err)
		}
	}
}
