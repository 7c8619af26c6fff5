package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWritesText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{})

	logger.Info("event appended", "tool", "Bash")
	out := buf.String()
	if !strings.Contains(out, "event appended") || !strings.Contains(out, "tool=Bash") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := New(&buf, Options{Level: level})

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn: %q", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn missing: %q", buf.String())
	}
}

func TestNewWithJournalStillWritesTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Journal: true})

	logger.Error("notify failed")
	if !strings.Contains(buf.String(), "notify failed") {
		t.Errorf("terminal output missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
		}
		if got != want {
			t.Errorf("%q: got %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("tool.name-x"); got != "TOOL_NAME_X" {
		t.Errorf("got %q", got)
	}
}
