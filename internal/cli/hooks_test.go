package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/agenthooks/internal/eventlog"
	"github.com/ppiankov/agenthooks/internal/hook"
	"github.com/ppiankov/agenthooks/internal/notify"
	"github.com/ppiankov/agenthooks/internal/sound"
)

type fakeRunner struct {
	installed bool
	calls     []string
	err       error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	return f.err
}

func (f *fakeRunner) Available(string) bool { return f.installed }

func testLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogCommandAppendsRecord(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "bash_commands.json")
	in := strings.NewReader(`{"tool_name": "Bash", "tool_input": {"command": "ls -la", "description": "list files"}}`)

	if err := logCommand(in, logPath, testLogger(io.Discard), time.Now()); err != nil {
		t.Fatalf("log-command: %v", err)
	}

	records, err := eventlog.Load(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	last := records[0]
	if last.ToolName != "Bash" || last.Command != "ls -la" || last.Description != "list files" || last.Timestamp == "" {
		t.Errorf("unexpected record: %+v", last)
	}
}

func TestLogCommandMalformedInput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log.json")

	err := logCommand(strings.NewReader("{not json"), logPath, testLogger(io.Discard), time.Now())
	if !errors.Is(err, hook.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Error("log should not be created on malformed input")
	}
}

func TestLogCommandCorruptLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log.json")
	os.WriteFile(logPath, []byte("[{"), 0600)

	err := logCommand(strings.NewReader(`{"tool_name":"Bash"}`), logPath, testLogger(io.Discard), time.Now())
	if !errors.Is(err, eventlog.ErrCorruptLog) {
		t.Fatalf("expected ErrCorruptLog, got %v", err)
	}
}

func TestNotifyHookSwallowsNotifierFailure(t *testing.T) {
	runner := &fakeRunner{installed: true, err: errors.New("no notification daemon")}
	d := notify.NewDispatcher(notify.Config{Backend: notify.BackendNotifySend}, runner)
	var logs bytes.Buffer

	err := notifyHook(context.Background(), strings.NewReader(`{"tool_name":"Bash"}`), d, testLogger(&logs))
	if err != nil {
		t.Fatalf("notifier failure must not fail the hook: %v", err)
	}
	if !strings.Contains(logs.String(), "notification failed") {
		t.Errorf("expected warning in logs, got %q", logs.String())
	}
}

func TestNotifyHookUnknownToolUsesDefault(t *testing.T) {
	runner := &fakeRunner{installed: true}
	d := notify.NewDispatcher(notify.Config{Backend: notify.BackendNotifySend}, runner)

	if err := notifyHook(context.Background(), strings.NewReader(`{"tool_name":"Unheard"}`), d, testLogger(io.Discard)); err != nil {
		t.Fatal(err)
	}
	if len(runner.calls) != 1 || !strings.Contains(runner.calls[0], notify.DefaultMessage.Title) {
		t.Errorf("calls: %v", runner.calls)
	}
}

func TestNotifyHookMalformedInput(t *testing.T) {
	d := notify.NewDispatcher(notify.Config{Backend: notify.BackendNone}, &fakeRunner{})
	err := notifyHook(context.Background(), strings.NewReader(""), d, testLogger(io.Discard))
	if !errors.Is(err, hook.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestPlaySoundMissingFileFails(t *testing.T) {
	home := t.TempDir()
	runner := &fakeRunner{installed: true}
	player := sound.NewPlayer([]string{"paplay"}, runner)

	err := playSound(context.Background(), strings.NewReader(`{"hook_event_name":"Stop"}`), sound.DefaultConfig(), home, player, testLogger(io.Discard))
	if !errors.Is(err, sound.ErrMissingSound) {
		t.Fatalf("expected ErrMissingSound, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("player should not run: %v", runner.calls)
	}
}

func TestPlaySoundPlaysResolvedFile(t *testing.T) {
	home := t.TempDir()
	file := filepath.Join(home, "sounds", "complete.wav")
	os.MkdirAll(filepath.Dir(file), 0755)
	os.WriteFile(file, []byte("RIFF"), 0644)

	runner := &fakeRunner{installed: true}
	player := sound.NewPlayer([]string{"paplay"}, runner)

	if err := playSound(context.Background(), strings.NewReader(`{"hook_event_name":"Stop"}`), sound.DefaultConfig(), home, player, testLogger(io.Discard)); err != nil {
		t.Fatal(err)
	}
	if len(runner.calls) != 1 || runner.calls[0] != "paplay "+file {
		t.Errorf("calls: %v", runner.calls)
	}
}

func TestPlaySoundSwallowsPlayerFailure(t *testing.T) {
	home := t.TempDir()
	file := filepath.Join(home, "sounds", "complete.wav")
	os.MkdirAll(filepath.Dir(file), 0755)
	os.WriteFile(file, []byte("RIFF"), 0644)

	player := sound.NewPlayer([]string{"paplay"}, &fakeRunner{installed: true, err: errors.New("no sink")})
	var logs bytes.Buffer

	if err := playSound(context.Background(), strings.NewReader(`{}`), sound.DefaultConfig(), home, player, testLogger(&logs)); err != nil {
		t.Fatalf("player failure must not fail the hook: %v", err)
	}
	if !strings.Contains(logs.String(), "sound playback failed") {
		t.Errorf("expected warning, got %q", logs.String())
	}
}
