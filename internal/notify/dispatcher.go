// Package notify turns hook payloads into desktop notifications.
package notify

import (
	"context"
	"runtime"

	"github.com/ppiankov/agenthooks/internal/hook"
	"github.com/ppiankov/agenthooks/internal/sysexec"
)

// Dispatcher resolves a payload's category and shows the notification.
type Dispatcher struct {
	table   *Table
	backend string
	appName string
	runner  sysexec.Runner
}

// NewDispatcher creates a Dispatcher from cfg. "auto" picks osascript on
// darwin and notify-send elsewhere.
func NewDispatcher(cfg Config, runner sysexec.Runner) *Dispatcher {
	backend := cfg.Backend
	if backend == "" || backend == BackendAuto {
		backend = autoBackend(runtime.GOOS)
	}
	return &Dispatcher{
		table:   NewTable(cfg.Default, cfg.Categories),
		backend: backend,
		appName: cfg.AppName,
		runner:  runner,
	}
}

// Backend returns the resolved backend name.
func (d *Dispatcher) Backend() string {
	return d.backend
}

// Dispatch shows the notification for p. The resolved message is returned
// even when the notifier fails, so callers can log what was attempted.
func (d *Dispatcher) Dispatch(ctx context.Context, p *hook.Payload) (Message, error) {
	m := d.table.Resolve(p.ToolName, p.Message)
	if d.backend == BackendNone {
		return m, nil
	}

	name, args, err := Command(d.backend, d.appName, m)
	if err != nil {
		return m, err
	}
	return m, d.runner.Run(ctx, name, args...)
}

func autoBackend(goos string) string {
	if goos == "darwin" {
		return BackendOsascript
	}
	return BackendNotifySend
}
