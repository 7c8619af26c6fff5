// Package sysexec runs the OS utilities the hooks hand off to
// (notification daemons, audio players).
package sysexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single utility invocation.
const DefaultTimeout = 5 * time.Second

// ErrNotFound is returned when the utility is not on PATH.
var ErrNotFound = errors.New("utility not found")

// Runner runs an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	Available(name string) bool
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct {
	Timeout time.Duration
}

// NewExecRunner returns an ExecRunner. A zero timeout uses DefaultTimeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{Timeout: timeout}
}

// Available reports whether name resolves on PATH.
func (r *ExecRunner) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Run executes name with args. Stdout is discarded; stderr is folded into
// the returned error when the command fails.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	if !r.Available(name) {
		return fmt.Errorf("sysexec: %s: %w", name, ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("sysexec: %s: timed out after %s", name, r.Timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("sysexec: %s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("sysexec: %s: %w", name, err)
	}
	return nil
}
