// Package hook decodes the JSON payload an automation host writes to a
// hook's standard input.
package hook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ppiankov/agenthooks/internal/eventlog"
)

// maxPayloadBytes caps stdin reads. Tool inputs can carry whole file
// contents, so the cap is generous. Replaced in tests.
var maxPayloadBytes int64 = 64 << 20

var (
	// ErrMalformedPayload is returned when stdin is not a JSON object.
	ErrMalformedPayload = errors.New("malformed hook payload")
	// ErrPayloadTooLarge is returned when stdin exceeds maxPayloadBytes.
	ErrPayloadTooLarge = errors.New("hook payload too large")
)

// ToolInput carries the tool arguments relevant to the hooks.
type ToolInput struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// Payload is the hook input. Only the fields the hooks use are decoded.
type Payload struct {
	SessionID     *string    `json:"session_id"`
	HookEventName string     `json:"hook_event_name"`
	ToolName      string     `json:"tool_name"`
	ToolInput     *ToolInput `json:"tool_input"`
	Message       string     `json:"message"`
}

// ReadPayload decodes one JSON object from r.
func ReadPayload(r io.Reader) (*Payload, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("hook: read stdin: %w", err)
	}
	if int64(len(data)) > maxPayloadBytes {
		return nil, fmt.Errorf("hook: %w: exceeds %d bytes", ErrPayloadTooLarge, maxPayloadBytes)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("hook: %w: expected a JSON object", ErrMalformedPayload)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("hook: %w: %v", ErrMalformedPayload, err)
	}
	return &p, nil
}

// Record builds the event log entry for this payload, stamped at t.
func (p *Payload) Record(t time.Time) eventlog.EventRecord {
	rec := eventlog.EventRecord{
		Timestamp: eventlog.Stamp(t),
		SessionID: p.SessionID,
		ToolName:  p.ToolName,
	}
	if p.ToolInput != nil {
		rec.Command = p.ToolInput.Command
		rec.Description = p.ToolInput.Description
	}
	return rec
}
