package eventlog

import "time"

// TimestampFormat is the layout used for EventRecord.Timestamp (UTC, microseconds).
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// EventRecord is one entry in the JSON event log.
// SessionID is a pointer so an absent upstream session is stored as null.
type EventRecord struct {
	Timestamp   string  `json:"timestamp"`
	SessionID   *string `json:"session_id"`
	ToolName    string  `json:"tool_name"`
	Command     string  `json:"command"`
	Description string  `json:"description"`
}

// Stamp returns the timestamp string for t.
func Stamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
