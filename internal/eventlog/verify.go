package eventlog

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrLogValid is returned by Quarantine when the log parses cleanly.
var ErrLogValid = errors.New("event log is valid; refusing to quarantine")

// VerifyResult holds the outcome of a log check.
type VerifyResult struct {
	Valid   bool   `json:"valid"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

// Verify checks that the log at path is a JSON array of objects.
// A missing file is reported as invalid.
func Verify(path string) VerifyResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return VerifyResult{Error: fmt.Sprintf("open: %v", err)}
	}
	entries, err := parseRaw(data)
	if err != nil {
		return VerifyResult{Error: err.Error()}
	}
	return VerifyResult{Valid: true, Records: len(entries)}
}

// Quarantine moves a corrupt log to "<path>.corrupt-<unix seconds>" so the
// next Append starts a fresh log. A symlinked path has its target moved. It
// returns the new file name.
func Quarantine(path string, at time.Time) (string, error) {
	path, err := resolveTarget(path)
	if err != nil {
		return "", err
	}
	unlock, err := lockFile(path + ".lock")
	if err != nil {
		return "", fmt.Errorf("eventlog: lock: %w", err)
	}
	defer unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("eventlog: read: %w", err)
	}
	if _, err := parseRaw(data); err == nil {
		return "", ErrLogValid
	}

	dst := fmt.Sprintf("%s.corrupt-%d", path, at.Unix())
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("eventlog: quarantine: %w", err)
	}
	return dst, nil
}
