// Package eventlog maintains the hook event log: a single JSON array of
// EventRecord objects on disk. Records are only ever appended.
//
// Every append is a read-modify-write of the whole file. Appenders
// serialize on an advisory lock held on a sidecar "<log>.lock" file, and
// the new array replaces the old one by atomic rename, so readers never
// observe a truncated log. The rename keeps the log's permission bits, and a
// symlinked log path is followed so the link itself survives; a new log is
// created with mode 0600.
package eventlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrCorruptLog is returned when an existing log is not a JSON array of objects.
// The file is left untouched.
var ErrCorruptLog = errors.New("event log is not a valid JSON array of objects")

// now is replaced in tests.
var now = time.Now

// Append adds rec to the end of the log at path, creating the file (and its
// directory) if it does not exist. A zero Timestamp is set to the current time.
func Append(path string, rec EventRecord) error {
	target, err := resolveTarget(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0700); err != nil {
		return fmt.Errorf("eventlog: create directory: %w", err)
	}

	unlock, err := lockFile(target + ".lock")
	if err != nil {
		return fmt.Errorf("eventlog: lock: %w", err)
	}
	defer unlock()

	entries, err := readRaw(target)
	if err != nil {
		return err
	}

	if rec.Timestamp == "" {
		rec.Timestamp = Stamp(now())
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("eventlog: marshal record: %w", err)
	}
	entries = append(entries, line)

	return writeAtomic(target, entries)
}

// resolveTarget follows a symlinked log path so the rename replaces the
// linked file and leaves the link in place.
func resolveTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Dangling link: write through to where it points.
			dst, rerr := os.Readlink(path)
			if rerr != nil {
				return "", fmt.Errorf("eventlog: readlink: %w", rerr)
			}
			if !filepath.IsAbs(dst) {
				dst = filepath.Join(filepath.Dir(path), dst)
			}
			return dst, nil
		}
		return "", fmt.Errorf("eventlog: resolve symlink: %w", err)
	}
	return target, nil
}

// Load returns every record in the log. A missing file yields an empty slice.
func Load(path string) ([]EventRecord, error) {
	entries, err := readRaw(path)
	if err != nil {
		return nil, err
	}
	records := make([]EventRecord, 0, len(entries))
	for i, raw := range entries {
		var rec EventRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("eventlog: entry %d: %w: %v", i, ErrCorruptLog, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// readRaw parses the log into raw JSON objects so prior entries are carried
// forward exactly, including fields EventRecord does not know about.
func readRaw(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("eventlog: read: %w", err)
	}
	return parseRaw(data)
}

func parseRaw(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] != '[' {
		return nil, fmt.Errorf("eventlog: %w: top-level value is not an array", ErrCorruptLog)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("eventlog: %w: %v", ErrCorruptLog, err)
	}
	for i, raw := range entries {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, fmt.Errorf("eventlog: %w: entry %d is not an object", ErrCorruptLog, i)
		}
	}
	return entries, nil
}

// defaultMode is the permission of a newly created log.
const defaultMode os.FileMode = 0600

// writeAtomic writes entries to a temp file next to path and renames it over
// path. An existing log keeps its permission bits.
func writeAtomic(path string, entries []json.RawMessage) error {
	mode := defaultMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if entries == nil {
		entries = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("eventlog: marshal log: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("eventlog: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("eventlog: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("eventlog: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("eventlog: close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return fmt.Errorf("eventlog: chmod: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("eventlog: rename: %w", err)
	}
	return nil
}
