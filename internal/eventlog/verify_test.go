package eventlog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestVerifyCountsRecords(t *testing.T) {
	path := newTestPath(t)
	for i := 0; i < 3; i++ {
		if err := Append(path, EventRecord{ToolName: "Bash"}); err != nil {
			t.Fatal(err)
		}
	}

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("expected valid log, got: %s", result.Error)
	}
	if result.Records != 3 {
		t.Fatalf("expected 3 records, got %d", result.Records)
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	os.WriteFile(path, []byte(`[{"tool_name":"Bash"}, 42]`), 0600)

	result := Verify(path)
	if result.Valid {
		t.Fatal("expected corrupt log to be invalid")
	}
	if result.Error == "" {
		t.Fatal("expected error detail")
	}
}

func TestVerifyMissingFile(t *testing.T) {
	result := Verify(filepath.Join(t.TempDir(), "missing.json"))
	if result.Valid {
		t.Fatal("expected missing log to be invalid")
	}
}

func TestQuarantineRefusesValidLog(t *testing.T) {
	path := newTestPath(t)
	if err := Append(path, EventRecord{ToolName: "Bash"}); err != nil {
		t.Fatal(err)
	}

	_, err := Quarantine(path, time.Now())
	if !errors.Is(err, ErrLogValid) {
		t.Fatalf("expected ErrLogValid, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("valid log should stay in place: %v", err)
	}
}

func TestQuarantineMovesCorruptLogAside(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	os.WriteFile(path, []byte(`[{"tool_name":`), 0600)

	at := time.Unix(1700000000, 0)
	dst, err := Quarantine(path, at)
	if err != nil {
		t.Fatalf("quarantine: %v", err)
	}
	if dst != path+".corrupt-1700000000" {
		t.Errorf("unexpected destination %q", dst)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[{"tool_name":` {
		t.Errorf("quarantined content changed: %q", data)
	}

	// The next append starts a fresh log.
	if err := Append(path, EventRecord{ToolName: "Bash"}); err != nil {
		t.Fatal(err)
	}
	if result := Verify(path); !result.Valid || result.Records != 1 {
		t.Fatalf("expected fresh log with 1 record, got %+v", result)
	}
}
