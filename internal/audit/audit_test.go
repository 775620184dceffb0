package audit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func logN(t *testing.T, l *Logger, lines ...string) {
	t.Helper()
	for i, line := range lines {
		err := l.Log(Record{
			Line:     line,
			Kind:     "echo",
			Tier:     "read",
			Duration: time.Duration(i) * time.Millisecond,
			Cwd:      "/tmp",
		})
		if err != nil {
			t.Fatalf("log entry %d: %v", i, err)
		}
	}
}

func TestLogAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	logger, err := NewLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	logN(t, logger, "echo a", "echo b", "echo c", "echo d", "echo e")

	if err := Verify(path); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestLogRecordsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	logger, err := NewLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := logger.Log(Record{Line: "cd nope", Kind: "cd", Status: 1, Err: errors.New("no such file or directory: nope")}); err != nil {
		t.Fatal(err)
	}
	entries, err := Tail(path, 1)
	if err != nil {
		t.Fatal(err)
	}
	e := entries[0]
	if e.Error != "no such file or directory: nope" || e.Status != 1 || e.Kind != "cd" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Session != logger.Session() || e.Session == "" {
		t.Errorf("session = %q, want %q", e.Session, logger.Session())
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	logger, err := NewLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	logN(t, logger, "pwd", "pwd", "pwd")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	mid := len(data) / 2
	if data[mid] == 'a' {
		data[mid] = 'b'
	} else {
		data[mid] = 'a'
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	if err := Verify(path); err == nil {
		t.Fatal("expected verify to detect tampering")
	}
}

func TestVerifyDetectsSequenceGap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	logger, err := NewLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	logN(t, logger, "a", "b", "c", "d", "e")

	lines, err := rawLines(path)
	if err != nil {
		t.Fatal(err)
	}
	var out []byte
	for i, line := range lines {
		if i == 2 {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	if err := os.WriteFile(path, out, 0600); err != nil {
		t.Fatal(err)
	}

	if err := Verify(path); err == nil {
		t.Fatal("expected verify to detect sequence gap")
	}
}

func TestVerifyEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if err := Verify(path); err != nil {
		t.Fatalf("empty log should be valid: %v", err)
	}
}

func TestLoggerResumesChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")

	first, err := NewLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	logN(t, first, "one", "two")

	second, err := NewLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	if second.Session() == first.Session() {
		t.Error("a restarted logger should start a new session")
	}
	logN(t, second, "three")

	if err := Verify(path); err != nil {
		t.Fatalf("chain should be valid after restart: %v", err)
	}

	entries, err := Tail(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[2].Seq != 3 || entries[2].Line != "three" {
		t.Errorf("unexpected last entry: %+v", entries[2])
	}

	last, err := Tail(path, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 1 || last[0].Line != "three" {
		t.Errorf("Tail(1) = %+v", last)
	}
}
