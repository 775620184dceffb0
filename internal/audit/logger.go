package audit

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const genesisInput = "cotsh-history-genesis"

// Logger appends entries to a hash-chained JSONL file.
type Logger struct {
	mu       sync.Mutex
	path     string
	session  string
	seq      uint64
	prevHash string
	now      func() time.Time
}

// NewLogger opens or creates the log at path and resumes its chain from
// the last entry. Each Logger gets a fresh session id.
func NewLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	l := &Logger{
		path:     path,
		session:  uuid.NewString(),
		prevHash: genesisHash(),
		now:      time.Now,
	}

	entries, err := readEntries(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if n := len(entries); n > 0 {
		l.seq = entries[n-1].Seq
		l.prevHash = entries[n-1].Hash
	}
	return l, nil
}

// Log appends one record.
func (l *Logger) Log(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		Seq:      l.seq + 1,
		Time:     l.now().UTC(),
		PrevHash: l.prevHash,
		Session:  l.session,
		Line:     r.Line,
		Kind:     r.Kind,
		Tier:     r.Tier,
		Status:   r.Status,
		Duration: float64(r.Duration.Microseconds()) / 1000.0,
		Cwd:      r.Cwd,
	}
	if r.Err != nil {
		entry.Error = r.Err.Error()
	}
	entry.Hash = computeHash(entry)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write history entry: %w", err)
	}

	l.seq = entry.Seq
	l.prevHash = entry.Hash
	return nil
}

// Path returns the log file path.
func (l *Logger) Path() string { return l.path }

// Session returns the id stamped on this logger's entries.
func (l *Logger) Session() string { return l.session }

func genesisHash() string {
	h := sha256.Sum256([]byte(genesisInput))
	return fmt.Sprintf("%x", h)
}

func computeHash(e Entry) string {
	e.Hash = ""
	data, _ := json.Marshal(e)
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)
}

// rawLines returns the non-empty lines of the log file.
func rawLines(path string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines [][]byte
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if line := bytes.TrimSpace(sc.Bytes()); len(line) > 0 {
			lines = append(lines, append([]byte(nil), line...))
		}
	}
	return lines, sc.Err()
}

// readEntries decodes every well-formed entry in the log.
func readEntries(path string) ([]Entry, error) {
	lines, err := rawLines(path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		var e Entry
		if json.Unmarshal(line, &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
