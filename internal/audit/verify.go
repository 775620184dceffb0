package audit

import (
	"encoding/json"
	"fmt"
)

func short(h string) string {
	if len(h) > 12 {
		return h[:12] + "..."
	}
	return h
}

// Verify checks the sequence numbers and hash chain of the log at path. It
// returns nil for a valid (or empty) log, or an error naming the first bad
// line.
func Verify(path string) error {
	lines, err := rawLines(path)
	if err != nil {
		return fmt.Errorf("read history log: %w", err)
	}

	prev := genesisHash()
	var seq uint64
	for i, line := range lines {
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return fmt.Errorf("line %d: invalid JSON: %w", i+1, err)
		}
		if e.Seq != seq+1 {
			return fmt.Errorf("line %d: sequence gap: expected %d, got %d", i+1, seq+1, e.Seq)
		}
		if e.PrevHash != prev {
			return fmt.Errorf("line %d: broken chain: prev_hash %s, want %s", i+1, short(e.PrevHash), short(prev))
		}
		if want := computeHash(e); e.Hash != want {
			return fmt.Errorf("line %d: entry modified: hash %s, want %s", i+1, short(e.Hash), short(want))
		}
		prev, seq = e.Hash, e.Seq
	}
	return nil
}

// Tail returns the last n entries of the log at path.
func Tail(path string, n int) ([]Entry, error) {
	entries, err := readEntries(path)
	if err != nil {
		return nil, fmt.Errorf("read history log: %w", err)
	}
	if n >= 0 && n < len(entries) {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
