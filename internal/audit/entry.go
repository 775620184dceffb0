// Package audit keeps an append-only, hash-chained history of every line
// the shell dispatches.
package audit

import "time"

// Entry is one history record. Hash covers every other field, so editing,
// dropping or reordering lines breaks the chain.
type Entry struct {
	Seq      uint64    `json:"seq"`
	Time     time.Time `json:"ts"`
	PrevHash string    `json:"prev_hash"`
	Session  string    `json:"session"`         // one id per shell process
	Line     string    `json:"line"`            // the dispatched (sub-)line
	Kind     string    `json:"kind"`            // classification, e.g. "cd" or "external"
	Tier     string    `json:"tier,omitempty"`  // tier the line required
	Status   int       `json:"status"`          // 0 = success
	Error    string    `json:"error,omitempty"` // error message if failed
	Duration float64   `json:"duration_ms"`     // execution time in milliseconds
	Cwd      string    `json:"cwd"`             // working directory before the line ran
	Hash     string    `json:"hash"`            // SHA-256 of this entry with Hash empty
}

// Record is what a caller supplies for one dispatched line.
type Record struct {
	Line     string
	Kind     string
	Tier     string
	Status   int
	Err      error
	Duration time.Duration
	Cwd      string
}
