// Package cwd holds the shell's current working directory. The directory is
// a single shared cell: readers and writers go through Do, which serialises
// access for the duration of one command.
package cwd

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/marcelocantos/cotsh/internal/shellerr"
)

// Dir is the shared working-directory cell.
type Dir struct {
	mu   sync.Mutex
	path string
}

// New returns a Dir starting at path, which must be an existing absolute
// directory.
func New(path string) (*Dir, error) {
	if err := check(path); err != nil {
		return nil, err
	}
	return &Dir{path: filepath.Clean(path)}, nil
}

// Path returns a snapshot of the current directory.
func (d *Dir) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// Do runs fn with exclusive access to the directory. The lock is released
// when fn returns, whatever its outcome.
func (d *Dir) Do(fn func(tx *Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(&Tx{d: d})
}

// Tx is the view of the directory handed to a Do callback. It must not be
// retained after the callback returns.
type Tx struct {
	d *Dir
}

// Path returns the current directory.
func (tx *Tx) Path() string { return tx.d.path }

// Set replaces the current directory. The new path must be absolute and name
// an existing directory; on failure the old value is kept.
func (tx *Tx) Set(path string) error {
	if err := check(path); err != nil {
		return err
	}
	tx.d.path = filepath.Clean(path)
	return nil
}

func check(path string) error {
	if !filepath.IsAbs(path) {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "%s: not an absolute path", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return shellerr.Errorf(shellerr.ErrPathNotFound, "no such file or directory: %s", path)
	}
	if !info.IsDir() {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "not a directory: %s", path)
	}
	return nil
}
