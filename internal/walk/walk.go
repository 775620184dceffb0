// Package walk resolves path arguments against a directory one segment at a
// time. Resolution is all or nothing: a failed walk reports the directory it
// started from, never a partially advanced one.
package walk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/marcelocantos/cotsh/internal/shellerr"
)

// Root is the filesystem root.
const Root = "/"

// ReadDirFunc lists the entry names of a directory.
type ReadDirFunc func(dir string) ([]string, error)

// Error is returned when a walk fails. Dir is the directory the walk started
// from and is what callers keep.
type Error struct {
	Arg string
	Dir string
	Err error
}

func (e *Error) Error() string {
	if errors.Is(e.Err, shellerr.ErrIO) {
		return fmt.Sprintf("cannot read directory: %s", e.Arg)
	}
	return fmt.Sprintf("no such file or directory: %s", e.Arg)
}

func (e *Error) Unwrap() error { return e.Err }

// Resolver walks path arguments. The zero value is not usable; call New.
type Resolver struct {
	readDir ReadDirFunc
	log     *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithReadDir replaces the directory reader.
func WithReadDir(fn ReadDirFunc) Option {
	return func(r *Resolver) { r.readDir = fn }
}

// WithLogger sets the logger used for per-segment debug output.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// New returns a Resolver that lists directories with os.ReadDir.
func New(opts ...Option) *Resolver {
	r := &Resolver{readDir: osReadDir, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

func osReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// Resolve walks the single path argument in args from dir. No argument
// leaves dir unchanged; more than one is an invalid-argument error.
func (r *Resolver) Resolve(dir string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return dir, nil
	case 1:
		return r.Walk(dir, args[0])
	default:
		return dir, shellerr.Errorf(shellerr.ErrInvalidArgument, "too many arguments")
	}
}

// Walk resolves arg against dir.
//
// "/" resolves to the root and "" to dir itself. Otherwise arg is split on
// "/" and the segments applied left to right to a working copy: "~" resets
// to the root, ".." moves up (a no-op at the root), "." does nothing, an
// empty segment ends the walk, and any other segment must be an entry of
// the working copy. On failure the original dir is returned with an *Error.
func (r *Resolver) Walk(dir, arg string) (string, error) {
	if arg == Root {
		return Root, nil
	}
	if arg == "" {
		return dir, nil
	}

	cur := dir
	for i, seg := range strings.Split(arg, "/") {
		switch seg {
		case "":
			r.log.Debug("walk: empty segment ends walk", zap.Int("index", i), zap.String("dir", cur))
			return cur, nil
		case "~":
			cur = Root
		case "..":
			cur = parent(cur)
		case ".":
		default:
			ok, err := r.Contains(cur, seg)
			if err == nil && !ok {
				err = shellerr.Errorf(shellerr.ErrPathNotFound, "no such file or directory: %s", filepath.Join(cur, seg))
			}
			if err != nil {
				r.log.Debug("walk: segment failed",
					zap.String("arg", arg), zap.String("segment", seg), zap.Error(err))
				return dir, &Error{Arg: arg, Dir: dir, Err: err}
			}
			cur = filepath.Join(cur, seg)
		}
		r.log.Debug("walk: step", zap.String("segment", seg), zap.String("dir", cur))
	}
	return cur, nil
}

// Split resolves every segment of arg but the last against dir. It returns
// the directory reached and the final segment, which may be empty when arg
// ends in a slash.
func (r *Resolver) Split(dir, arg string) (string, string, error) {
	i := strings.LastIndex(arg, "/")
	if i < 0 {
		return dir, arg, nil
	}
	parent, err := r.Walk(dir, arg[:i])
	if err != nil {
		return dir, "", err
	}
	return parent, arg[i+1:], nil
}

// Contains reports whether dir has an entry named exactly name.
func (r *Resolver) Contains(dir, name string) (bool, error) {
	names, err := r.readDir(dir)
	if err != nil {
		return false, shellerr.Errorf(shellerr.ErrIO, "cannot open directory %s: %v", dir, err)
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func parent(dir string) string {
	if dir == Root {
		return Root
	}
	return filepath.Dir(dir)
}
