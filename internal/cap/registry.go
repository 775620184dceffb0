package cap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/marcelocantos/cotsh/internal/shellerr"
	"github.com/marcelocantos/cotsh/internal/token"
)

// Command is one classified command line.
type Command struct {
	Kind Kind
	Name string
	// Path is the resolved executable for KindExternal.
	Path string
	Args []token.Token
	Raw  string
}

// Registry maps builtin names to implementations, resolves external
// programs on the search path, and controls tier access.
type Registry struct {
	mu         sync.RWMutex
	caps       map[string]Capability
	tiers      map[Tier]bool
	searchPath []string
}

// NewRegistry creates a registry with every tier enabled and the search
// path taken from $PATH.
func NewRegistry() *Registry {
	r := &Registry{
		caps: make(map[string]Capability),
		tiers: map[Tier]bool{
			TierRead:  true,
			TierWrite: true,
			TierExec:  true,
		},
	}
	r.SetSearchPath(filepath.SplitList(os.Getenv("PATH")))
	return r
}

// Register adds a capability to the registry. Its name must appear in the
// builtin table.
func (r *Registry) Register(c Capability) {
	if _, ok := LookupBuiltin(c.Name()); !ok {
		panic(fmt.Sprintf("cap: %q is not in the builtin table", c.Name()))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caps[c.Name()] = c
}

// Lookup returns a capability by name.
func (r *Registry) Lookup(name string) (Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.caps[name]
	if !ok {
		return nil, shellerr.Errorf(shellerr.ErrCommandNotFound, "%s: command not found", name)
	}
	return c, nil
}

// All returns all registered capabilities sorted by name.
func (r *Registry) All() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	caps := make([]Capability, 0, len(r.caps))
	for _, c := range r.caps {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool {
		return caps[i].Name() < caps[j].Name()
	})
	return caps
}

// CheckTier returns an error if the given tier is not enabled.
func (r *Registry) CheckTier(t Tier) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.tiers[t] {
		return fmt.Errorf("tier %q is disabled", t)
	}
	return nil
}

// SetTier enables or disables a tier.
func (r *Registry) SetTier(t Tier, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tiers[t] = enabled
}

// SetSearchPath replaces the directories searched for external programs.
// Empty entries are dropped.
func (r *Registry) SetSearchPath(dirs []string) {
	clean := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d != "" {
			clean = append(clean, d)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchPath = clean
}

// SearchPath returns the directories searched for external programs.
func (r *Registry) SearchPath() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.searchPath...)
}

// LookPath returns the first regular file named exactly name in the search
// path. Names containing a slash never match.
func (r *Registry) LookPath(name string) (string, bool) {
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	for _, dir := range r.SearchPath() {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// Classify turns a tokenized line into a Command. The builtin table is
// consulted before the search path.
func (r *Registry) Classify(toks []token.Token, raw string) Command {
	if len(toks) == 0 {
		return Command{Kind: KindEmpty, Raw: raw}
	}
	cmd := Command{Name: toks[0].Value(), Args: toks[1:], Raw: raw}
	if e, ok := LookupBuiltin(cmd.Name); ok {
		cmd.Kind = e.Kind
		return cmd
	}
	if p, ok := r.LookPath(cmd.Name); ok {
		cmd.Kind = KindExternal
		cmd.Path = p
		return cmd
	}
	cmd.Kind = KindInvalid
	return cmd
}

// NotFoundError reports a command that is neither a builtin nor on the
// search path.
type NotFoundError struct {
	Name string
	// Suggestion is the closest builtin name, if any is near enough.
	Suggestion string
}

func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("command not found (did you mean %q?)", e.Suggestion)
	}
	return "command not found"
}

func (e *NotFoundError) Unwrap() error { return shellerr.ErrCommandNotFound }

// NotFound builds the error for an unknown command name.
func NotFound(name string) error {
	return &NotFoundError{Name: name, Suggestion: Suggest(name)}
}

// maxSuggestDistance bounds the edit distance of a suggestion.
const maxSuggestDistance = 2

// Suggest returns the builtin name closest to name, or "" if none is within
// edit distance 2.
func Suggest(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, e := range builtins {
		d := fuzzy.LevenshteinDistance(name, e.Name)
		if d < bestDist {
			best, bestDist = e.Name, d
		}
	}
	return best
}

// IsExit reports whether err asks the shell to terminate, returning the
// requested code.
func IsExit(err error) (int, bool) {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code, true
	}
	return 0, false
}
