// Package include provides path resolution and "already included"
// bookkeeping for the finclude primitive (spec.md §2 row 8, §9 Design
// Notes); finclude itself, in internal/interp, reads, parses and runs
// the included file's terms at run time. It is grounded
// on the teacher's internal/units.UnitRegistry -- a search-path list plus
// a path-keyed cache that detects revisiting the same unit -- repurposed
// here from Pascal unit loading to flat Joy source inlining. Unlike the
// teacher's registry, which treats a repeat visit as a circular-dependency
// error, Joy's own reference implementation silently skips a second
// include of an already-seen path (spec.md §9), so Includer does the same.
package include

import (
	"os"
	"path/filepath"
)

// Includer resolves include paths against a search-path list and
// remembers which paths have already been loaded, so that a program
// that includes the same file twice (directly or via a cycle) only
// pays for the read once and never recurses infinitely.
type Includer struct {
	SearchPaths []string
	seen        map[string]bool
}

// New creates an Includer that resolves include paths as given first,
// then against searchPaths, in order.
func New(searchPaths []string) *Includer {
	return &Includer{SearchPaths: searchPaths, seen: make(map[string]bool)}
}

// Resolve finds the file backing name, trying it as given and then
// joined to each search path in turn.
func (inc *Includer) Resolve(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	for _, dir := range inc.SearchPaths {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", os.ErrNotExist
}

// Seen reports whether path has already been loaded by this Includer,
// recording it as seen on the first call. A caller uses this to decide
// whether to skip re-reading and re-parsing a previously included file.
func (inc *Includer) Seen(path string) bool {
	clean := filepath.Clean(path)
	if inc.seen[clean] {
		return true
	}
	inc.seen[clean] = true
	return false
}

// Reset forgets every path seen so far, for reuse across separate runs.
func (inc *Includer) Reset() {
	inc.seen = make(map[string]bool)
}
