// Package ignore holds the single ignore configuration shared by the tree
// scanner and the import rewriter, so both stages agree on which subtrees
// exist.
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
)

// Default lists the entry names that are never visited.
var Default = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"coverage",
	".nyc_output",
}

// Matcher decides whether an entry is skipped. Hidden entries, the Default
// names and any user supplied patterns are skipped.
type Matcher struct {
	names    map[string]bool
	patterns *patternmatcher.PatternMatcher
}

// NewMatcher builds a Matcher from the defaults plus extra patterns. Extra
// patterns use .dockerignore syntax and are matched against root-relative
// slash paths.
func NewMatcher(extra []string) (*Matcher, error) {
	m := &Matcher{names: make(map[string]bool, len(Default))}
	for _, name := range Default {
		m.names[name] = true
	}

	var cleaned []string
	for _, p := range extra {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) > 0 {
		pm, err := patternmatcher.New(cleaned)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern: %w", err)
		}
		m.patterns = pm
	}
	return m, nil
}

// MustDefault returns a Matcher with only the built-in rules.
func MustDefault() *Matcher {
	m, _ := NewMatcher(nil)
	return m
}

// Skip reports whether the entry at relPath (slash separated, relative to
// its scan root) should be skipped along with everything below it.
func (m *Matcher) Skip(relPath string) bool {
	name := relPath
	if idx := strings.LastIndexByte(relPath, '/'); idx >= 0 {
		name = relPath[idx+1:]
	}
	if strings.HasPrefix(name, ".") || m.names[name] {
		return true
	}
	if m.patterns == nil {
		return false
	}
	matched, err := m.patterns.MatchesOrParentMatches(filepath.FromSlash(relPath))
	return err == nil && matched
}
