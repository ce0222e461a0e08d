package pathutil

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizeForLookup returns an absolute, symlink-resolved path suitable as
// a map key. On case-insensitive platforms (macOS, Windows) it is also
// lowercased.
func NormalizeForLookup(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	canonicalPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// Path doesn't exist yet
		canonicalPath = absPath
	}

	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return strings.ToLower(canonicalPath), nil
	}
	return canonicalPath, nil
}

// DedupRoots returns roots as absolute paths with duplicates and nested
// roots dropped. A root is a duplicate when it resolves to an already seen
// directory and nested when it lies inside another root, in either order.
// The surviving roots keep their input order.
func DedupRoots(roots []string) ([]string, error) {
	keys := make([]string, 0, len(roots))
	abs := make([]string, 0, len(roots))
	seen := make(map[string]bool, len(roots))
	for _, root := range roots {
		key, err := NormalizeForLookup(root)
		if err != nil {
			return nil, err
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		a, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		abs = append(abs, a)
	}

	out := make([]string, 0, len(abs))
	for i, key := range keys {
		nested := false
		for j, other := range keys {
			if i != j && IsWithin(other, key) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, abs[i])
		}
	}
	return out, nil
}

// IsWithin reports whether child lies strictly inside parent. Both paths
// must already be cleaned and absolute.
func IsWithin(parent, child string) bool {
	if parent == child {
		return false
	}
	if !strings.HasSuffix(parent, string(filepath.Separator)) {
		parent += string(filepath.Separator)
	}
	return strings.HasPrefix(child, parent)
}
