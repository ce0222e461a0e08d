package git

import (
	"fmt"
	"path/filepath"
	"sort"
)

// TreeState is the tagged outcome of checking directories before renaming
type TreeState int

const (
	// NotVersionControlled means none of the directories is inside a git
	// work tree (or git is not installed).
	NotVersionControlled TreeState = iota
	// Clean means no tracked file below the directories has local changes.
	Clean
	// Dirty means at least one tracked file below the directories has
	// uncommitted modifications, renames or conflicts.
	Dirty
)

func (s TreeState) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	default:
		return "not-version-controlled"
	}
}

// TreeStatus is the result of CheckTrees
type TreeStatus struct {
	State TreeState `json:"state"`

	// DirtyFiles holds absolute paths of tracked files with local changes
	DirtyFiles []string `json:"dirty_files,omitempty"`

	// CheckedDirectories lists the directories that were inspected
	CheckedDirectories []string `json:"checked_directories"`

	// Repositories lists the repository roots enclosing the directories
	Repositories []string `json:"repositories,omitempty"`

	// DirtyRepositories lists the repository roots holding DirtyFiles
	DirtyRepositories []string `json:"dirty_repositories,omitempty"`

	// Unversioned lists the directories that are not inside any repository
	Unversioned []string `json:"unversioned,omitempty"`
}

// FullyVersioned reports whether every checked directory is inside a git
// work tree.
func (s *TreeStatus) FullyVersioned() bool {
	return s.State != NotVersionControlled && len(s.Unversioned) == 0
}

// CheckTrees inspects each directory for uncommitted changes to tracked
// files. Untracked files do not make a tree dirty.
func CheckTrees(dirs []string) (*TreeStatus, error) {
	status := &TreeStatus{State: NotVersionControlled}
	status.CheckedDirectories = append(status.CheckedDirectories, dirs...)

	if !Available() {
		status.Unversioned = append(status.Unversioned, dirs...)
		return status, nil
	}

	repos := make(map[string]bool)
	dirtyRepos := make(map[string]bool)
	dirtyFiles := make(map[string]bool)

	for _, dir := range dirs {
		if !IsGitRepo(dir) {
			status.Unversioned = append(status.Unversioned, dir)
			continue
		}

		root, err := GetGitRoot(dir)
		if err != nil {
			return nil, err
		}
		repos[root] = true

		pathspec, err := pathspecFor(root, dir)
		if err != nil {
			return nil, err
		}

		info, err := GetStatus(root, pathspec)
		if err != nil {
			return nil, err
		}
		for _, entry := range info.TrackedChanges() {
			dirtyFiles[filepath.Join(root, filepath.FromSlash(entry.Path))] = true
			dirtyRepos[root] = true
		}
	}

	status.Repositories = sortedKeys(repos)
	status.DirtyRepositories = sortedKeys(dirtyRepos)
	status.DirtyFiles = sortedKeys(dirtyFiles)

	switch {
	case len(status.DirtyFiles) > 0:
		status.State = Dirty
	case len(status.Repositories) > 0:
		status.State = Clean
	}
	return status, nil
}

// pathspecFor returns dir relative to the repository root. Both are
// resolved through symlinks first since git reports the real root.
func pathspecFor(root, dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(absDir); err == nil {
		absDir = resolved
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, absDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s against repository %s: %w", dir, root, err)
	}
	return filepath.ToSlash(rel), nil
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
