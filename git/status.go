package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/grovetools/kebabify/command"
)

// EntryKind classifies a porcelain v2 status line
type EntryKind string

const (
	EntryChanged   EntryKind = "changed"
	EntryRenamed   EntryKind = "renamed"
	EntryUnmerged  EntryKind = "unmerged"
	EntryUntracked EntryKind = "untracked"
)

// StatusEntry is one path reported by git status. Paths are relative to
// the repository root.
type StatusEntry struct {
	Kind     EntryKind `json:"kind"`
	XY       string    `json:"xy,omitempty"`
	Path     string    `json:"path"`
	OrigPath string    `json:"orig_path,omitempty"`
}

// Tracked reports whether the entry concerns a file git already tracks
func (e StatusEntry) Tracked() bool {
	return e.Kind != EntryUntracked
}

// StatusInfo contains detailed git status information for a repository
type StatusInfo struct {
	// Branch is the current branch name
	Branch string `json:"branch"`

	// AheadCount is the number of commits ahead of the upstream branch
	AheadCount int `json:"ahead_count"`

	// BehindCount is the number of commits behind the upstream branch
	BehindCount int `json:"behind_count"`

	// ModifiedCount is the number of modified files
	ModifiedCount int `json:"modified_count"`

	// UntrackedCount is the number of untracked files
	UntrackedCount int `json:"untracked_count"`

	// StagedCount is the number of staged files
	StagedCount int `json:"staged_count"`

	// IsDirty indicates if there are any uncommitted changes
	IsDirty bool `json:"is_dirty"`

	// HasUpstream indicates if the branch has an upstream tracking branch
	HasUpstream bool `json:"has_upstream"`

	// Entries lists every reported path
	Entries []StatusEntry `json:"entries,omitempty"`
}

// TrackedChanges returns the entries for tracked files with local
// modifications, renames or conflicts.
func (s *StatusInfo) TrackedChanges() []StatusEntry {
	var out []StatusEntry
	for _, e := range s.Entries {
		if e.Tracked() {
			out = append(out, e)
		}
	}
	return out
}

// GetStatus returns git status information for the repository at path,
// limited to the given pathspecs when any are passed.
func GetStatus(path string, pathspecs ...string) (*StatusInfo, error) {
	cmdBuilder := command.NewSafeBuilder()

	args := []string{"status", "--porcelain=v2", "--branch", "-z"}
	if len(pathspecs) > 0 {
		args = append(args, "--")
		args = append(args, pathspecs...)
	}
	cmd, err := cmdBuilder.Build(context.Background(), "git", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build command: %w", err)
	}
	result, err := cmd.WithDir(path).Run()
	if err != nil {
		if strings.Contains(result.Stderr, "not a git repository") {
			return nil, fmt.Errorf("not a git repository: %s", path)
		}
		return nil, fmt.Errorf("failed to get git status: %w, output: %s", err, result.Stderr)
	}

	return parseStatus(result.Stdout), nil
}

// parseStatus parses NUL separated `git status --porcelain=v2 --branch -z`
// output.
func parseStatus(output string) *StatusInfo {
	status := &StatusInfo{}
	records := strings.Split(output, "\x00")

	for i := 0; i < len(records); i++ {
		line := records[i]
		if line == "" {
			continue
		}

		// Parse header lines (start with '#')
		if strings.HasPrefix(line, "# ") {
			parts := strings.Fields(line)
			if len(parts) < 3 {
				continue
			}
			switch parts[1] {
			case "branch.head":
				status.Branch = parts[2]
			case "branch.upstream":
				status.HasUpstream = true
			case "branch.ab":
				// format is +<ahead> -<behind>
				status.AheadCount, _ = strconv.Atoi(strings.TrimPrefix(parts[2], "+"))
				if len(parts) > 3 {
					status.BehindCount, _ = strconv.Atoi(strings.TrimPrefix(parts[3], "-"))
				}
			}
			continue
		}

		switch line[0] {
		case '?':
			status.UntrackedCount++
			status.Entries = append(status.Entries, StatusEntry{
				Kind: EntryUntracked,
				Path: strings.TrimPrefix(line, "? "),
			})

		case '1', '2':
			fieldCount := 9
			kind := EntryChanged
			if line[0] == '2' {
				fieldCount = 10
				kind = EntryRenamed
			}
			fields := strings.SplitN(line, " ", fieldCount)
			if len(fields) < fieldCount || len(fields[1]) < 2 {
				continue
			}
			entry := StatusEntry{Kind: kind, XY: fields[1], Path: fields[fieldCount-1]}
			if kind == EntryRenamed && i+1 < len(records) {
				// -z puts the original path in the next record
				i++
				entry.OrigPath = records[i]
			}
			status.Entries = append(status.Entries, entry)

			// Staged changes are indicated by any letter other than '.'
			if entry.XY[0] != '.' {
				status.StagedCount++
			}
			// Modified changes in the working tree (. means unchanged)
			if entry.XY[1] != '.' {
				status.ModifiedCount++
			}

		case 'u':
			fields := strings.SplitN(line, " ", 11)
			if len(fields) < 11 {
				continue
			}
			status.Entries = append(status.Entries, StatusEntry{
				Kind: EntryUnmerged,
				XY:   fields[1],
				Path: fields[10],
			})
			status.StagedCount++
			status.ModifiedCount++
		}
	}

	status.IsDirty = status.ModifiedCount > 0 || status.UntrackedCount > 0 || status.StagedCount > 0
	return status
}
