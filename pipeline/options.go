package pipeline

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// GitMoveMode selects when renames go through `git mv`.
type GitMoveMode string

const (
	// GitMoveAuto uses git mv when every root is inside a git work tree.
	GitMoveAuto GitMoveMode = "auto"
	// GitMoveAlways requires every root to be inside a git work tree.
	GitMoveAlways GitMoveMode = "always"
	// GitMoveNever always renames on the filesystem.
	GitMoveNever GitMoveMode = "never"
)

// ParseGitMoveMode parses auto, always or never. The empty string is auto.
func ParseGitMoveMode(s string) (GitMoveMode, error) {
	switch GitMoveMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", GitMoveAuto:
		return GitMoveAuto, nil
	case GitMoveAlways:
		return GitMoveAlways, nil
	case GitMoveNever:
		return GitMoveNever, nil
	}
	return "", fmt.Errorf("invalid git move mode %q (want auto, always or never)", s)
}

func (m GitMoveMode) String() string { return string(m) }

// Set implements pflag.Value.
func (m *GitMoveMode) Set(s string) error {
	parsed, err := ParseGitMoveMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *GitMoveMode) Type() string { return "mode" }

// Options configures a Run.
type Options struct {
	// Roots are the directories to convert. Duplicates are processed once.
	Roots []string

	// Force skips the uncommitted changes check.
	Force bool

	// DryRun plans renames and import rewrites without touching disk.
	DryRun bool

	GitMove GitMoveMode

	// SkipImports disables the import rewrite stage.
	SkipImports bool

	// Ignore holds extra ignore patterns on top of the built-in set.
	Ignore []string

	// Extensions adds source file extensions for import rewriting.
	Extensions []string

	// Progress receives stage and per-item events. It is called on the
	// goroutine running Run.
	Progress func(Event)

	Logger *logrus.Entry
}

// Stage names a step of a run.
type Stage string

const (
	StageScan    Stage = "scan"
	StagePlan    Stage = "plan"
	StageCheck   Stage = "check"
	StageRename  Stage = "rename"
	StageImports Stage = "imports"
	StageDone    Stage = "done"
)

// Event reports progress. Done and Total are zero on the event that opens
// a stage.
type Event struct {
	Stage   Stage  `json:"stage"`
	Done    int    `json:"done,omitempty"`
	Total   int    `json:"total,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
}
