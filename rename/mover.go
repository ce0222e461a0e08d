package rename

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/kebabify/command"
	kerrors "github.com/grovetools/kebabify/errors"
	"github.com/grovetools/kebabify/git"
)

// Mover moves src to dst. Both are slash separated and relative to workDir.
type Mover interface {
	Move(ctx context.Context, workDir, src, dst string) error
}

// FSMover renames entries directly on the filesystem.
type FSMover struct{}

// Move implements Mover.
func (FSMover) Move(_ context.Context, workDir, src, dst string) error {
	from := filepath.Join(workDir, filepath.FromSlash(src))
	to := filepath.Join(workDir, filepath.FromSlash(dst))
	if err := os.Rename(from, to); err != nil {
		return kerrors.ExecutionFailed(fmt.Sprintf("mv %s %s", src, dst), "", "", err).
			WithDetail("workDir", workDir)
	}
	return nil
}

// GitMover records renames in the git index with `git mv`. Entries git does
// not track are handed to Fallback.
type GitMover struct {
	builder  *command.SafeBuilder
	fallback Mover
}

// NewGitMover creates a GitMover. A nil builder uses command.NewSafeBuilder
// and a nil fallback uses FSMover.
func NewGitMover(builder *command.SafeBuilder, fallback Mover) *GitMover {
	if builder == nil {
		builder = command.NewSafeBuilder()
	}
	if fallback == nil {
		fallback = FSMover{}
	}
	return &GitMover{builder: builder, fallback: fallback}
}

// Move implements Mover.
func (m *GitMover) Move(ctx context.Context, workDir, src, dst string) error {
	tracked, err := git.IsTracked(ctx, m.builder, workDir, src)
	if err != nil {
		return err
	}
	if !tracked {
		return m.fallback.Move(ctx, workDir, src, dst)
	}
	return git.Move(ctx, m.builder, workDir, src, dst)
}
