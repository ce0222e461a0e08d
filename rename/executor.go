package rename

import (
	"context"
	"path/filepath"

	kerrors "github.com/grovetools/kebabify/errors"
	"github.com/grovetools/kebabify/logging"
	"github.com/grovetools/kebabify/planner"
	"github.com/sirupsen/logrus"
)

// ProgressFunc is called after each command completes.
type ProgressFunc func(done, total int, cmd planner.RenameCommand)

// Options configures an Executor. Zero values select FSMover, a GitMover
// falling back to FSMover, and the "rename" component logger.
type Options struct {
	FS       Mover
	Git      Mover
	Progress ProgressFunc
	Logger   *logrus.Entry
}

// Executor runs rename commands in order.
type Executor struct {
	fs       Mover
	git      Mover
	progress ProgressFunc
	logger   *logrus.Entry
}

// NewExecutor creates an Executor.
func NewExecutor(opts Options) *Executor {
	e := &Executor{
		fs:       opts.FS,
		git:      opts.Git,
		progress: opts.Progress,
		logger:   opts.Logger,
	}
	if e.fs == nil {
		e.fs = FSMover{}
	}
	if e.git == nil {
		e.git = NewGitMover(nil, e.fs)
	}
	if e.logger == nil {
		e.logger = logging.NewLogger("rename")
	}
	return e
}

// Execute applies cmds in order and stops at the first failure. Paths of a
// command are resolved against its Root; a relative Root is joined to
// workDir. Cancelling ctx does not interrupt a running sequence, so a
// case-only pair is never split by the caller.
func (e *Executor) Execute(ctx context.Context, cmds []planner.RenameCommand, useGitMove bool, workDir string) error {
	ctx = context.WithoutCancel(ctx)

	mover := e.fs
	if useGitMove {
		mover = e.git
	}

	for i, cmd := range cmds {
		dir := resolveDir(workDir, cmd.Root)
		log := e.logger.WithFields(logrus.Fields{
			"dir":  dir,
			"kind": cmd.Kind.String(),
		})
		log.Debugf("Renaming %s", cmd)

		if err := mover.Move(ctx, dir, cmd.Source, cmd.Destination); err != nil {
			if cmd.Kind == planner.KindFromTemp {
				return kerrors.TempRenameStranded(
					filepath.Join(dir, filepath.FromSlash(cmd.Source)),
					filepath.Join(dir, filepath.FromSlash(cmd.Destination)),
					err,
				)
			}
			return err
		}

		if e.progress != nil {
			e.progress(i+1, len(cmds), cmd)
		}
	}
	return nil
}

func resolveDir(workDir, root string) string {
	switch {
	case root == "":
		return workDir
	case filepath.IsAbs(root) || workDir == "":
		return root
	default:
		return filepath.Join(workDir, root)
	}
}
