// Package pipeline runs a full conversion: scan, plan, check the git
// state, rename, then rewrite imports. Each stage completes before the next
// starts and cancellation is only observed between stages.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	kerrors "github.com/grovetools/kebabify/errors"
	"github.com/grovetools/kebabify/git"
	"github.com/grovetools/kebabify/ignore"
	"github.com/grovetools/kebabify/imports"
	"github.com/grovetools/kebabify/logging"
	"github.com/grovetools/kebabify/planner"
	"github.com/grovetools/kebabify/rename"
	"github.com/grovetools/kebabify/scanner"
	"github.com/grovetools/kebabify/util/pathutil"
	"github.com/sirupsen/logrus"
)

// Summary describes a finished (or previewed) run.
type Summary struct {
	Roots       []string                `json:"roots"`
	Scanned     int                     `json:"scanned"`
	Commands    []planner.RenameCommand `json:"commands"`
	Applied     int                     `json:"applied"`
	TreeState   string                  `json:"treeState"`
	UsedGitMove bool                    `json:"usedGitMove"`
	Rewritten   []string                `json:"rewritten"`
	Skipped     []imports.SkippedFile   `json:"skipped,omitempty"`
	DryRun      bool                    `json:"dryRun"`
	Duration    time.Duration           `json:"duration"`
}

// Renames returns the number of entries renamed. A case-only rename counts
// once although it takes two commands.
func (s *Summary) Renames() int {
	n := 0
	for _, c := range s.Commands {
		if c.Kind != planner.KindToTemp {
			n++
		}
	}
	return n
}

// Run converts every entry below opts.Roots to kebab-case and rewrites the
// relative imports that point at them. On failure the returned Summary
// reflects the stages that completed.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger("pipeline")
	}
	emit := func(e Event) {
		if opts.Progress != nil {
			opts.Progress(e)
		}
	}

	summary := &Summary{DryRun: opts.DryRun}
	defer func() { summary.Duration = time.Since(start) }()

	if len(opts.Roots) == 0 {
		return summary, kerrors.New(kerrors.ErrCodeInvalidInput, "no directories given")
	}
	mode := opts.GitMove
	if mode == "" {
		mode = GitMoveAuto
	}

	roots, err := pathutil.DedupRoots(opts.Roots)
	if err != nil {
		return summary, kerrors.Wrap(err, kerrors.ErrCodeInvalidInput, "failed to resolve directories")
	}
	summary.Roots = roots

	matcher, err := ignore.NewMatcher(opts.Ignore)
	if err != nil {
		return summary, kerrors.Wrap(err, kerrors.ErrCodeInvalidInput, "invalid ignore pattern")
	}

	// Scan
	emit(Event{Stage: StageScan})
	result, err := scanner.New(scanner.Options{Ignore: matcher}).Scan(roots)
	if err != nil {
		return summary, err
	}
	summary.Scanned = result.TotalItems
	logger.WithFields(logrus.Fields{
		"roots":   len(roots),
		"items":   result.TotalItems,
		"pending": len(result.Pending()),
	}).Info("Scanned directories")
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	// Plan
	emit(Event{Stage: StagePlan})
	cmds, err := planner.New(planner.Options{Stat: planner.DiskStat}).Plan(result.Items)
	if err != nil {
		return summary, err
	}
	summary.Commands = cmds
	logger.WithField("commands", len(cmds)).Info("Planned renames")
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	// Check
	emit(Event{Stage: StageCheck})
	tree, err := git.CheckTrees(roots)
	if err != nil {
		return summary, err
	}
	summary.TreeState = tree.State.String()
	if tree.State == git.Dirty {
		if !opts.Force {
			return summary, kerrors.DirtyTree(tree.DirtyRepositories, tree.DirtyFiles)
		}
		logger.WithField("repositories", tree.DirtyRepositories).Warn("Proceeding with uncommitted changes")
	}

	switch mode {
	case GitMoveAlways:
		if !tree.FullyVersioned() {
			return summary, kerrors.New(kerrors.ErrCodeInvalidInput,
				fmt.Sprintf("git move requested but not under version control: %s", strings.Join(tree.Unversioned, ", "))).
				WithDetail("directories", tree.Unversioned)
		}
		summary.UsedGitMove = true
	case GitMoveAuto:
		summary.UsedGitMove = tree.FullyVersioned()
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	// Rename
	if !opts.DryRun && len(cmds) > 0 {
		emit(Event{Stage: StageRename, Total: len(cmds)})
		executor := rename.NewExecutor(rename.Options{
			Progress: func(done, total int, cmd planner.RenameCommand) {
				summary.Applied = done
				emit(Event{Stage: StageRename, Done: done, Total: total, Path: cmd.Destination, Message: cmd.String()})
			},
		})
		if err := executor.Execute(ctx, cmds, summary.UsedGitMove, ""); err != nil {
			return summary, err
		}
		logger.WithFields(logrus.Fields{
			"renamed": summary.Renames(),
			"git_mv":  summary.UsedGitMove,
		}).Info("Renamed entries")
		if err := ctx.Err(); err != nil {
			return summary, err
		}
	}

	// Imports
	if !opts.SkipImports {
		emit(Event{Stage: StageImports})
		rewriter := imports.NewRewriter(imports.Options{
			Ignore:     matcher,
			Extensions: opts.Extensions,
			DryRun:     opts.DryRun,
			Progress: func(p string, rewritten bool) {
				if rewritten {
					emit(Event{Stage: StageImports, Path: p})
				}
			},
		})
		report, err := rewriter.Rewrite(roots)
		if report != nil {
			summary.Rewritten = report.Rewritten
			summary.Skipped = report.Skipped
		}
		if err != nil {
			return summary, err
		}
		logger.WithFields(logrus.Fields{
			"rewritten": len(summary.Rewritten),
			"skipped":   len(summary.Skipped),
		}).Info("Rewrote imports")
	}

	emit(Event{Stage: StageDone})
	return summary, nil
}
