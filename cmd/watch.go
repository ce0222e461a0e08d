package cmd

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/kebabify/cli"
	"github.com/grovetools/kebabify/ignore"
	"github.com/grovetools/kebabify/logging"
	"github.com/grovetools/kebabify/pipeline"
	"github.com/grovetools/kebabify/util/pathutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultDebounce = 300 * time.Millisecond

func newWatchCmd() *cobra.Command {
	flags := &runFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [directories...]",
		Short: "Convert new entries as they appear",
		Long: `Runs a conversion, then watches the directories and runs again whenever
files or directories are created or moved into them. Uncommitted changes
stop a run unless --force is given; the watcher keeps going.

Examples:
  kebabify watch src
  kebabify watch src --force --debounce 1s`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, cfg, args)
			if err != nil {
				return err
			}
			roots, err := pathutil.DedupRoots(opts.Roots)
			if err != nil {
				return err
			}
			opts.Roots = roots
			matcher, err := ignore.NewMatcher(opts.Ignore)
			if err != nil {
				return err
			}

			jsonOutput := cli.GetOptions(cmd).JSONOutput
			run := func(ctx context.Context) error {
				summary, err := pipeline.Run(ctx, opts)
				if err != nil {
					return err
				}
				if summary.Renames() == 0 && len(summary.Rewritten) == 0 {
					return nil
				}
				if jsonOutput {
					return cli.PrintSummaryJSON(cmd.OutOrStdout(), summary)
				}
				cli.PrintSummary(cli.PrettyLogger(cmd), summary)
				return nil
			}

			w, err := newTreeWatcher(roots, matcher, debounce, run)
			if err != nil {
				return err
			}
			w.onError = func(err error) {
				_ = (&cli.ErrorHandler{Out: cmd.ErrOrStderr()}).Handle(err)
			}
			logger.WithField("roots", roots).Info("Watching for new entries")
			if !jsonOutput {
				cli.PrettyLogger(cmd).InfoPretty("Watching " + strings.Join(roots, ", ") + " (ctrl+c to stop)")
			}
			return w.Start(cmd.Context())
		},
	}
	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "Quiet period before a run starts")
	return cmd
}

// treeWatcher runs a conversion whenever entries are created below its
// roots. Events are debounced so a burst of creations triggers one run.
type treeWatcher struct {
	watcher  *fsnotify.Watcher
	roots    []string
	ignore   *ignore.Matcher
	debounce time.Duration
	run      func(ctx context.Context) error
	onError  func(error)
	logger   *logrus.Entry

	mu   sync.Mutex
	runs int
}

func newTreeWatcher(roots []string, matcher *ignore.Matcher, debounce time.Duration, run func(context.Context) error) (*treeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if matcher == nil {
		matcher = ignore.MustDefault()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &treeWatcher{
		watcher:  watcher,
		roots:    roots,
		ignore:   matcher,
		debounce: debounce,
		run:      run,
		logger:   logging.NewLogger("watch"),
	}, nil
}

// Start runs once, then blocks handling events until ctx is cancelled.
func (w *treeWatcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	w.runOnce(ctx)
	if err := w.rewatch(); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 || w.ignored(event.Name) {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				w.addTree(event.Name)
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			w.runOnce(ctx)
			if err := w.rewatch(); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Errorf("Watcher error: %v", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *treeWatcher) runOnce(ctx context.Context) {
	w.mu.Lock()
	w.runs++
	w.mu.Unlock()

	if err := w.run(ctx); err != nil {
		w.logger.WithError(err).Warn("Run failed")
		if w.onError != nil {
			w.onError(err)
		}
	}
}

// Runs returns how many conversions have been started.
func (w *treeWatcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}

// rewatch replaces all watches, since a run may have renamed watched
// directories.
func (w *treeWatcher) rewatch() error {
	for _, p := range w.watcher.WatchList() {
		_ = w.watcher.Remove(p)
	}
	for _, root := range w.roots {
		if err := w.watcher.Add(root); err != nil {
			return err
		}
		w.addTree(root)
	}
	return nil
}

func (w *treeWatcher) addTree(dir string) {
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != dir && w.ignored(p) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			w.logger.WithError(err).Debugf("Failed to watch %s", p)
		}
		return nil
	})
}

// ignored reports whether p lies in an ignored part of any root.
func (w *treeWatcher) ignored(p string) bool {
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, p)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return w.ignore.Skip(filepath.ToSlash(rel))
	}
	return false
}
