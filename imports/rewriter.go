// Package imports rewrites relative import specifiers in JavaScript family
// source files so they point at kebab-case names. The rewrite is textual;
// nothing is parsed and rewritten paths are not checked for existence.
package imports

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/kebabify/ignore"
	"github.com/grovetools/kebabify/logging"
	"github.com/sirupsen/logrus"
)

// SourceExtensions are the file extensions scanned for specifiers.
var SourceExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".vue", ".svelte"}

// SkippedFile is a source file that could not be read or written.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// Report lists the outcome of a Rewrite.
type Report struct {
	// Rewritten holds files whose specifiers changed. In dry-run mode the
	// files are listed but not written.
	Rewritten []string      `json:"rewritten"`
	Skipped   []SkippedFile `json:"skipped,omitempty"`
	Scanned   int           `json:"scanned"`
}

// Options configures a Rewriter.
type Options struct {
	Ignore     *ignore.Matcher
	Extensions []string
	DryRun     bool
	// Progress is called after each source file is examined
	Progress func(path string, rewritten bool)
	Logger   *logrus.Entry
}

// Rewriter walks roots and rewrites import specifiers in place.
type Rewriter struct {
	ignore     *ignore.Matcher
	extensions map[string]bool
	dryRun     bool
	progress   func(string, bool)
	logger     *logrus.Entry
}

// NewRewriter creates a Rewriter. Extensions extend SourceExtensions.
func NewRewriter(opts Options) *Rewriter {
	r := &Rewriter{
		ignore:     opts.Ignore,
		extensions: make(map[string]bool),
		dryRun:     opts.DryRun,
		progress:   opts.Progress,
		logger:     opts.Logger,
	}
	for _, ext := range append(append([]string{}, SourceExtensions...), opts.Extensions...) {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.extensions[ext] = true
	}
	if r.ignore == nil {
		r.ignore = ignore.MustDefault()
	}
	if r.logger == nil {
		r.logger = logging.NewLogger("imports")
	}
	return r
}

// Rewrite scans every source file below roots. Files that fail to read or
// write are recorded in Report.Skipped and do not stop the run; only a root
// that cannot be walked is an error.
func (r *Rewriter) Rewrite(roots []string) (*Report, error) {
	report := &Report{}
	for _, root := range roots {
		if err := r.rewriteRoot(root, report); err != nil {
			return report, err
		}
	}

	r.logger.WithFields(logrus.Fields{
		"scanned":   report.Scanned,
		"rewritten": len(report.Rewritten),
		"skipped":   len(report.Skipped),
		"dry_run":   r.dryRun,
	}).Debug("Rewrote imports")
	return report, nil
}

func (r *Rewriter) rewriteRoot(root string, report *Report) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == root {
				return fmt.Errorf("walk %s: %w", root, walkErr)
			}
			report.skip(p, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if r.ignore.Skip(filepath.ToSlash(rel)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !r.extensions[strings.ToLower(filepath.Ext(p))] {
			return nil
		}

		report.Scanned++
		rewritten, err := r.rewriteFile(p)
		if err != nil {
			r.logger.WithError(err).WithField("path", p).Warn("Skipping source file")
			report.skip(p, err)
			return nil
		}
		if rewritten {
			report.Rewritten = append(report.Rewritten, p)
		}
		if r.progress != nil {
			r.progress(p, rewritten)
		}
		return nil
	})
}

func (r *Rewriter) rewriteFile(p string) (bool, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return false, err
	}
	out, changed := RewriteSource(string(data))
	if !changed {
		return false, nil
	}
	r.logger.WithField("path", p).Debug("Rewriting import specifiers")
	if r.dryRun {
		return true, nil
	}

	info, err := os.Stat(p)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(p, []byte(out), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

func (rep *Report) skip(p string, err error) {
	rep.Skipped = append(rep.Skipped, SkippedFile{Path: p, Reason: err.Error(), Err: err})
}
