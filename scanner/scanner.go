// Package scanner walks directory trees and computes the kebab-case target
// path of every entry.
package scanner

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/grovetools/kebabify/errors"
	"github.com/grovetools/kebabify/ignore"
	"github.com/grovetools/kebabify/logging"
	"github.com/grovetools/kebabify/naming"
	"github.com/sirupsen/logrus"
)

// FileSystemItem is one entry found by a scan. OriginalPath and NewPath are
// relative to Root and use forward slashes. NewPath is rooted under the
// already-converted path of the parent directory.
type FileSystemItem struct {
	Root         string `json:"root"`
	OriginalPath string `json:"originalPath"`
	NewPath      string `json:"newPath"`
	IsDirectory  bool   `json:"isDirectory"`
	NeedsRename  bool   `json:"needsRename"`
}

// ScanResult aggregates the items of one or more scanned roots.
type ScanResult struct {
	Items      []FileSystemItem `json:"items"`
	TotalItems int              `json:"totalItems"`
}

// Pending returns the items whose base name changes.
func (r *ScanResult) Pending() []FileSystemItem {
	var out []FileSystemItem
	for _, item := range r.Items {
		if item.NeedsRename {
			out = append(out, item)
		}
	}
	return out
}

// Options configures a scan.
type Options struct {
	Ignore *ignore.Matcher
	Logger *logrus.Entry
}

// Scanner walks roots and builds ScanResults.
type Scanner struct {
	ignore *ignore.Matcher
	logger *logrus.Entry
}

// New creates a Scanner. Zero options fall back to the default ignore set.
func New(opts Options) *Scanner {
	s := &Scanner{ignore: opts.Ignore, logger: opts.Logger}
	if s.ignore == nil {
		s.ignore = ignore.MustDefault()
	}
	if s.logger == nil {
		s.logger = logging.NewLogger("scanner")
	}
	return s
}

// Scan validates every root and then walks them in order. The returned
// result holds the items of all roots.
func (s *Scanner) Scan(roots []string) (*ScanResult, error) {
	if err := ValidateRoots(roots); err != nil {
		return nil, err
	}

	result := &ScanResult{}
	for _, root := range roots {
		batch, err := s.ScanRoot(root)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, batch.Items...)
	}
	result.TotalItems = len(result.Items)
	return result, nil
}

// ScanRoot walks a single root depth-first.
func (s *Scanner) ScanRoot(root string) (*ScanResult, error) {
	if err := validateRoot(root); err != nil {
		return nil, err
	}

	// original relative directory -> converted relative directory
	converted := map[string]string{".": ""}
	result := &ScanResult{}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if s.ignore.Skip(rel) {
			s.logger.WithField("path", rel).Debug("Skipping ignored entry")
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		parent := converted[path.Dir(rel)]
		name := d.Name()

		var newName string
		if d.IsDir() {
			newName = naming.ToKebabCase(name)
		} else {
			newName = naming.ConvertFileName(name)
		}

		newRel := newName
		if parent != "" {
			newRel = parent + "/" + newName
		}
		if d.IsDir() {
			converted[rel] = newRel
		}

		result.Items = append(result.Items, FileSystemItem{
			Root:         root,
			OriginalPath: rel,
			NewPath:      newRel,
			IsDirectory:  d.IsDir(),
			NeedsRename:  name != newName,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.TotalItems = len(result.Items)
	s.logger.WithFields(logrus.Fields{
		"root":    root,
		"items":   result.TotalItems,
		"pending": len(result.Pending()),
	}).Debug("Scanned root")
	return result, nil
}

// ValidateRoots checks every root before any of them is walked.
func ValidateRoots(roots []string) error {
	for _, root := range roots {
		if err := validateRoot(root); err != nil {
			return err
		}
	}
	return nil
}

func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound(root)
		}
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot access root").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return errors.NotADirectory(root)
	}
	return nil
}
