package planner

import (
	"crypto/rand"
	"encoding/hex"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/kebabify/errors"
	"github.com/grovetools/kebabify/logging"
	"github.com/grovetools/kebabify/scanner"
	"github.com/sirupsen/logrus"
)

// DefaultTempSuffix is appended to a destination to form the intermediate
// name of a case-only rename.
const DefaultTempSuffix = ".temp-rename"

// StatFunc stats a slash separated path relative to root without following
// a final symlink.
type StatFunc func(root, rel string) (fs.FileInfo, error)

// DiskStat is the StatFunc backed by the real filesystem.
func DiskStat(root, rel string) (fs.FileInfo, error) {
	return os.Lstat(filepath.Join(root, filepath.FromSlash(rel)))
}

// Options configures a Planner.
type Options struct {
	// Stat enables on-disk checks: destinations that already exist and
	// temporary names that are taken. Nil skips them.
	Stat       StatFunc
	TempSuffix string
	Logger     *logrus.Entry
}

// Planner filters and orders scan items into rename commands.
type Planner struct {
	stat       StatFunc
	tempSuffix string
	logger     *logrus.Entry
}

// New creates a Planner.
func New(opts Options) *Planner {
	p := &Planner{
		stat:       opts.Stat,
		tempSuffix: opts.TempSuffix,
		logger:     opts.Logger,
	}
	if p.tempSuffix == "" {
		p.tempSuffix = DefaultTempSuffix
	}
	if p.logger == nil {
		p.logger = logging.NewLogger("planner")
	}
	return p
}

// Plan returns the commands for every item that needs a rename, in
// execution order. Items that keep their name are still used to detect
// destinations that would collide with them.
func (p *Planner) Plan(items []scanner.FileSystemItem) ([]RenameCommand, error) {
	claimed := make(map[string]string, len(items))
	for _, item := range items {
		if !item.NeedsRename {
			claimed[key(item.Root, item.NewPath)] = item.OriginalPath
		}
	}

	pending := Order(items)
	commands := make([]RenameCommand, 0, len(pending))

	for _, item := range pending {
		src := sourcePath(item.OriginalPath, item.NewPath)
		dst := item.NewPath

		if owner, taken := claimed[key(item.Root, dst)]; taken {
			return nil, errors.RenameConflict(item.OriginalPath, dst, "destination is also the target of "+owner)
		}
		claimed[key(item.Root, dst)] = item.OriginalPath

		caseOnly := IsCaseOnly(src, dst)
		if err := p.checkDestination(item, dst, caseOnly); err != nil {
			return nil, err
		}

		if !caseOnly {
			commands = append(commands, RenameCommand{
				Root:        item.Root,
				Source:      src,
				Destination: dst,
				IsDirectory: item.IsDirectory,
				Kind:        KindDirect,
			})
			continue
		}

		temp := p.tempName(item, dst)
		commands = append(commands,
			RenameCommand{Root: item.Root, Source: src, Destination: temp, IsDirectory: item.IsDirectory, Kind: KindToTemp},
			RenameCommand{Root: item.Root, Source: temp, Destination: dst, IsDirectory: item.IsDirectory, Kind: KindFromTemp},
		)
	}

	p.logger.WithFields(logrus.Fields{
		"items":    len(pending),
		"commands": len(commands),
	}).Debug("Planned renames")
	return commands, nil
}

// Order returns the items needing rename sorted for safe execution:
// directories first by ascending depth, then files by descending depth.
// Ties are broken by root and path so plans are deterministic.
func Order(items []scanner.FileSystemItem) []scanner.FileSystemItem {
	var pending []scanner.FileSystemItem
	for _, item := range items {
		if item.NeedsRename {
			pending = append(pending, item)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		if a.IsDirectory != b.IsDirectory {
			return a.IsDirectory
		}
		da, db := depth(a.OriginalPath), depth(b.OriginalPath)
		if da != db {
			if a.IsDirectory {
				return da < db
			}
			return da > db
		}
		if a.Root != b.Root {
			return a.Root < b.Root
		}
		return a.OriginalPath < b.OriginalPath
	})
	return pending
}

// IsCaseOnly reports whether a and b differ only in letter case.
func IsCaseOnly(a, b string) bool {
	return a != b && strings.EqualFold(a, b)
}

// checkDestination reports a conflict when dst already exists on disk.
// Parent directories are renamed before their children, so the entry that
// will sit at dst when this item moves is the one currently found under the
// item's original parent.
func (p *Planner) checkDestination(item scanner.FileSystemItem, dst string, caseOnly bool) error {
	if p.stat == nil {
		return nil
	}
	dstInfo, err := p.stat(item.Root, onDisk(item.OriginalPath, dst))
	if err != nil {
		return nil
	}
	if caseOnly {
		// A case-insensitive filesystem resolves dst to the source itself.
		srcInfo, srcErr := p.stat(item.Root, item.OriginalPath)
		if srcErr == nil && os.SameFile(srcInfo, dstInfo) {
			return nil
		}
	}
	return errors.RenameConflict(item.OriginalPath, dst, "destination already exists")
}

// tempName picks an unused intermediate name next to dst, checked against
// the item's original parent like checkDestination.
func (p *Planner) tempName(item scanner.FileSystemItem, dst string) string {
	candidate := dst + p.tempSuffix
	if p.stat == nil {
		return candidate
	}
	for {
		if _, err := p.stat(item.Root, onDisk(item.OriginalPath, candidate)); err != nil {
			return candidate
		}
		candidate = dst + p.tempSuffix + "-" + randomToken()
	}
}

// onDisk maps a name under an item's new parent to where that name lives
// before any rename has run.
func onDisk(originalPath, name string) string {
	parent := path.Dir(originalPath)
	if parent == "." {
		return path.Base(name)
	}
	return parent + "/" + path.Base(name)
}

func randomToken() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

func key(root, rel string) string {
	return root + "\x00" + rel
}
