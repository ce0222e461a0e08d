package planner

import (
	"fmt"
	"path"
)

// CommandKind tells where a command sits in a rename sequence.
type CommandKind int

const (
	// KindDirect moves the source straight to its destination.
	KindDirect CommandKind = iota
	// KindToTemp is the first half of a case-only rename.
	KindToTemp
	// KindFromTemp is the second half of a case-only rename. If it fails the
	// entry stays under its temporary name.
	KindFromTemp
)

func (k CommandKind) String() string {
	switch k {
	case KindToTemp:
		return "to-temp"
	case KindFromTemp:
		return "from-temp"
	default:
		return "direct"
	}
}

// RenameCommand moves Source to Destination. Both paths are slash separated
// and relative to Root.
type RenameCommand struct {
	Root        string      `json:"root"`
	Source      string      `json:"source"`
	Destination string      `json:"destination"`
	IsDirectory bool        `json:"isDirectory"`
	Kind        CommandKind `json:"kind"`
}

// ViaTemp reports whether the command is half of a two-step case-only rename.
func (c RenameCommand) ViaTemp() bool {
	return c.Kind != KindDirect
}

func (c RenameCommand) String() string {
	return fmt.Sprintf("%s -> %s", c.Source, c.Destination)
}

func depth(p string) int {
	if p == "" || p == "." {
		return 0
	}
	n := 1
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			n++
		}
	}
	return n
}

// sourcePath is the location of the item once all of its ancestors have
// been renamed.
func sourcePath(originalPath, newPath string) string {
	parent := path.Dir(newPath)
	base := path.Base(originalPath)
	if parent == "." {
		return base
	}
	return parent + "/" + base
}
