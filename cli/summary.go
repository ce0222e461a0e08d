package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/grovetools/kebabify/logging"
	"github.com/grovetools/kebabify/pipeline"
	"github.com/grovetools/kebabify/planner"
)

// PrintSummaryJSON writes the summary as indented JSON.
func PrintSummaryJSON(w io.Writer, s *pipeline.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// PrintSummary writes a human readable account of a run. Case-only renames
// are shown once, without their temporary step.
func PrintSummary(p *logging.PrettyLogger, s *pipeline.Summary) {
	renames := s.Renames()
	if renames == 0 {
		p.Success("Everything is already kebab-case")
	} else {
		for _, c := range s.Commands {
			if c.Kind == planner.KindToTemp {
				continue
			}
			from, to := c.Source, c.Destination
			if c.Kind == planner.KindFromTemp {
				from = tempOrigin(s.Commands, c)
			}
			p.Rename(path.Join(path.Base(c.Root), from), path.Join(path.Base(c.Root), to))
		}
		p.Blank()
	}

	verb := "Renamed"
	if s.DryRun {
		verb = "Would rename"
	}
	p.Field(verb, fmt.Sprintf("%d entries", renames))
	if s.TreeState != "" {
		p.Field("Git", s.TreeState)
	}
	if s.UsedGitMove && !s.DryRun {
		p.Field("Mover", "git mv")
	}

	verb = "Rewrote imports in"
	if s.DryRun {
		verb = "Would rewrite imports in"
	}
	p.Field(verb, fmt.Sprintf("%d files", len(s.Rewritten)))
	for _, sk := range s.Skipped {
		p.WarnPretty(fmt.Sprintf("Skipped %s: %s", sk.Path, sk.Reason))
	}
	if !s.DryRun && renames > 0 {
		p.Success(fmt.Sprintf("Done in %s", s.Duration.Round(time.Millisecond)))
	}
}

// tempOrigin returns the original source of a case-only rename, which is
// the source of the preceding to-temp command.
func tempOrigin(cmds []planner.RenameCommand, fromTemp planner.RenameCommand) string {
	for _, c := range cmds {
		if c.Kind == planner.KindToTemp && c.Root == fromTemp.Root && c.Destination == fromTemp.Source {
			return c.Source
		}
	}
	return fromTemp.Source
}
