package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/kebabify/logging"
	"github.com/grovetools/kebabify/pipeline"
	"github.com/mattn/go-isatty"
)

var stageLabels = map[pipeline.Stage]string{
	pipeline.StageScan:    "Scanning directories",
	pipeline.StagePlan:    "Planning renames",
	pipeline.StageCheck:   "Checking git status",
	pipeline.StageRename:  "Renaming",
	pipeline.StageImports: "Rewriting imports",
	pipeline.StageDone:    "Done",
}

type eventMsg pipeline.Event

type finishedMsg struct{ err error }

// ProgressModel is the bubbletea model rendering pipeline progress.
type ProgressModel struct {
	spinner     spinner.Model
	bar         progress.Model
	muted       lipgloss.Style
	stage       pipeline.Stage
	done        int
	total       int
	current     string
	rewritten   int
	finished    bool
	interrupted bool
	cancel      context.CancelFunc
}

// NewProgressModel creates a ProgressModel. cancel is called when the user
// presses ctrl+c; the run then stops at the next stage boundary.
func NewProgressModel(cancel context.CancelFunc) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return ProgressModel{
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		cancel:  cancel,
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if msg.Stage != m.stage {
			m.stage = msg.Stage
			m.done, m.total, m.current = 0, 0, ""
		}
		if msg.Total > 0 {
			m.total = msg.Total
		}
		m.done = msg.Done
		if msg.Path != "" {
			m.current = msg.Path
			if msg.Stage == pipeline.StageImports {
				m.rewritten++
			}
		}
		return m, nil

	case finishedMsg:
		m.finished = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.interrupted {
			m.interrupted = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ProgressModel) View() string {
	if m.finished {
		return ""
	}

	label := stageLabels[m.stage]
	if label == "" {
		label = "Starting"
	}

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(label)
	switch {
	case m.stage == pipeline.StageRename && m.total > 0:
		b.WriteString(fmt.Sprintf(" %d/%d\n  %s", m.done, m.total, m.bar.ViewAs(float64(m.done)/float64(m.total))))
	case m.stage == pipeline.StageImports && m.rewritten > 0:
		b.WriteString(fmt.Sprintf(" (%d files)", m.rewritten))
	}
	if m.current != "" {
		b.WriteString("\n  " + m.muted.Render(filepath.Base(m.current)))
	}
	if m.interrupted {
		b.WriteString("\n  " + m.muted.Render("Stopping after the current stage..."))
	}
	b.WriteString("\n")
	return b.String()
}

// IsInteractive reports whether w is a terminal
func IsInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RunWithProgress runs fn while rendering its progress events to out.
// Structured log output is held back while the display is active.
func RunWithProgress(ctx context.Context, out io.Writer, fn func(ctx context.Context, progress func(pipeline.Event)) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prev := logging.SetGlobalOutput(io.Discard)
	defer logging.SetGlobalOutput(prev)

	opts := []tea.ProgramOption{tea.WithOutput(out)}
	if !IsInteractive(out) {
		opts = append(opts, tea.WithInput(nil))
	}
	p := tea.NewProgram(NewProgressModel(cancel), opts...)

	result := make(chan error, 1)
	go func() {
		err := fn(ctx, func(e pipeline.Event) { p.Send(eventMsg(e)) })
		result <- err
		p.Send(finishedMsg{err: err})
	}()

	// A failed display does not abort the run.
	_, _ = p.Run()
	return <-result
}
