package cli

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/kebabify/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m ProgressModel, msg tea.Msg) ProgressModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(ProgressModel)
	require.True(t, ok)
	return pm
}

func TestProgressModelStages(t *testing.T) {
	m := NewProgressModel(nil)

	m = update(t, m, eventMsg(pipeline.Event{Stage: pipeline.StageScan}))
	assert.Contains(t, m.View(), "Scanning directories")

	m = update(t, m, eventMsg(pipeline.Event{Stage: pipeline.StageRename, Total: 4}))
	m = update(t, m, eventMsg(pipeline.Event{Stage: pipeline.StageRename, Done: 2, Total: 4, Path: "src/foo-bar.ts"}))
	view := m.View()
	assert.Contains(t, view, "Renaming 2/4")
	assert.Contains(t, view, "foo-bar.ts")

	m = update(t, m, eventMsg(pipeline.Event{Stage: pipeline.StageImports}))
	m = update(t, m, eventMsg(pipeline.Event{Stage: pipeline.StageImports, Path: "/x/a.ts"}))
	m = update(t, m, eventMsg(pipeline.Event{Stage: pipeline.StageImports, Path: "/x/b.ts"}))
	assert.Contains(t, m.View(), "Rewriting imports (2 files)")
}

func TestProgressModelFinishes(t *testing.T) {
	m := NewProgressModel(nil)
	next, cmd := m.Update(finishedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}

func TestProgressModelInterrupt(t *testing.T) {
	cancelled := 0
	m := NewProgressModel(func() { cancelled++ })

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, 1, cancelled)
	assert.Contains(t, m.View(), "Stopping after the current stage")
}

func TestIsInteractive(t *testing.T) {
	assert.False(t, IsInteractive(&bytes.Buffer{}))
}

func TestRunWithProgressReturnsRunError(t *testing.T) {
	var out bytes.Buffer
	want := context.DeadlineExceeded
	err := RunWithProgress(context.Background(), &out, func(ctx context.Context, progress func(pipeline.Event)) error {
		progress(pipeline.Event{Stage: pipeline.StageScan})
		return want
	})
	assert.ErrorIs(t, err, want)
}
