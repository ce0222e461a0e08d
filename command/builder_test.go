package command

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRelPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "fooBar.ts", false},
		{"nested path", "src/fooBar/BazQux.ts", false},
		{"dots inside name", "a..b/c", false},
		{"empty path", "", true},
		{"option like", "--force", true},
		{"parent traversal", "src/../etc", true},
		{"nul byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRelPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRelPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSafeBuilder(t *testing.T) {
	sb := NewSafeBuilder()

	t.Run("build valid command", func(t *testing.T) {
		cmd, err := sb.Build(context.Background(), "git", "mv", "a", "b")
		require.NoError(t, err)
		assert.Equal(t, "git mv a b", cmd.String())
	})

	t.Run("empty command name", func(t *testing.T) {
		_, err := sb.Build(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("validate unknown type", func(t *testing.T) {
		err := sb.Validate("unknown", "value")
		assert.Error(t, err)
	})

	t.Run("timeout is capped", func(t *testing.T) {
		cmd, err := sb.Build(context.Background(), "echo")
		require.NoError(t, err)
		cmd.WithTimeout(time.Hour)
		assert.Equal(t, MaxTimeout, cmd.timeout)
	})
}

func TestRunCapturesOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()
	cmd, err := NewSafeBuilder().Build(context.Background(), "sh", "-c", "pwd; echo oops >&2; exit 4")
	require.NoError(t, err)

	result, err := cmd.WithDir(dir).Run()
	require.Error(t, err)
	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 4, result.ExitCode)
	assert.Contains(t, result.Stderr, "oops")
	assert.NotEmpty(t, result.Stdout)
}

type recordingExecutor struct {
	RealExecutor
	calls [][]string
}

func (r *recordingExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.RealExecutor.CommandContext(ctx, "true")
}

func TestCustomExecutor(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	rec := &recordingExecutor{}
	cmd, err := NewSafeBuilderWithExecutor(rec).Build(context.Background(), "git", "status")
	require.NoError(t, err)

	_, err = cmd.Run()
	require.NoError(t, err)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, []string{"git", "status"}, rec.calls[0])
}

func TestRealExecutorEnvironment(t *testing.T) {
	cmd := (&RealExecutor{Env: []string{"EXTRA=1"}}).CommandContext(context.Background(), "git", "status")
	assert.Contains(t, cmd.Env, "LC_ALL=C")
	assert.Contains(t, cmd.Env, "GIT_TERMINAL_PROMPT=0")
	assert.Equal(t, "EXTRA=1", cmd.Env[len(cmd.Env)-1])
}
