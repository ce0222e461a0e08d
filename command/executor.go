package command

import (
	"context"
	"os"
	"os/exec"
)

// Executor creates exec.Cmd instances. Tests swap it to observe or fake the
// processes a SafeBuilder starts.
type Executor interface {
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealExecutor starts processes with the caller's environment plus a fixed
// locale, so stderr stays parseable, and no interactive git prompts.
type RealExecutor struct {
	// Env is appended to the inherited environment
	Env []string
}

// CommandContext creates a context-aware exec.Cmd.
func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C", "GIT_TERMINAL_PROMPT=0")
	cmd.Env = append(cmd.Env, e.Env...)
	return cmd
}
