package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/grovetools/kebabify/command"
)

// Available reports whether a git binary is on PATH
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsGitRepo checks if the given directory is inside a git work tree
func IsGitRepo(dir string) bool {
	cmdBuilder := command.NewSafeBuilder()
	cmd, err := cmdBuilder.Build(context.Background(), "git", "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	result, err := cmd.WithDir(dir).Run()
	return err == nil && strings.TrimSpace(result.Stdout) == "true"
}

// GetGitRoot returns the root directory of the git repository
func GetGitRoot(dir string) (string, error) {
	cmdBuilder := command.NewSafeBuilder()
	cmd, err := cmdBuilder.Build(context.Background(), "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	result, err := cmd.WithDir(dir).Run()
	if err != nil {
		return "", fmt.Errorf("get git root: %w: %s", err, strings.TrimSpace(result.Stderr))
	}

	return strings.TrimSpace(result.Stdout), nil
}
