package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/grovetools/kebabify/command"
	kerrors "github.com/grovetools/kebabify/errors"
)

// IsTracked reports whether rel (relative to dir) is, or contains, a path
// in the git index.
func IsTracked(ctx context.Context, builder *command.SafeBuilder, dir, rel string) (bool, error) {
	if err := builder.Validate("relPath", rel); err != nil {
		return false, err
	}
	cmd, err := builder.Build(ctx, "git", "ls-files", "--error-unmatch", "--", rel)
	if err != nil {
		return false, fmt.Errorf("failed to build command: %w", err)
	}
	result, err := cmd.WithDir(dir).Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && result.ExitCode == 1 {
		return false, nil
	}
	return false, kerrors.ExecutionFailed(cmd.String(), result.Stdout, result.Stderr, err)
}

// Move runs `git mv` so the rename is recorded in the index
func Move(ctx context.Context, builder *command.SafeBuilder, dir, src, dst string) error {
	for _, p := range []string{src, dst} {
		if err := builder.Validate("relPath", p); err != nil {
			return kerrors.Wrap(err, kerrors.ErrCodeInvalidInput, "refusing to move path").
				WithDetail("path", p)
		}
	}

	cmd, err := builder.Build(ctx, "git", "mv", "--", src, dst)
	if err != nil {
		return fmt.Errorf("failed to build command: %w", err)
	}
	result, err := cmd.WithDir(dir).Run()
	if err != nil {
		return kerrors.ExecutionFailed(cmd.String(), result.Stdout, result.Stderr, err)
	}
	return nil
}
