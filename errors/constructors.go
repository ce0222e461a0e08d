package errors

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

// NotFound creates an error for a root path that does not exist
func NotFound(path string) *KebabError {
	return New(ErrCodeNotFound, fmt.Sprintf("directory not found: %s", path)).
		WithDetail("path", path)
}

// NotADirectory creates an error for a root path that is not a directory
func NotADirectory(path string) *KebabError {
	return New(ErrCodeNotADirectory, fmt.Sprintf("not a directory: %s", path)).
		WithDetail("path", path)
}

// DirtyTree creates the precondition failure raised when tracked files have
// uncommitted modifications and the run was not forced.
func DirtyTree(repositories, dirtyFiles []string) *KebabError {
	return New(ErrCodeGitDirty,
		fmt.Sprintf("uncommitted changes in %s; commit or stash them, or use --force", strings.Join(repositories, ", "))).
		WithDetail("repositories", repositories).
		WithDetail("dirtyFiles", dirtyFiles)
}

// RenameConflict creates an error for a destination that is already taken
func RenameConflict(source, destination, reason string) *KebabError {
	return New(ErrCodeRenameConflict,
		fmt.Sprintf("cannot rename %s to %s: %s", source, destination, reason)).
		WithDetail("source", source).
		WithDetail("destination", destination)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *KebabError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *KebabError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *KebabError {
	return ExecutionFailed(cmd, "", "", err)
}

// ExecutionFailed creates a command execution failure error carrying the
// captured output, exit status and terminating signal of the process.
func ExecutionFailed(cmd, stdout, stderr string, err error) *KebabError {
	kebabErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	if stdout != "" {
		kebabErr = kebabErr.WithDetail("stdout", stdout)
	}
	if stderr != "" {
		kebabErr = kebabErr.WithDetail("stderr", stderr)
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		kebabErr = kebabErr.WithDetail("exitCode", exitErr.ExitCode())
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			kebabErr = kebabErr.WithDetail("signal", status.Signal().String())
		}
	}

	return kebabErr
}

// TempRenameStranded wraps a failure that left an entry under its temporary
// case-only rename name. The entry must be moved to destination by hand.
func TempRenameStranded(temporaryPath, destination string, err error) *KebabError {
	return Wrap(err, ErrCodeTempRenameStranded,
		fmt.Sprintf("%s was left at temporary path %s; move it to %s manually", destination, temporaryPath, destination)).
		WithDetail("temporaryPath", temporaryPath).
		WithDetail("destination", destination)
}
