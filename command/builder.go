package command

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default command execution timeout
	DefaultTimeout = 2 * time.Minute

	// MaxTimeout is the maximum allowed timeout
	MaxTimeout = 10 * time.Minute
)

// SafeBuilder provides secure command execution with validation
type SafeBuilder struct {
	defaultTimeout time.Duration
	validators     map[string]func(string) error
	executor       Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		validators:     makeDefaultValidators(),
		executor:       exec,
	}
}

// makeDefaultValidators returns the default set of validators
func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"relPath": validateRelPath,
	}
}

// validateRelPath ensures a path handed to git stays inside the working tree
// and cannot be read as an option.
func validateRelPath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.HasPrefix(path, "-") {
		return fmt.Errorf("path cannot start with '-': %s", path)
	}

	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return fmt.Errorf("path cannot contain '..': %s", path)
		}
	}

	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains a NUL byte")
	}

	return nil
}

// Command represents a safe command configuration
type Command struct {
	ctx      context.Context
	name     string
	args     []string
	dir      string
	timeout  time.Duration
	executor Executor
}

// Result holds the captured output of a finished command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Build creates a new command with validation
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	if name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	return &Command{
		ctx:      ctx,
		name:     name,
		args:     args,
		timeout:  sb.defaultTimeout,
		executor: sb.executor,
	}, nil
}

// WithTimeout sets a custom timeout for the command
func (c *Command) WithTimeout(timeout time.Duration) *Command {
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	c.timeout = timeout
	return c
}

// WithDir sets the working directory of the command
func (c *Command) WithDir(dir string) *Command {
	c.dir = dir
	return c
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// String renders the command line for logs and error messages
func (c *Command) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Run executes the command under its timeout and captures stdout and
// stderr. The returned error is the raw error from the process so callers
// can inspect *exec.ExitError.
func (c *Command) Run() (Result, error) {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	cmd := c.executor.CommandContext(ctx, c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
	if c.dir != "" {
		cmd.Dir = c.dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}
	return result, err
}
