package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	relErrors "github.com/CountESS-Project/countess-release/internal/errors"
)

// CommandExecutor defines an interface for executing external commands.
// It exists so the git client can be tested without spawning processes.
type CommandExecutor interface {
	// Execute runs a command, discarding its output.
	Execute(ctx context.Context, name string, args ...string) error

	// ExecuteWithOutput runs a command and returns its stdout.
	ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error)
}

// ExecExecutor is the default implementation of CommandExecutor
// that delegates to the os/exec package.
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Execute implements CommandExecutor.Execute
func (e *ExecExecutor) Execute(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return wrapExecError(name, args, err, stderr.String())
	}
	return nil
}

// ExecuteWithOutput implements CommandExecutor.ExecuteWithOutput
func (e *ExecExecutor) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", wrapExecError(name, args, err, stderr.String())
	}
	return stdout.String(), nil
}

// wrapExecError converts an os/exec failure into a GitError that keeps both
// the ErrGitOperationFailed sentinel and the original error (so callers can
// still reach the *exec.ExitError for its exit code).
func wrapExecError(name string, args []string, err error, stderr string) error {
	operation := name
	if len(args) > 0 {
		operation = args[0]
		// Git invocations lead with "-C <path>", report the subcommand instead
		if operation == "-C" && len(args) > 2 {
			operation = args[2]
		}
	}

	wrapped := fmt.Errorf("%w: %w", relErrors.ErrGitOperationFailed, err)
	return relErrors.NewGitError(operation, args, wrapped, stderr)
}

// ExitCode extracts the process exit code from an error chain, returning
// -1 when the error did not come from a process exit.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if relErrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
