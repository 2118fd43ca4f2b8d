package git

import (
	"context"
	"strings"

	"github.com/CountESS-Project/countess-release/internal/common"
)

// Client runs git operations against a single repository.
// It wraps the git binary rather than reimplementing repository access;
// git history is the only state this tool relies on.
type Client struct {
	repoPath string
	logger   common.Logger
	executor CommandExecutor
}

// NewClient creates a Client with the default process executor.
func NewClient(repoPath string, logger common.Logger) *Client {
	return NewClientWithExecutor(repoPath, logger, NewExecExecutor())
}

// NewClientWithExecutor creates a Client with a custom executor.
func NewClientWithExecutor(repoPath string, logger common.Logger, executor CommandExecutor) *Client {
	return &Client{
		repoPath: repoPath,
		logger:   logger,
		executor: executor,
	}
}

// IsRepository checks if the given path is a git repository.
func IsRepository(path string) (bool, error) {
	executor := NewExecExecutor()
	// Utility function, context cancellation is not a concern here
	ctx := context.Background()
	err := executor.Execute(ctx, "git", "-C", path, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		// Exit code 128 is git's generic fatal error code - for this command
		// it typically means the directory is not part of a git repository.
		if ExitCode(err) == 128 {
			return false, nil
		}

		// Unexpected failure (git binary missing, permissions, etc)
		return false, err
	}
	return true, nil
}

// HasUnstagedChanges reports whether the working tree differs from the index.
func (c *Client) HasUnstagedChanges(ctx context.Context) (bool, error) {
	return c.quietDiff(ctx, "diff", "--quiet")
}

// HasStagedChanges reports whether the index differs from HEAD.
func (c *Client) HasStagedChanges(ctx context.Context) (bool, error) {
	return c.quietDiff(ctx, "diff", "--cached", "--quiet")
}

// quietDiff runs a git diff --quiet variant: exit code 0 means clean,
// exit code 1 means differences exist, anything else is a real failure.
func (c *Client) quietDiff(ctx context.Context, args ...string) (bool, error) {
	err := c.run(ctx, args...)
	if err == nil {
		return false, nil
	}
	if ExitCode(err) == 1 {
		return true, nil
	}
	return false, err
}

// Commit stages exactly the given paths and commits them with the message.
func (c *Client) Commit(ctx context.Context, message string, paths []string) error {
	args := append([]string{"commit", "-m", message, "--"}, paths...)
	if err := c.run(ctx, args...); err != nil {
		return err
	}
	c.logger.Info("Created commit %q touching %s", message, strings.Join(paths, ", "))
	return nil
}

// TagExists checks if a tag with the given name exists. show-ref exits
// with code 1 when the ref is absent; anything else is a real failure.
func (c *Client) TagExists(ctx context.Context, name string) (bool, error) {
	err := c.run(ctx, "show-ref", "--verify", "--quiet", "refs/tags/"+name)
	if err == nil {
		return true, nil
	}
	if ExitCode(err) == 1 {
		return false, nil
	}
	return false, err
}

// CreateAnnotatedTag creates an annotated tag with the given name and message.
func (c *Client) CreateAnnotatedTag(ctx context.Context, name, message string) error {
	if err := c.run(ctx, "tag", "-a", name, "-m", message); err != nil {
		return err
	}
	c.logger.Info("Created annotated tag %s", name)
	return nil
}

// CurrentBranch returns the name of the current git branch.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	output, err := c.runWithOutput(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// run executes a git command in the repository directory with context.
func (c *Client) run(ctx context.Context, args ...string) error {
	allArgs := append([]string{"-C", c.repoPath}, args...)
	return c.executor.Execute(ctx, "git", allArgs...)
}

// runWithOutput executes a git command and returns its output with context.
func (c *Client) runWithOutput(ctx context.Context, args ...string) (string, error) {
	allArgs := append([]string{"-C", c.repoPath}, args...)
	return c.executor.ExecuteWithOutput(ctx, "git", allArgs...)
}
