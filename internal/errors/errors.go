package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors that can be used with errors.Is() for error type checking
var (
	// ErrNotGitRepository indicates the target path is not a git repository
	ErrNotGitRepository = errors.New("not a git repository")

	// ErrUnstagedChanges indicates the working tree has uncommitted changes
	ErrUnstagedChanges = errors.New("unstaged changes in working tree")

	// ErrStagedChanges indicates the staging area is not empty
	ErrStagedChanges = errors.New("staged but uncommitted changes present")

	// ErrPatternNotFound indicates a target file has no line matching its marker
	ErrPatternNotFound = errors.New("version marker not found")

	// ErrGitOperationFailed indicates a git command returned an error
	ErrGitOperationFailed = errors.New("git operation failed")

	// ErrInvalidConfiguration indicates an invalid or conflicting user configuration
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// New creates a new error with the given message.
// This is a convenience function that wraps errors.New.
func New(message string) error {
	return errors.New(message)
}

// Errorf creates a new formatted error.
// This is a convenience function that wraps fmt.Errorf.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Wrap wraps an error with a message for better context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message for better context.
func Wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether target is in err's chain.
// This is a convenience function that wraps errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience function that wraps errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// DirtyKind distinguishes the two ways a repository can fail the
// release precondition.
type DirtyKind int

const (
	// DirtyUnstaged means the working tree differs from the index.
	DirtyUnstaged DirtyKind = iota

	// DirtyStaged means the index differs from HEAD.
	DirtyStaged
)

// String returns a short human-readable name for the dirty kind.
func (k DirtyKind) String() string {
	if k == DirtyStaged {
		return "staged"
	}
	return "unstaged"
}

// DirtyWorkingTreeError reports that the repository failed the clean-tree
// precondition. Kind tells whether the offending changes were unstaged or
// staged, which maps to distinct process exit codes.
type DirtyWorkingTreeError struct {
	Kind DirtyKind
}

// Error implements the error interface.
func (e *DirtyWorkingTreeError) Error() string {
	if e.Kind == DirtyStaged {
		return "staged but uncommitted changes present, commit or unstage them first"
	}
	return "unstaged changes in working tree, commit or stash them first"
}

// Unwrap returns the matching sentinel for use with errors.Is.
func (e *DirtyWorkingTreeError) Unwrap() error {
	if e.Kind == DirtyStaged {
		return ErrStagedChanges
	}
	return ErrUnstagedChanges
}

// NewDirtyWorkingTreeError creates a DirtyWorkingTreeError of the given kind.
func NewDirtyWorkingTreeError(kind DirtyKind) *DirtyWorkingTreeError {
	return &DirtyWorkingTreeError{Kind: kind}
}

// PatternNotFoundError reports that a target file contained no line
// matching its version marker pattern. Files rewritten before this
// point stay rewritten.
type PatternNotFoundError struct {
	File    string
	Pattern string
}

// Error implements the error interface.
func (e *PatternNotFoundError) Error() string {
	return fmt.Sprintf("no line matching %q in %s", e.Pattern, e.File)
}

// Unwrap returns ErrPatternNotFound for use with errors.Is.
func (e *PatternNotFoundError) Unwrap() error {
	return ErrPatternNotFound
}

// NewPatternNotFoundError creates a PatternNotFoundError for the given file.
func NewPatternNotFoundError(file, pattern string) *PatternNotFoundError {
	return &PatternNotFoundError{File: file, Pattern: pattern}
}

// CommitError reports a failed commit step. Paths holds the files that
// were staged for the commit.
type CommitError struct {
	Paths []string
	Err   error
}

// Error implements the error interface.
func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to commit release files: %v", e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *CommitError) Unwrap() error {
	return e.Err
}

// NewCommitError creates a CommitError for the given paths.
func NewCommitError(paths []string, err error) *CommitError {
	return &CommitError{Paths: paths, Err: err}
}

// TagError reports a failed tag step. Exists is true when the failure
// was detected as a pre-existing tag of the same name.
type TagError struct {
	Tag    string
	Exists bool
	Err    error
}

// Error implements the error interface.
func (e *TagError) Error() string {
	if e.Exists {
		return fmt.Sprintf("tag %s already exists", e.Tag)
	}
	return fmt.Sprintf("failed to create tag %s: %v", e.Tag, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *TagError) Unwrap() error {
	return e.Err
}

// NewTagError creates a TagError for the given tag name.
func NewTagError(tag string, exists bool, err error) *TagError {
	return &TagError{Tag: tag, Exists: exists, Err: err}
}

// GitError represents an error that occurred during a Git operation.
// It captures the command details, underlying error, and command output.
type GitError struct {
	Operation string
	Args      []string
	Err       error
	Output    string
}

// Error implements the error interface with a detailed, user-friendly error message.
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError creates a new GitError with the given parameters.
func NewGitError(operation string, args []string, err error, output string) *GitError {
	return &GitError{
		Operation: operation,
		Args:      args,
		Err:       err,
		Output:    output,
	}
}

// ConfigError represents an error in the application configuration.
// It includes the parameter name, its value if available, and the underlying error.
type ConfigError struct {
	Parameter string
	Value     interface{}
	Err       error
}

// Error implements the error interface with details about the invalid configuration.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("configuration error for %s = %v: %v", e.Parameter, e.Value, e.Err)
	}
	return fmt.Sprintf("configuration error for %s: %v", e.Parameter, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError with the given parameters.
func NewConfigError(parameter string, value interface{}, err error) *ConfigError {
	return &ConfigError{
		Parameter: parameter,
		Value:     value,
		Err:       err,
	}
}
