package bump

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CountESS-Project/countess-release/internal/common"
	"github.com/CountESS-Project/countess-release/internal/errors"
)

// GitClient is the version-control contract the release procedure consumes.
// It matches internal/git.Client and exists so tests can substitute a fake.
type GitClient interface {
	HasUnstagedChanges(ctx context.Context) (bool, error)
	HasStagedChanges(ctx context.Context) (bool, error)
	CurrentBranch(ctx context.Context) (string, error)
	Commit(ctx context.Context, message string, paths []string) error
	TagExists(ctx context.Context, name string) (bool, error)
	CreateAnnotatedTag(ctx context.Context, name, message string) error
}

// step names the current position in the strictly linear release sequence.
// Any failure halts the run at its current step.
type step int

const (
	stepCheckingClean step = iota
	stepSubstituting
	stepCommitting
	stepTagging
	stepDone
)

// String returns a short human-readable name for the step.
func (s step) String() string {
	switch s {
	case stepCheckingClean:
		return "checking working tree"
	case stepSubstituting:
		return "rewriting version markers"
	case stepCommitting:
		return "committing"
	case stepTagging:
		return "tagging"
	default:
		return "done"
	}
}

// Config contains configuration for a release bump.
type Config struct {
	// RepoPath is the repository root; target paths resolve against it.
	RepoPath string

	// Version is the caller-supplied version token. It is treated as
	// opaque unless validation was requested at the config layer.
	Version string

	// Product is embedded in the annotated tag message.
	Product string
}

// Result describes a completed bump.
type Result struct {
	Version       string
	Branch        string
	TagName       string
	CommitMessage string
	UpdatedFiles  []string
}

// Bumper performs a guarded, one-shot version bump: it verifies a clean
// working tree, rewrites the version marker in each target file, commits
// those files, and creates an annotated tag naming the new version.
//
// The sequence is not transactional. A failure while rewriting leaves
// earlier rewrites in place; that is accepted behavior, the working tree
// state is inspectable through git afterwards.
type Bumper struct {
	config  Config
	targets []Target
	logger  common.Logger
	git     GitClient
	state   step
}

// New creates a Bumper for the given targets.
func New(config Config, targets []Target, logger common.Logger, git GitClient) *Bumper {
	return &Bumper{
		config:  config,
		targets: targets,
		logger:  logger,
		git:     git,
	}
}

// TagName returns the tag the bumper will create: "v" plus the version.
func (b *Bumper) TagName() string {
	return "v" + b.config.Version
}

// CommitMessage returns the commit message for the bump commit.
func (b *Bumper) CommitMessage() string {
	return "Bump to v" + b.config.Version
}

// tagMessage returns the annotated tag message.
func (b *Bumper) tagMessage() string {
	return fmt.Sprintf("%s version %s", b.config.Product, b.config.Version)
}

// Run executes the release sequence. Each transition is gated by success
// of the prior step; the first failure halts the run.
func (b *Bumper) Run(ctx context.Context) (*Result, error) {
	b.state = stepCheckingClean
	b.logger.Info("Release bump to %s started (%s)", b.config.Version, b.state)
	if err := b.ensureClean(ctx); err != nil {
		return nil, err
	}
	branch, err := b.git.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	b.logger.Info("Releasing from branch %s", branch)
	// Re-running with an already released version must fail as a tag
	// collision, not as an empty commit three steps later.
	if err := b.ensureTagAvailable(ctx); err != nil {
		return nil, err
	}

	b.state = stepSubstituting
	updated, err := b.rewriteTargets()
	if err != nil {
		return nil, err
	}

	b.state = stepCommitting
	if err := b.commit(ctx, updated); err != nil {
		return nil, err
	}

	b.state = stepTagging
	if err := b.tag(ctx); err != nil {
		return nil, err
	}

	b.state = stepDone
	b.logger.Success("Bumped %s to %s and created tag %s", b.config.Product, b.config.Version, b.TagName())

	return &Result{
		Version:       b.config.Version,
		Branch:        branch,
		TagName:       b.TagName(),
		CommitMessage: b.CommitMessage(),
		UpdatedFiles:  updated,
	}, nil
}

// ensureClean verifies the release precondition: no unstaged and no staged
// changes. A dirty repository aborts before any file is touched.
func (b *Bumper) ensureClean(ctx context.Context) error {
	unstaged, err := b.git.HasUnstagedChanges(ctx)
	if err != nil {
		return err
	}
	if unstaged {
		return errors.NewDirtyWorkingTreeError(errors.DirtyUnstaged)
	}

	staged, err := b.git.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if staged {
		return errors.NewDirtyWorkingTreeError(errors.DirtyStaged)
	}

	b.logger.Info("Working tree and staging area are clean")
	return nil
}

// rewriteTargets rewrites the version marker line in every target file and
// returns the repository-relative paths that were updated. There is no
// rollback: files rewritten before a failure stay rewritten.
func (b *Bumper) rewriteTargets() ([]string, error) {
	updated := make([]string, 0, len(b.targets))
	for _, target := range b.targets {
		if err := b.rewriteTarget(target); err != nil {
			return nil, err
		}
		updated = append(updated, target.Path)
	}
	return updated, nil
}

// rewriteTarget replaces the marker line in a single file, in place,
// preserving the file's permission bits.
func (b *Bumper) rewriteTarget(target Target) error {
	path := filepath.Join(b.config.RepoPath, target.Path)

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", target.Path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", target.Path)
	}

	lines := strings.Split(string(data), "\n")
	replacement := target.Render(b.config.Version)

	matched := 0
	for i, line := range lines {
		if target.Pattern.MatchString(line) {
			lines[i] = replacement
			matched++
		}
	}
	if matched == 0 {
		return errors.NewPatternNotFoundError(target.Path, target.Pattern.String())
	}
	if matched > 1 {
		b.logger.Warning("Pattern %q matched %d lines in %s, rewrote all of them", target.Pattern, matched, target.Path)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "failed to write %s", target.Path)
	}

	b.logger.Info("Rewrote %s in %s to %q", target.Name, target.Path, replacement)
	return nil
}

// commit stages exactly the updated files and creates the bump commit.
func (b *Bumper) commit(ctx context.Context, paths []string) error {
	if err := b.git.Commit(ctx, b.CommitMessage(), paths); err != nil {
		return errors.NewCommitError(paths, err)
	}
	b.logger.InfoToUser("Committed %s with message %q", strings.Join(paths, ", "), b.CommitMessage())
	return nil
}

// ensureTagAvailable reports a pre-existing release tag before any file
// is touched. git would reject the tag anyway, but only after the
// substitution and commit steps had already mutated the repository.
func (b *Bumper) ensureTagAvailable(ctx context.Context) error {
	name := b.TagName()
	exists, err := b.git.TagExists(ctx, name)
	if err != nil {
		return errors.NewTagError(name, false, err)
	}
	if exists {
		return errors.NewTagError(name, true, errors.ErrGitOperationFailed)
	}
	return nil
}

// tag creates the annotated release tag.
func (b *Bumper) tag(ctx context.Context) error {
	name := b.TagName()
	if err := b.git.CreateAnnotatedTag(ctx, name, b.tagMessage()); err != nil {
		return errors.NewTagError(name, false, err)
	}
	return nil
}
