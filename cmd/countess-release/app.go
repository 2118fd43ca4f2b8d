package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/CountESS-Project/countess-release/internal/bump"
	"github.com/CountESS-Project/countess-release/internal/common"
	"github.com/CountESS-Project/countess-release/internal/config"
	internalErrors "github.com/CountESS-Project/countess-release/internal/errors"
	"github.com/CountESS-Project/countess-release/internal/git"
	"github.com/CountESS-Project/countess-release/internal/logger"
)

// Bumper performs the release procedure
type Bumper interface {
	Run(ctx context.Context) (*bump.Result, error)
}

// Logger alias to common.Logger
type Logger = common.Logger

// AppOptions contains app configuration and dependencies
type AppOptions struct {
	// Required
	Config *config.Config

	// Optional components
	Logger Logger
	Bumper Bumper

	// I/O dependencies
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	Exit         func(code int)
	ExecLookPath func(file string) (string, error)
	IsRepository func(string) (bool, error)
}

// App is the main countess-release application
type App struct {
	Config *config.Config
	Logger Logger
	Bumper Bumper

	// I/O streams
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	exit         func(code int)
	execLookPath func(file string) (string, error)
	isRepository func(string) (bool, error)
}

// NewDefaultApp creates an App with standard dependencies
func NewDefaultApp(versionInfo config.VersionInfo) *App {
	cfg := config.New()
	cfg.VersionInfo = versionInfo
	cfg.LoadFromEnvironment()

	opts := AppOptions{
		Config:       cfg,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Exit:         os.Exit,
		ExecLookPath: exec.LookPath,
		IsRepository: git.IsRepository,
	}

	return NewApp(opts)
}

// NewApp creates an App with custom dependencies
func NewApp(opts AppOptions) *App {
	if opts.Config == nil {
		panic("Config is required in AppOptions")
	}

	app := &App{
		Config:       opts.Config,
		Logger:       opts.Logger,
		Bumper:       opts.Bumper,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		exit:         opts.Exit,
		execLookPath: opts.ExecLookPath,
		isRepository: opts.IsRepository,
	}

	// Set defaults for nil dependencies
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	if app.execLookPath == nil {
		app.execLookPath = exec.LookPath
	}
	if app.isRepository == nil {
		app.isRepository = git.IsRepository
	}

	return app
}

// Initialize sets up components not provided during construction
func (a *App) Initialize() error {
	if err := a.Config.Finalize(); err != nil {
		// Config.Finalize() already returns a properly wrapped error
		if internalErrors.Is(err, internalErrors.ErrInvalidConfiguration) {
			return err
		}
		return internalErrors.Wrap(internalErrors.ErrInvalidConfiguration, err.Error())
	}

	if a.Logger == nil {
		a.Logger = logger.New(a.Config.Debug, a.Config.LogFile, a.Config.Verbose)
	}

	if a.Bumper == nil {
		targets := bump.DefaultTargets(a.Config.Product)
		if len(a.Config.Targets) > 0 {
			compiled, err := bump.CompileTargets(a.Config.Targets)
			if err != nil {
				return err
			}
			targets = compiled
		}

		bumpConfig := bump.Config{
			RepoPath: a.Config.RepoPath,
			Version:  a.Config.Version,
			Product:  a.Config.Product,
		}
		gitClient := git.NewClient(a.Config.RepoPath, a.Logger)
		a.Bumper = bump.New(bumpConfig, targets, a.Logger, gitClient)
	}

	return nil
}

// Run executes the application with the given context.
// Handles special flags and runs the release procedure.
func (a *App) Run(ctx context.Context) error {
	if err := a.Initialize(); err != nil {
		return err
	}

	if a.Config.ShowVersion {
		a.ShowVersion()
		return nil
	}

	// Verify prerequisites
	if err := a.checkRequiredCommands(); err != nil {
		return err
	}

	isRepo, err := a.isRepository(a.Config.RepoPath)
	if err != nil {
		a.Logger.Warning("Failed to check if path is a git repository: %v", err)
		return internalErrors.Wrap(internalErrors.ErrGitOperationFailed, err.Error())
	}
	if !isRepo {
		return internalErrors.ErrNotGitRepository
	}
	a.Logger.Info("Git repository verified at %s", a.Config.RepoPath)

	result, err := a.Bumper.Run(ctx)
	if err != nil {
		return err
	}

	if a.Config.Verbose {
		a.Logger.StatusMessage("Files updated:")
		for _, f := range result.UpdatedFiles {
			a.Logger.StatusMessage("  %s", f)
		}
		a.Logger.StatusMessage("Branch:  %s", result.Branch)
		a.Logger.StatusMessage("Commit:  %s", result.CommitMessage)
		a.Logger.StatusMessage("Tag:     %s", result.TagName)
	}

	return nil
}

// ShowVersion displays version information
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "countess-release %s (%s) built on %s\n",
		a.Config.VersionInfo.Version,
		a.Config.VersionInfo.Commit,
		a.Config.VersionInfo.Date)
}

// checkRequiredCommands verifies git is available in PATH
func (a *App) checkRequiredCommands() error {
	_, err := a.execLookPath("git")
	if err != nil {
		return internalErrors.New("git is not found in PATH, please install it and try again")
	}
	return nil
}

// Close releases resources held by the App
func (a *App) Close() error {
	if a.Logger != nil {
		if l, ok := a.Logger.(*logger.DefaultLogger); ok && l != nil {
			return l.Close()
		}
	}
	return nil
}

// ExitCodeFor maps an error from the release procedure to the process
// exit code. Unstaged and staged precondition failures get distinct
// codes; downstream git failures propagate the git exit code when one
// is available.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case internalErrors.Is(err, internalErrors.ErrUnstagedChanges):
		return 1
	case internalErrors.Is(err, internalErrors.ErrStagedChanges):
		return 2
	}

	if code := git.ExitCode(err); code > 0 {
		return code
	}
	return 1
}
