package config

import (
	"crypto/sha256"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/CountESS-Project/countess-release/internal/errors"
)

const (
	// DefaultProduct is the product name embedded in the readme marker
	// and the tag message.
	DefaultProduct = "CountESS"

	// DefaultTargetsFile is picked up from the repository root when present.
	DefaultTargetsFile = ".countess-release.yml"
)

// TargetSpec describes one file whose version marker line gets rewritten.
// Pattern is an anchored regular expression matched against whole lines;
// Replace is a fmt template with a single %s for the new version.
type TargetSpec struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

// targetsFile is the on-disk schema of the optional YAML targets file.
type targetsFile struct {
	Product string       `yaml:"product"`
	Targets []TargetSpec `yaml:"targets"`
}

// Config holds all countess-release application settings
type Config struct {
	// Release inputs
	Version  string // the new version, from the positional argument
	RepoPath string
	Product  string

	// Target overrides
	TargetsFile string
	Targets     []TargetSpec // empty means the built-in target set

	// Behavior
	Validate bool // require the version to be valid semver

	// User experience
	Verbose bool

	// Debugging
	Debug   bool
	LogFile string

	// Special flags
	ShowVersion bool

	// Build metadata
	VersionInfo VersionInfo
}

// VersionInfo contains build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Product: DefaultProduct,
		Verbose: true,

		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// LoadFromEnvironment updates config from environment variables
func (c *Config) LoadFromEnvironment() {
	c.RepoPath = getEnvString("REPO_PATH", c.RepoPath)
	c.Product = getEnvString("PRODUCT_NAME", c.Product)
	c.TargetsFile = getEnvString("TARGETS_FILE", c.TargetsFile)
	c.Validate = getEnvBool("VALIDATE", c.Validate)
	c.Verbose = getEnvBool("VERBOSE", c.Verbose)
	c.Debug = getEnvBool("DEBUG", c.Debug)
	c.LogFile = getEnvString("LOG_FILE", c.LogFile)
}

// SetupFlags sets up command-line flags to override config values
func (c *Config) SetupFlags(fs *flag.FlagSet) {
	// Save original value for the inverted flag (for CLI ergonomics)
	origVerbose := c.Verbose

	fs.StringVar(&c.RepoPath, "repo", c.RepoPath, "Path to repository (default: current directory)")
	fs.StringVar(&c.Product, "product", c.Product, "Product name used in the readme marker and tag message")
	fs.StringVar(&c.TargetsFile, "targets", c.TargetsFile, "YAML file defining the target files (default: built-in set)")
	fs.BoolVar(&c.Validate, "validate", c.Validate, "Require the version argument to be valid semver")
	fs.BoolVar(&c.Verbose, "quiet", !origVerbose, "Hide informational messages")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug logging")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Path to log file (default: ~/.local/share/countess-release/logs/countess-release-{repo-hash}.log)")
	fs.BoolVar(&c.ShowVersion, "version", c.ShowVersion, "Print version information and exit")
}

// ParseFlags parses the command-line arguments and updates the config.
// The single positional argument is the version string to release.
func (c *Config) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("countess-release", flag.ContinueOnError)

	c.SetupFlags(fs)

	if err := fs.Parse(args); err != nil {
		return errors.NewConfigError("flags", nil, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to parse command-line arguments: %v", err)))
	}

	// Invert the quiet flag back to Verbose after parsing
	c.Verbose = !c.Verbose

	rest := fs.Args()
	switch {
	case len(rest) == 0 && !c.ShowVersion:
		return errors.NewConfigError("version", nil, errors.Wrap(errors.ErrInvalidConfiguration, "a version argument is required"))
	case len(rest) > 1:
		return errors.NewConfigError("version", strings.Join(rest, " "), errors.Wrap(errors.ErrInvalidConfiguration, "exactly one version argument is expected"))
	case len(rest) == 1:
		c.Version = rest[0]
	}

	return nil
}

// Finalize validates and finalizes the configuration
func (c *Config) Finalize() error {
	if c.RepoPath == "" {
		var err error
		c.RepoPath, err = os.Getwd()
		if err != nil {
			return errors.NewConfigError("repoPath", "", errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to get current directory: %v", err)))
		}
	}

	absRepoPath, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return errors.NewConfigError("repoPath", c.RepoPath, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to resolve absolute path: %v", err)))
	}
	c.RepoPath = absRepoPath

	if !c.ShowVersion {
		if c.Version == "" {
			return errors.NewConfigError("version", nil, errors.Wrap(errors.ErrInvalidConfiguration, "version must not be empty"))
		}
		if c.Validate && !semver.IsValid("v"+strings.TrimPrefix(c.Version, "v")) {
			return errors.NewConfigError("version", c.Version, errors.Wrap(errors.ErrInvalidConfiguration, "not a valid semantic version"))
		}
	}

	if err := c.loadTargets(); err != nil {
		return err
	}

	if c.LogFile == "" {
		// Follow XDG Base Directory Specification
		logDir := os.Getenv("XDG_DATA_HOME")
		if logDir == "" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				logDir = filepath.Join(homeDir, ".local", "share")
			} else {
				// Fallback to the temp directory if home dir can't be determined
				logDir = os.TempDir()
			}
		}

		// A unique identifier for the repository
		repoHash := fmt.Sprintf("%x", sha256OfString(c.RepoPath)[:8])

		releaseLogDir := filepath.Join(logDir, "countess-release", "logs")
		c.LogFile = filepath.Join(releaseLogDir, fmt.Sprintf("countess-release-%s.log", repoHash))
	}

	return nil
}

// loadTargets reads the targets file when one is configured, or the
// default one when it exists at the repository root. Absent files are
// only an error when the user named one explicitly.
func (c *Config) loadTargets() error {
	path := c.TargetsFile
	explicit := path != ""
	if !explicit {
		path = filepath.Join(c.RepoPath, DefaultTargetsFile)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(c.RepoPath, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return errors.NewConfigError("targets", path, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to read targets file: %v", err)))
	}

	var tf targetsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return errors.NewConfigError("targets", path, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to parse targets file: %v", err)))
	}

	if len(tf.Targets) == 0 {
		return errors.NewConfigError("targets", path, errors.Wrap(errors.ErrInvalidConfiguration, "targets file defines no targets"))
	}

	for i, target := range tf.Targets {
		if target.Path == "" {
			return errors.NewConfigError("targets", path, errors.Wrapf(errors.ErrInvalidConfiguration, "target %d has no path", i))
		}
		if _, err := regexp.Compile(target.Pattern); err != nil {
			return errors.NewConfigError("targets", target.Pattern, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("invalid pattern for %s: %v", target.Path, err)))
		}
		if !strings.Contains(target.Replace, "%s") {
			return errors.NewConfigError("targets", target.Replace, errors.Wrapf(errors.ErrInvalidConfiguration, "replacement for %s has no %%s placeholder", target.Path))
		}
	}

	// The file's product name applies unless a flag or env already set one
	if tf.Product != "" && c.Product == DefaultProduct {
		c.Product = tf.Product
	}
	c.Targets = tf.Targets

	return nil
}

// getEnvString returns an environment variable string or a default value
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvBool returns an environment variable as bool or a default value
func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		valueLower := strings.ToLower(valueStr)
		if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
			return true
		}
		if valueLower == "false" || valueLower == "0" || valueLower == "no" {
			return false
		}
		// For any other value, fall back to default
	}
	return defaultValue
}

// sha256OfString returns the SHA256 hash of a string
func sha256OfString(input string) []byte {
	hash := sha256.Sum256([]byte(input))
	return hash[:]
}
