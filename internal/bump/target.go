package bump

import (
	"fmt"
	"regexp"

	"github.com/CountESS-Project/countess-release/internal/config"
	"github.com/CountESS-Project/countess-release/internal/errors"
)

// Target is one file whose version marker line gets rewritten during a
// release. Pattern is matched against whole lines; Replace carries a
// single %s that receives the new version.
type Target struct {
	Name    string
	Path    string
	Pattern *regexp.Regexp
	Replace string
}

// Render produces the replacement line for the given version.
func (t Target) Render(version string) string {
	return fmt.Sprintf(t.Replace, version)
}

// DefaultTargets returns the built-in target set: the readme heading,
// the package version constant, and the citation metadata file.
func DefaultTargets(product string) []Target {
	heading := regexp.QuoteMeta("# " + product)
	return []Target{
		{
			Name:    "readme heading",
			Path:    "README.md",
			Pattern: regexp.MustCompile(`^` + heading + `(\s.*)?$`),
			Replace: "# " + product + " %s",
		},
		{
			Name:    "version constant",
			Path:    "countess/__init__.py",
			Pattern: regexp.MustCompile(`^VERSION = .*$`),
			Replace: `VERSION = "%s"`,
		},
		{
			Name:    "citation metadata",
			Path:    "CITATION.cff",
			Pattern: regexp.MustCompile(`^version:.*$`),
			Replace: "version: %s",
		},
	}
}

// CompileTargets converts user-supplied target specs into runnable targets.
func CompileTargets(specs []config.TargetSpec) ([]Target, error) {
	targets := make([]Target, 0, len(specs))
	for _, spec := range specs {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, errors.NewConfigError("targets", spec.Pattern, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
		}
		name := spec.Name
		if name == "" {
			name = spec.Path
		}
		targets = append(targets, Target{
			Name:    name,
			Path:    spec.Path,
			Pattern: re,
			Replace: spec.Replace,
		})
	}
	return targets, nil
}
