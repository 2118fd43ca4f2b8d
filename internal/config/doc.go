// Package config handles configuration for the countess-release application.
//
// Settings are resolved in three layers, each overriding the previous one:
// built-in defaults, environment variables, then command-line flags. The
// single positional argument is the version string to release. Finalize
// validates the result, resolves the repository path, optionally enforces
// semver shape on the version, and loads the YAML targets file that can
// replace the built-in target set.
//
// # Targets file
//
// A targets file lists the files whose version marker line gets rewritten:
//
//	product: CountESS
//	targets:
//	  - name: readme heading
//	    path: README.md
//	    pattern: '^# CountESS\b.*$'
//	    replace: '# CountESS %s'
//
// When no -targets flag is given, .countess-release.yml at the repository
// root is picked up automatically if it exists.
package config
