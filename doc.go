// Package countessrelease is the release-bumping tool for CountESS.
//
// countess-release turns a CountESS release into a single guarded command:
// it checks that the working tree and staging area are clean, rewrites the
// version marker line in the readme heading, the package version constant,
// and the citation metadata, commits exactly those files, and creates an
// annotated tag naming the new version.
//
// # Quick Start
//
//	# From the CountESS repository root
//	countess-release 1.2.3
//
//	# The result: three rewritten files, one commit "Bump to v1.2.3",
//	# and an annotated tag v1.2.3 with message "CountESS version 1.2.3"
//
// # Key Behaviors
//
//   - Clean-Tree Guard: unstaged changes abort with exit code 1, staged
//     changes with exit code 2, before any file is touched
//   - No Rollback: a failure mid-sequence leaves earlier rewrites in
//     place; git history and git status show exactly what happened
//   - Opaque Versions: the version argument is not parsed or validated
//     unless -validate is given
//   - Custom Targets: a YAML targets file can replace the built-in set
//
// The command-line interface lives in cmd/countess-release; the release
// procedure itself is implemented by internal/bump.
package countessrelease
