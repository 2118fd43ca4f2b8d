// Package main implements countess-release, the release-bumping tool for
// the CountESS project.
//
// countess-release performs a guarded, one-shot version bump: it verifies
// the working tree and staging area are clean, rewrites the version marker
// line in each target file, commits exactly those files with the message
// "Bump to v<version>", and creates an annotated tag v<version> whose
// message names the product and version.
//
// # Basic Usage
//
//	countess-release 1.2.3                # bump to 1.2.3, commit, tag v1.2.3
//	countess-release -repo /path 1.2.3    # run against another repository
//	countess-release -validate 1.2.3      # additionally require semver shape
//	countess-release -targets rel.yml 2.0 # use a custom target set
//
// # Exit Codes
//
//	0  success
//	1  unstaged changes present (abort, no mutation)
//	2  staged changes present (abort, no mutation)
//	n  downstream git failure, propagating git's exit code where available
//
// The procedure is not transactional: a failure while rewriting leaves
// files already rewritten in place, observable through git afterwards.
package main
