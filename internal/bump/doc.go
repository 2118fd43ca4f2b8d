// Package bump implements the release procedure of countess-release.
//
// A Bumper runs a strictly linear, one-shot sequence: verify the working
// tree and staging area are clean, rewrite the version marker line in each
// target file, commit exactly those files, and create an annotated tag
// named after the new version. The first failure halts the run; there are
// no retries and no rollback of files already rewritten.
//
// Targets describe the files to rewrite. The built-in set covers the
// CountESS repository layout (readme heading, package version constant,
// citation metadata); a YAML targets file can replace it, see the config
// package.
package bump
