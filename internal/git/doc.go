// Package git provides the git operations countess-release depends on.
//
// The version-control system is treated as an external collaborator: this
// package shells out to the git binary instead of reimplementing repository
// access. Client exposes exactly the contract the release procedure
// consumes - clean-tree queries for the working tree and the staging area,
// committing named paths, and creating annotated tags.
//
// Commands run through the CommandExecutor interface so tests can inject a
// mock executor and assert on the exact git invocations without spawning
// processes.
package git
