// Package gitrepo contains helpers for interrogating Git repositories.
//
// It defines the GitExecutor contract shared by the status and staging
// packages, WorkTreeVerifier, which confirms a directory belongs to a work
// tree before any batch touches it, and IgnoredPathFilter, which removes
// untracked paths that git add would refuse because of ignore rules.
package gitrepo
