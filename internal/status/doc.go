// Package status inspects a work tree and decides whether its pending changes warrant batching.
//
// ParsePorcelain classifies `git status --porcelain` output into untracked, added, and modified entries.
// Analyzer compares the resulting file count with the configured batch size and recommends how many batches a
// staging run would need.
package status
