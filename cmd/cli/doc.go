// Package cli constructs the git-batch command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. It registers the analyze, add, commit, and profiles commands
// and exposes Execute for the binary entrypoint.
package cli
