// Package staging stages, and optionally commits, the files of a work tree in bounded batches.
//
// GitActions supplies the git add and git commit actions a batching.Runner drives. Service resolves the target
// directory, confirms it is a work tree, discovers files, and runs the batches. The add and commit commands
// expose the service through Cobra.
package staging
