// Package batching partitions ordered path lists into bounded batches and drives
// them sequentially through stage and commit actions.
//
// Partition computes batch boundaries, Runner applies the injected actions to
// each batch in ascending order with a cancellable delay between batches, and
// RunObserver receives progress and dry-run preview notifications.
package batching
