package batching

import "time"

// PreviewLimit bounds the number of paths listed in a dry-run batch preview.
const PreviewLimit = 5

// BatchProgress describes the batch an observation refers to. BatchIndex is zero-based.
type BatchProgress struct {
	BatchIndex int
	BatchCount int
	BatchSize  int
}

// Number returns the one-based batch position used in user-facing output.
func (progress BatchProgress) Number() int {
	return progress.BatchIndex + 1
}

// IsLast reports whether the observation refers to the final batch.
func (progress BatchProgress) IsLast() bool {
	return progress.BatchIndex == progress.BatchCount-1
}

// BatchPreview lists the leading paths of a batch skipped by a dry run.
type BatchPreview struct {
	BatchProgress
	Paths          []string
	RemainingCount int
}

// RunObserver receives progress notifications from a Runner. Implementations must not block for long;
// they cannot fail the run.
type RunObserver interface {
	BatchStarted(progress BatchProgress)
	BatchCompleted(progress BatchProgress)
	BatchPreviewed(preview BatchPreview)
	CommitPreviewed(progress BatchProgress, message string)
	DelayStarted(progress BatchProgress, delay time.Duration)
}

type noopRunObserver struct{}

func (noopRunObserver) BatchStarted(BatchProgress)                {}
func (noopRunObserver) BatchCompleted(BatchProgress)              {}
func (noopRunObserver) BatchPreviewed(BatchPreview)               {}
func (noopRunObserver) CommitPreviewed(BatchProgress, string)     {}
func (noopRunObserver) DelayStarted(BatchProgress, time.Duration) {}

func newBatchPreview(progress BatchProgress, batch []string) BatchPreview {
	previewCount := len(batch)
	if previewCount > PreviewLimit {
		previewCount = PreviewLimit
	}
	previewPaths := append([]string{}, batch[:previewCount]...)
	return BatchPreview{
		BatchProgress:  progress,
		Paths:          previewPaths,
		RemainingCount: len(batch) - previewCount,
	}
}
