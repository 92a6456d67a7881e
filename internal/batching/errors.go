package batching

import (
	"errors"
	"fmt"
)

const (
	invalidConfigurationMessageConstant      = "invalid batch configuration"
	emptyInputMessageConstant                = "no files to process"
	actionFailedTemplateConstant             = "%s failed for batch %d/%d (%d files starting at %s): %v"
	actionFailedWithoutPathsTemplateConstant = "%s failed for batch %d/%d: %v"
)

// ErrInvalidConfiguration indicates a non-positive batch size or an otherwise unusable configuration.
var ErrInvalidConfiguration = errors.New(invalidConfigurationMessageConstant)

// ErrEmptyInput indicates a run was requested for an empty file list.
var ErrEmptyInput = errors.New(emptyInputMessageConstant)

// ActionPhase identifies which action failed for a batch.
type ActionPhase string

// Supported action phases.
const (
	ActionPhaseStage  ActionPhase = ActionPhase("stage")
	ActionPhaseCommit ActionPhase = ActionPhase("commit")
)

// ActionFailedError reports the batch whose stage or commit action failed.
// BatchIndex is zero-based; Batch holds the paths of the failed batch so callers can resume from it.
type ActionFailedError struct {
	Phase      ActionPhase
	BatchIndex int
	BatchCount int
	Batch      []string
	Cause      error
}

// Error describes the failed action.
func (failure ActionFailedError) Error() string {
	if len(failure.Batch) == 0 {
		return fmt.Sprintf(actionFailedWithoutPathsTemplateConstant, failure.Phase, failure.BatchIndex+1, failure.BatchCount, failure.Cause)
	}
	return fmt.Sprintf(actionFailedTemplateConstant, failure.Phase, failure.BatchIndex+1, failure.BatchCount, len(failure.Batch), failure.Batch[0], failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure ActionFailedError) Unwrap() error {
	return failure.Cause
}
