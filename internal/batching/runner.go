package batching

import (
	"context"
	"fmt"
)

const (
	batchCommitMessageTemplateConstant = "%s (batch %d/%d)"
	missingStageActionTemplateConstant = "%w: stage action is required outside dry-run"
)

// StageAction stages the paths of a single batch.
type StageAction func(executionContext context.Context, batch []string) error

// CommitAction records the staged paths of a single batch under the provided message.
type CommitAction func(executionContext context.Context, batch []string, message string) error

// Actions bundles the side effects applied to each batch. A nil Commit selects stage-only mode.
type Actions struct {
	Stage         StageAction
	Commit        CommitAction
	CommitMessage string
}

// Summary describes a completed run.
type Summary struct {
	TotalItems int
	BatchCount int
	Committed  bool
	DryRun     bool
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithObserver attaches an observer for progress and preview notifications.
func WithObserver(observer RunObserver) RunnerOption {
	return func(runner *Runner) {
		if observer != nil {
			runner.observer = observer
		}
	}
}

// WithSleeper replaces the timer used between batches.
func WithSleeper(sleeper Sleeper) RunnerOption {
	return func(runner *Runner) {
		if sleeper != nil {
			runner.sleeper = sleeper
		}
	}
}

// Runner drives batches through stage and commit actions one at a time.
type Runner struct {
	configuration Configuration
	observer      RunObserver
	sleeper       Sleeper
}

// NewRunner validates the configuration and constructs a Runner.
func NewRunner(configuration Configuration, options ...RunnerOption) (*Runner, error) {
	if validationError := configuration.Validate(); validationError != nil {
		return nil, validationError
	}

	runner := &Runner{
		configuration: configuration,
		observer:      noopRunObserver{},
		sleeper:       TimerSleeper{},
	}
	for _, option := range options {
		if option != nil {
			option(runner)
		}
	}
	return runner, nil
}

// Configuration returns the configuration the runner was built with.
func (runner *Runner) Configuration() Configuration {
	return runner.configuration
}

// Run partitions items and processes every batch in order. The first failing action halts the run and is
// returned as an ActionFailedError; later batches are never attempted.
func (runner *Runner) Run(executionContext context.Context, items []string, actions Actions) (Summary, error) {
	if len(items) == 0 {
		return Summary{}, ErrEmptyInput
	}
	if !runner.configuration.DryRun && actions.Stage == nil {
		return Summary{}, fmt.Errorf(missingStageActionTemplateConstant, ErrInvalidConfiguration)
	}

	batches, partitionError := Partition(items, runner.configuration.BatchSize)
	if partitionError != nil {
		return Summary{}, partitionError
	}

	commitMode := actions.Commit != nil
	batchCount := len(batches)

	for batchIndex, batch := range batches {
		if contextError := executionContext.Err(); contextError != nil {
			return Summary{}, contextError
		}

		progress := BatchProgress{BatchIndex: batchIndex, BatchCount: batchCount, BatchSize: len(batch)}
		commitMessage := FormatCommitMessage(actions.CommitMessage, batchIndex, batchCount)

		if runner.configuration.Verbose {
			runner.observer.BatchStarted(progress)
		}

		if runner.configuration.DryRun {
			runner.observer.BatchPreviewed(newBatchPreview(progress, batch))
			if commitMode {
				runner.observer.CommitPreviewed(progress, commitMessage)
			}
		} else {
			if stageError := actions.Stage(executionContext, batch); stageError != nil {
				return Summary{}, newActionFailedError(ActionPhaseStage, progress, batch, stageError)
			}
			if commitMode {
				if commitError := actions.Commit(executionContext, batch, commitMessage); commitError != nil {
					return Summary{}, newActionFailedError(ActionPhaseCommit, progress, batch, commitError)
				}
			}
		}

		if runner.configuration.Verbose {
			runner.observer.BatchCompleted(progress)
		}

		if runner.configuration.DryRun || progress.IsLast() || runner.configuration.Delay <= 0 {
			continue
		}

		if runner.configuration.Verbose {
			runner.observer.DelayStarted(progress, runner.configuration.Delay)
		}
		if sleepError := runner.sleeper.Sleep(executionContext, runner.configuration.Delay); sleepError != nil {
			return Summary{}, sleepError
		}
	}

	return Summary{
		TotalItems: len(items),
		BatchCount: batchCount,
		Committed:  commitMode && !runner.configuration.DryRun,
		DryRun:     runner.configuration.DryRun,
	}, nil
}

// FormatCommitMessage appends the one-based batch position to message when the run spans several batches.
func FormatCommitMessage(message string, batchIndex int, batchCount int) string {
	if batchCount <= 1 {
		return message
	}
	return fmt.Sprintf(batchCommitMessageTemplateConstant, message, batchIndex+1, batchCount)
}

func newActionFailedError(phase ActionPhase, progress BatchProgress, batch []string, cause error) ActionFailedError {
	return ActionFailedError{
		Phase:      phase,
		BatchIndex: progress.BatchIndex,
		BatchCount: progress.BatchCount,
		Batch:      batch,
		Cause:      cause,
	}
}
