package batching_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitbatch/internal/batching"
)

const (
	testCommitMessageConstant = "Bulk import"
	testDelayConstant         = 50 * time.Millisecond
)

type recordingActions struct {
	events        []string
	stagedBatches [][]string
	messages      []string
	failStageAt   int
	failCommitAt  int
	failure       error
}

func newRecordingActions() *recordingActions {
	return &recordingActions{failStageAt: -1, failCommitAt: -1, failure: errors.New("git add exited with status 128")}
}

func (actions *recordingActions) stage(executionContext context.Context, batch []string) error {
	stageIndex := len(actions.stagedBatches)
	actions.events = append(actions.events, fmt.Sprintf("stage:%d", stageIndex))
	actions.stagedBatches = append(actions.stagedBatches, append([]string{}, batch...))
	if stageIndex == actions.failStageAt {
		return actions.failure
	}
	return nil
}

func (actions *recordingActions) commit(executionContext context.Context, batch []string, message string) error {
	commitIndex := len(actions.messages)
	actions.events = append(actions.events, fmt.Sprintf("commit:%d", commitIndex))
	actions.messages = append(actions.messages, message)
	if commitIndex == actions.failCommitAt {
		return actions.failure
	}
	return nil
}

func (actions *recordingActions) stageOnly() batching.Actions {
	return batching.Actions{Stage: actions.stage}
}

func (actions *recordingActions) withCommit(message string) batching.Actions {
	return batching.Actions{Stage: actions.stage, Commit: actions.commit, CommitMessage: message}
}

type recordingSleeper struct {
	delays    []time.Duration
	onSleep   func()
	sleepErr  error
	recording *recordingActions
}

func (sleeper *recordingSleeper) Sleep(executionContext context.Context, delay time.Duration) error {
	sleeper.delays = append(sleeper.delays, delay)
	if sleeper.recording != nil {
		sleeper.recording.events = append(sleeper.recording.events, "delay")
	}
	if sleeper.onSleep != nil {
		sleeper.onSleep()
	}
	return sleeper.sleepErr
}

type recordingObserver struct {
	started        []batching.BatchProgress
	completed      []batching.BatchProgress
	previews       []batching.BatchPreview
	commitPreviews []string
	delays         []time.Duration
}

func (observer *recordingObserver) BatchStarted(progress batching.BatchProgress) {
	observer.started = append(observer.started, progress)
}

func (observer *recordingObserver) BatchCompleted(progress batching.BatchProgress) {
	observer.completed = append(observer.completed, progress)
}

func (observer *recordingObserver) BatchPreviewed(preview batching.BatchPreview) {
	observer.previews = append(observer.previews, preview)
}

func (observer *recordingObserver) CommitPreviewed(progress batching.BatchProgress, message string) {
	observer.commitPreviews = append(observer.commitPreviews, message)
}

func (observer *recordingObserver) DelayStarted(progress batching.BatchProgress, delay time.Duration) {
	observer.delays = append(observer.delays, delay)
}

func buildRunner(testInstance *testing.T, configuration batching.Configuration, options ...batching.RunnerOption) *batching.Runner {
	testInstance.Helper()
	runner, runnerError := batching.NewRunner(configuration, options...)
	require.NoError(testInstance, runnerError)
	return runner
}

func TestNewRunnerValidatesConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name          string
		configuration batching.Configuration
	}{
		{name: "zero_batch_size", configuration: batching.Configuration{BatchSize: 0}},
		{name: "negative_batch_size", configuration: batching.Configuration{BatchSize: -3}},
		{name: "negative_delay", configuration: batching.Configuration{BatchSize: 10, Delay: -time.Second}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			runner, runnerError := batching.NewRunner(testCase.configuration)
			require.ErrorIs(subtest, runnerError, batching.ErrInvalidConfiguration)
			require.Nil(subtest, runner)
		})
	}
}

func TestRunStagesBatchesSequentiallyWithDelays(testInstance *testing.T) {
	actions := newRecordingActions()
	sleeper := &recordingSleeper{recording: actions}
	runner := buildRunner(testInstance, batching.Configuration{BatchSize: 25, Delay: testDelayConstant}, batching.WithSleeper(sleeper))
	items := buildPaths(107)

	summary, runError := runner.Run(context.Background(), items, actions.stageOnly())
	require.NoError(testInstance, runError)
	require.Equal(testInstance, batching.Summary{TotalItems: 107, BatchCount: 5}, summary)

	require.Equal(testInstance, []string{"stage:0", "delay", "stage:1", "delay", "stage:2", "delay", "stage:3", "delay", "stage:4"}, actions.events)
	require.Equal(testInstance, []time.Duration{testDelayConstant, testDelayConstant, testDelayConstant, testDelayConstant}, sleeper.delays)

	stagedSizes := make([]int, 0, len(actions.stagedBatches))
	flattened := make([]string, 0, len(items))
	for _, batch := range actions.stagedBatches {
		stagedSizes = append(stagedSizes, len(batch))
		flattened = append(flattened, batch...)
	}
	require.Equal(testInstance, []int{25, 25, 25, 25, 7}, stagedSizes)
	require.Equal(testInstance, items, flattened)
}

func TestRunSkipsDelayWhenZero(testInstance *testing.T) {
	actions := newRecordingActions()
	sleeper := &recordingSleeper{}
	runner := buildRunner(testInstance, batching.Configuration{BatchSize: 2}, batching.WithSleeper(sleeper))

	_, runError := runner.Run(context.Background(), buildPaths(5), actions.stageOnly())
	require.NoError(testInstance, runError)
	require.Len(testInstance, actions.stagedBatches, 3)
	require.Empty(testInstance, sleeper.delays)
}

func TestRunCommitsEachBatchAfterStaging(testInstance *testing.T) {
	testCases := []struct {
		name             string
		itemCount        int
		batchSize        int
		expectedMessages []string
	}{
		{
			name:             "single_batch_unsuffixed",
			itemCount:        4,
			batchSize:        10,
			expectedMessages: []string{testCommitMessageConstant},
		},
		{
			name:      "multiple_batches_suffixed",
			itemCount: 5,
			batchSize: 2,
			expectedMessages: []string{
				"Bulk import (batch 1/3)",
				"Bulk import (batch 2/3)",
				"Bulk import (batch 3/3)",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			actions := newRecordingActions()
			runner := buildRunner(subtest, batching.Configuration{BatchSize: testCase.batchSize}, batching.WithSleeper(&recordingSleeper{}))

			summary, runError := runner.Run(context.Background(), buildPaths(testCase.itemCount), actions.withCommit(testCommitMessageConstant))
			require.NoError(subtest, runError)
			require.True(subtest, summary.Committed)
			require.Equal(subtest, testCase.expectedMessages, actions.messages)

			for eventIndex := 0; eventIndex < len(actions.events); eventIndex += 2 {
				batchNumber := eventIndex / 2
				require.Equal(subtest, fmt.Sprintf("stage:%d", batchNumber), actions.events[eventIndex])
				require.Equal(subtest, fmt.Sprintf("commit:%d", batchNumber), actions.events[eventIndex+1])
			}
		})
	}
}

func TestRunHaltsOnFirstStageFailure(testInstance *testing.T) {
	actions := newRecordingActions()
	actions.failStageAt = 2
	sleeper := &recordingSleeper{}
	runner := buildRunner(testInstance, batching.Configuration{BatchSize: 10, Delay: testDelayConstant}, batching.WithSleeper(sleeper))

	summary, runError := runner.Run(context.Background(), buildPaths(50), actions.withCommit(testCommitMessageConstant))
	require.Error(testInstance, runError)
	require.Equal(testInstance, batching.Summary{}, summary)

	var actionFailure batching.ActionFailedError
	require.ErrorAs(testInstance, runError, &actionFailure)
	require.Equal(testInstance, batching.ActionPhaseStage, actionFailure.Phase)
	require.Equal(testInstance, 2, actionFailure.BatchIndex)
	require.Equal(testInstance, 5, actionFailure.BatchCount)
	require.Equal(testInstance, "file-020.txt", actionFailure.Batch[0])
	require.ErrorIs(testInstance, runError, actions.failure)
	require.Contains(testInstance, runError.Error(), "stage failed for batch 3/5")

	require.Len(testInstance, actions.stagedBatches, 3)
	require.Len(testInstance, actions.messages, 2)
	require.Len(testInstance, sleeper.delays, 2)
}

func TestRunHaltsOnCommitFailure(testInstance *testing.T) {
	actions := newRecordingActions()
	actions.failCommitAt = 0
	runner := buildRunner(testInstance, batching.Configuration{BatchSize: 2}, batching.WithSleeper(&recordingSleeper{}))

	_, runError := runner.Run(context.Background(), buildPaths(6), actions.withCommit(testCommitMessageConstant))

	var actionFailure batching.ActionFailedError
	require.ErrorAs(testInstance, runError, &actionFailure)
	require.Equal(testInstance, batching.ActionPhaseCommit, actionFailure.Phase)
	require.Equal(testInstance, 0, actionFailure.BatchIndex)
	require.Len(testInstance, actions.stagedBatches, 1)
}

func TestRunDryRunInvokesNoActions(testInstance *testing.T) {
	actions := newRecordingActions()
	sleeper := &recordingSleeper{}
	observer := &recordingObserver{}
	runner := buildRunner(
		testInstance,
		batching.Configuration{BatchSize: 7, Delay: testDelayConstant, DryRun: true},
		batching.WithSleeper(sleeper),
		batching.WithObserver(observer),
	)

	summary, runError := runner.Run(context.Background(), buildPaths(10), actions.withCommit(testCommitMessageConstant))
	require.NoError(testInstance, runError)
	require.Equal(testInstance, batching.Summary{TotalItems: 10, BatchCount: 2, DryRun: true}, summary)

	require.Empty(testInstance, actions.events)
	require.Empty(testInstance, sleeper.delays)

	require.Len(testInstance, observer.previews, 2)
	require.Equal(testInstance, []string{"file-000.txt", "file-001.txt", "file-002.txt", "file-003.txt", "file-004.txt"}, observer.previews[0].Paths)
	require.Equal(testInstance, 2, observer.previews[0].RemainingCount)
	require.Equal(testInstance, []string{"file-007.txt", "file-008.txt", "file-009.txt"}, observer.previews[1].Paths)
	require.Equal(testInstance, 0, observer.previews[1].RemainingCount)
	require.Equal(testInstance, []string{"Bulk import (batch 1/2)", "Bulk import (batch 2/2)"}, observer.commitPreviews)
}

func TestRunDryRunAllowsMissingActions(testInstance *testing.T) {
	observer := &recordingObserver{}
	runner := buildRunner(testInstance, batching.Configuration{BatchSize: 3, DryRun: true}, batching.WithObserver(observer))

	summary, runError := runner.Run(context.Background(), buildPaths(3), batching.Actions{})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 1, summary.BatchCount)
	require.Len(testInstance, observer.previews, 1)
	require.Empty(testInstance, observer.commitPreviews)
}

func TestRunRejectsEmptyInput(testInstance *testing.T) {
	actions := newRecordingActions()
	runner := buildRunner(testInstance, batching.Configuration{BatchSize: 3})

	_, runError := runner.Run(context.Background(), nil, actions.stageOnly())
	require.ErrorIs(testInstance, runError, batching.ErrEmptyInput)
	require.Empty(testInstance, actions.events)
}

func TestRunRejectsMissingStageAction(testInstance *testing.T) {
	runner := buildRunner(testInstance, batching.Configuration{BatchSize: 3})

	_, runError := runner.Run(context.Background(), buildPaths(2), batching.Actions{})
	require.ErrorIs(testInstance, runError, batching.ErrInvalidConfiguration)
}

func TestRunVerboseEmitsProgress(testInstance *testing.T) {
	actions := newRecordingActions()
	observer := &recordingObserver{}
	runner := buildRunner(
		testInstance,
		batching.Configuration{BatchSize: 4, Delay: testDelayConstant, Verbose: true},
		batching.WithSleeper(&recordingSleeper{}),
		batching.WithObserver(observer),
	)

	_, runError := runner.Run(context.Background(), buildPaths(10), actions.stageOnly())
	require.NoError(testInstance, runError)

	require.Equal(testInstance, []batching.BatchProgress{
		{BatchIndex: 0, BatchCount: 3, BatchSize: 4},
		{BatchIndex: 1, BatchCount: 3, BatchSize: 4},
		{BatchIndex: 2, BatchCount: 3, BatchSize: 2},
	}, observer.started)
	require.Equal(testInstance, observer.started, observer.completed)
	require.Equal(testInstance, []time.Duration{testDelayConstant, testDelayConstant}, observer.delays)
	require.Empty(testInstance, observer.previews)
}

func TestRunVerboseDryRunEmitsProgressAroundPreviews(testInstance *testing.T) {
	observer := &recordingObserver{}
	sleeper := &recordingSleeper{}
	runner := buildRunner(
		testInstance,
		batching.Configuration{BatchSize: 4, Delay: testDelayConstant, Verbose: true, DryRun: true},
		batching.WithSleeper(sleeper),
		batching.WithObserver(observer),
	)

	_, runError := runner.Run(context.Background(), buildPaths(6), batching.Actions{})
	require.NoError(testInstance, runError)

	require.Equal(testInstance, []batching.BatchProgress{
		{BatchIndex: 0, BatchCount: 2, BatchSize: 4},
		{BatchIndex: 1, BatchCount: 2, BatchSize: 2},
	}, observer.started)
	require.Equal(testInstance, observer.started, observer.completed)
	require.Len(testInstance, observer.previews, 2)
	require.Empty(testInstance, observer.delays)
	require.Empty(testInstance, sleeper.delays)
}

func TestRunQuietEmitsNoProgress(testInstance *testing.T) {
	actions := newRecordingActions()
	observer := &recordingObserver{}
	runner := buildRunner(
		testInstance,
		batching.Configuration{BatchSize: 4, Delay: testDelayConstant},
		batching.WithSleeper(&recordingSleeper{}),
		batching.WithObserver(observer),
	)

	_, runError := runner.Run(context.Background(), buildPaths(10), actions.stageOnly())
	require.NoError(testInstance, runError)
	require.Empty(testInstance, observer.started)
	require.Empty(testInstance, observer.completed)
	require.Empty(testInstance, observer.delays)
}

func TestRunStopsWhenContextCancelledDuringDelay(testInstance *testing.T) {
	actions := newRecordingActions()
	executionContext, cancel := context.WithCancel(context.Background())
	defer cancel()
	sleeper := &recordingSleeper{onSleep: cancel, sleepErr: context.Canceled}
	runner := buildRunner(testInstance, batching.Configuration{BatchSize: 2, Delay: testDelayConstant}, batching.WithSleeper(sleeper))

	_, runError := runner.Run(executionContext, buildPaths(6), actions.stageOnly())
	require.ErrorIs(testInstance, runError, context.Canceled)
	require.Len(testInstance, actions.stagedBatches, 1)
}

func TestRunStopsBeforeFirstBatchWhenContextCancelled(testInstance *testing.T) {
	actions := newRecordingActions()
	executionContext, cancel := context.WithCancel(context.Background())
	cancel()
	runner := buildRunner(testInstance, batching.Configuration{BatchSize: 2})

	_, runError := runner.Run(executionContext, buildPaths(6), actions.stageOnly())
	require.ErrorIs(testInstance, runError, context.Canceled)
	require.Empty(testInstance, actions.events)
}

func TestTimerSleeperHonorsCancellation(testInstance *testing.T) {
	executionContext, cancel := context.WithCancel(context.Background())
	cancel()

	sleepError := batching.TimerSleeper{}.Sleep(executionContext, time.Hour)
	require.ErrorIs(testInstance, sleepError, context.Canceled)
	require.NoError(testInstance, batching.TimerSleeper{}.Sleep(context.Background(), time.Millisecond))
	require.NoError(testInstance, batching.TimerSleeper{}.Sleep(context.Background(), 0))
}

func TestFormatCommitMessage(testInstance *testing.T) {
	require.Equal(testInstance, "Add assets", batching.FormatCommitMessage("Add assets", 0, 1))
	require.Equal(testInstance, "Add assets (batch 2/4)", batching.FormatCommitMessage("Add assets", 1, 4))
}
