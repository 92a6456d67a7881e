package status_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitbatch/internal/batching"
	"github.com/temirov/gitbatch/internal/execshell"
	"github.com/temirov/gitbatch/internal/status"
)

type stubStatusQuery struct {
	entries []status.Entry
	err     error
	calls   int
}

func (query *stubStatusQuery) QueryStatus(executionContext context.Context) ([]status.Entry, error) {
	query.calls++
	return query.entries, query.err
}

type stubGitExecutor struct {
	output          string
	err             error
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.err != nil {
		return execshell.ExecutionResult{}, executor.err
	}
	return execshell.ExecutionResult{StandardOutput: executor.output}, nil
}

func buildEntries(count int, kind status.Kind) []status.Entry {
	entries := make([]status.Entry, 0, count)
	for index := 0; index < count; index++ {
		entries = append(entries, status.Entry{Code: "??", Path: fmt.Sprintf("%s-%03d.txt", kind, index), Kind: kind})
	}
	return entries
}

func TestAnalyzerRecommendsBatchingAboveBatchSize(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		entries               []status.Entry
		batchSize             int
		expectedNeedsBatching bool
		expectedBatchCount    int
	}{
		{name: "sixty_files_batch_fifty", entries: buildEntries(60, status.KindUntracked), batchSize: 50, expectedNeedsBatching: true, expectedBatchCount: 2},
		{name: "exactly_batch_size", entries: buildEntries(50, status.KindModified), batchSize: 50, expectedNeedsBatching: false, expectedBatchCount: 1},
		{name: "clean_work_tree", entries: nil, batchSize: 50, expectedNeedsBatching: false, expectedBatchCount: 0},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			analyzer, creationError := status.NewAnalyzer(&stubStatusQuery{entries: testCase.entries})
			require.NoError(subtest, creationError)

			result, analysisError := analyzer.Analyze(context.Background(), batching.Configuration{BatchSize: testCase.batchSize})
			require.NoError(subtest, analysisError)
			require.Equal(subtest, testCase.expectedNeedsBatching, result.NeedsBatching)
			require.Equal(subtest, len(testCase.entries), result.FileCount)
			require.Len(subtest, result.Files, len(testCase.entries))
			require.Equal(subtest, testCase.expectedBatchCount, result.RecommendedBatchCount)
		})
	}
}

func TestAnalyzerCountsKinds(testInstance *testing.T) {
	entries := append(buildEntries(3, status.KindUntracked), buildEntries(2, status.KindModified)...)
	entries = append(entries, buildEntries(1, status.KindAdded)...)

	analyzer, creationError := status.NewAnalyzer(&stubStatusQuery{entries: entries})
	require.NoError(testInstance, creationError)

	result, analysisError := analyzer.Analyze(context.Background(), batching.Configuration{BatchSize: 4})
	require.NoError(testInstance, analysisError)
	require.Equal(testInstance, 3, result.Untracked)
	require.Equal(testInstance, 2, result.Modified)
	require.Equal(testInstance, 1, result.Added)
	require.Equal(testInstance, 6, result.FileCount)
	require.True(testInstance, result.NeedsBatching)
	require.Equal(testInstance, "untracked-000.txt", result.Files[0])
}

func TestAnalyzerWrapsQueryFailure(testInstance *testing.T) {
	queryFailure := errors.New("fatal: not a git repository")
	analyzer, creationError := status.NewAnalyzer(&stubStatusQuery{err: queryFailure})
	require.NoError(testInstance, creationError)

	result, analysisError := analyzer.Analyze(context.Background(), batching.Configuration{BatchSize: 10})
	require.Equal(testInstance, status.AnalysisResult{}, result)

	var statusFailure status.StatusQueryFailedError
	require.ErrorAs(testInstance, analysisError, &statusFailure)
	require.ErrorIs(testInstance, analysisError, queryFailure)
}

func TestAnalyzerRejectsInvalidBatchSize(testInstance *testing.T) {
	query := &stubStatusQuery{}
	analyzer, creationError := status.NewAnalyzer(query)
	require.NoError(testInstance, creationError)

	_, analysisError := analyzer.Analyze(context.Background(), batching.Configuration{BatchSize: 0})
	require.ErrorIs(testInstance, analysisError, batching.ErrInvalidConfiguration)
	require.Zero(testInstance, query.calls)
}

func TestNewAnalyzerRequiresQuery(testInstance *testing.T) {
	_, creationError := status.NewAnalyzer(nil)
	require.ErrorIs(testInstance, creationError, status.ErrStatusQueryNotConfigured)
}

func TestGitStatusQueryRunsPorcelainStatus(testInstance *testing.T) {
	executor := &stubGitExecutor{output: strings.Join([]string{"?? a.txt", " M b.txt", " D c.txt"}, "\n")}
	query, creationError := status.NewGitStatusQuery(executor, "/workspace/project")
	require.NoError(testInstance, creationError)

	entries, queryError := query.QueryStatus(context.Background())
	require.NoError(testInstance, queryError)
	require.Len(testInstance, entries, 2)

	require.Len(testInstance, executor.recordedDetails, 1)
	require.Equal(testInstance, []string{"status", "--porcelain", "--untracked-files=all"}, executor.recordedDetails[0].Arguments)
	require.Equal(testInstance, "/workspace/project", executor.recordedDetails[0].WorkingDirectory)
}

func TestGitStatusQueryPropagatesExecutorFailure(testInstance *testing.T) {
	executorFailure := errors.New("git unavailable")
	query, creationError := status.NewGitStatusQuery(&stubGitExecutor{err: executorFailure}, ".")
	require.NoError(testInstance, creationError)

	entries, queryError := query.QueryStatus(context.Background())
	require.ErrorIs(testInstance, queryError, executorFailure)
	require.Nil(testInstance, entries)
}
