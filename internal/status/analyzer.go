package status

import (
	"context"
	"errors"

	"github.com/temirov/gitbatch/internal/batching"
)

const queryNotConfiguredMessageConstant = "status query not configured"

// ErrStatusQueryNotConfigured indicates NewAnalyzer received a nil query.
var ErrStatusQueryNotConfigured = errors.New(queryNotConfiguredMessageConstant)

// AnalysisResult summarizes pending changes against a batch size.
type AnalysisResult struct {
	NeedsBatching         bool
	FileCount             int
	Files                 []string
	Untracked             int
	Modified              int
	Added                 int
	RecommendedBatchCount int
}

// Analyzer recommends batching when pending changes exceed the batch size.
type Analyzer struct {
	query StatusQuery
}

// NewAnalyzer constructs an Analyzer around the provided query.
func NewAnalyzer(query StatusQuery) (*Analyzer, error) {
	if query == nil {
		return nil, ErrStatusQueryNotConfigured
	}
	return &Analyzer{query: query}, nil
}

// Analyze counts pending changes and reports whether they exceed configuration.BatchSize.
func (analyzer *Analyzer) Analyze(executionContext context.Context, configuration batching.Configuration) (AnalysisResult, error) {
	if validationError := configuration.Validate(); validationError != nil {
		return AnalysisResult{}, validationError
	}

	entries, queryError := analyzer.query.QueryStatus(executionContext)
	if queryError != nil {
		return AnalysisResult{}, StatusQueryFailedError{Cause: queryError}
	}

	result := AnalysisResult{Files: make([]string, 0, len(entries))}
	for _, entry := range entries {
		result.Files = append(result.Files, entry.Path)
		switch entry.Kind {
		case KindUntracked:
			result.Untracked++
		case KindAdded:
			result.Added++
		case KindModified:
			result.Modified++
		}
	}

	result.FileCount = len(result.Files)
	result.NeedsBatching = result.FileCount > configuration.BatchSize
	result.RecommendedBatchCount = batching.CountBatches(result.FileCount, configuration.BatchSize)
	return result, nil
}
