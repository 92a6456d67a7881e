package ui

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/gitbatch/internal/batching"
)

const (
	batchStartedMessageConstant           = "Processing batch"
	batchCompletedMessageConstant         = "Batch complete"
	delayStartedMessageConstant           = "Waiting before next batch"
	batchNumberFieldConstant              = "batch"
	batchCountFieldConstant               = "batches"
	batchSizeFieldConstant                = "files"
	delayFieldConstant                    = "delay"
	batchPreviewTemplateConstant          = "DRY-RUN: batch %d/%d would stage %d files: %s\n"
	batchPreviewRemainingTemplateConstant = "DRY-RUN: batch %d/%d would stage %d files: %s and %d more\n"
	commitPreviewTemplateConstant         = "DRY-RUN: batch %d/%d would commit with message %q\n"
	previewPathSeparatorConstant          = ", "
)

// BatchEventReporter implements batching.RunObserver. Progress flows through the logger, previews are printed.
type BatchEventReporter struct {
	logger   *zap.Logger
	reporter Reporter
}

// NewBatchEventReporter constructs a reporter. A nil logger discards progress; a nil reporter prints to standard output.
func NewBatchEventReporter(logger *zap.Logger, reporter Reporter) *BatchEventReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = NewWriterReporter(nil)
	}
	return &BatchEventReporter{logger: logger, reporter: reporter}
}

// BatchStarted logs the batch about to be processed.
func (eventReporter *BatchEventReporter) BatchStarted(progress batching.BatchProgress) {
	eventReporter.logger.Info(batchStartedMessageConstant, progressFields(progress)...)
}

// BatchCompleted logs the batch that was processed.
func (eventReporter *BatchEventReporter) BatchCompleted(progress batching.BatchProgress) {
	eventReporter.logger.Info(batchCompletedMessageConstant, progressFields(progress)...)
}

// BatchPreviewed prints the leading paths of a batch skipped by a dry run.
func (eventReporter *BatchEventReporter) BatchPreviewed(preview batching.BatchPreview) {
	joinedPaths := strings.Join(preview.Paths, previewPathSeparatorConstant)
	if preview.RemainingCount > 0 {
		eventReporter.reporter.Printf(batchPreviewRemainingTemplateConstant, preview.Number(), preview.BatchCount, preview.BatchSize, joinedPaths, preview.RemainingCount)
		return
	}
	eventReporter.reporter.Printf(batchPreviewTemplateConstant, preview.Number(), preview.BatchCount, preview.BatchSize, joinedPaths)
}

// CommitPreviewed prints the commit a dry run would have created.
func (eventReporter *BatchEventReporter) CommitPreviewed(progress batching.BatchProgress, message string) {
	eventReporter.reporter.Printf(commitPreviewTemplateConstant, progress.Number(), progress.BatchCount, message)
}

// DelayStarted logs the pause before the next batch.
func (eventReporter *BatchEventReporter) DelayStarted(progress batching.BatchProgress, delay time.Duration) {
	eventReporter.logger.Info(delayStartedMessageConstant, append(progressFields(progress), zap.Duration(delayFieldConstant, delay))...)
}

func progressFields(progress batching.BatchProgress) []zap.Field {
	return []zap.Field{
		zap.Int(batchNumberFieldConstant, progress.Number()),
		zap.Int(batchCountFieldConstant, progress.BatchCount),
		zap.Int(batchSizeFieldConstant, progress.BatchSize),
	}
}
