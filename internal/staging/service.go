package staging

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/gitbatch/internal/batching"
	"github.com/temirov/gitbatch/internal/gitrepo"
	"github.com/temirov/gitbatch/internal/settings"
	"github.com/temirov/gitbatch/internal/ui"
	"github.com/temirov/gitbatch/internal/utils"
	pathutils "github.com/temirov/gitbatch/internal/utils/path"
)

const (
	fileDiscovererNotConfiguredMessageConstant = "file discoverer not configured"
	invalidTargetTemplateConstant              = "%w: %w"
	discoveryFailedTemplateConstant            = "unable to list files in %s: %w"
	ignoreFilterFailedTemplateConstant         = "unable to apply git ignore rules in %s: %w"
	stagedSummaryTemplateConstant              = "STAGED: %d files in %d batches\n"
	committedSummaryTemplateConstant           = "COMMITTED: %d files in %d batches\n"
	dryRunSummaryTemplateConstant              = "DRY-RUN: %d files in %d batches\n"
	runStartedLogMessageConstant               = "Starting batch run"
	runFinishedLogMessageConstant              = "Batch run finished"
	ignoredPathsDroppedLogMessageConstant      = "Dropped paths ignored by git"
	nothingToStageLogMessageConstant           = "Every discovered path is ignored by git; nothing to stage"
	directoryLogFieldConstant                  = "directory"
	fileCountLogFieldConstant                  = "files"
	batchSizeLogFieldConstant                  = "batch_size"
	delayLogFieldConstant                      = "delay"
	dryRunLogFieldConstant                     = "dry_run"
	commitLogFieldConstant                     = "commit"
	profileLogFieldConstant                    = "profile"
	excludeLogFieldConstant                    = "exclude"
	batchCountLogFieldConstant                 = "batches"
	configurationFileLogFieldConstant          = "config_file"
	ignoredCountLogFieldConstant               = "ignored"
)

// ErrFileDiscovererNotConfigured indicates NewService received a nil discoverer.
var ErrFileDiscovererNotConfigured = errors.New(fileDiscovererNotConfiguredMessageConstant)

// FileDiscoverer lists candidate files beneath a root directory.
type FileDiscoverer interface {
	DiscoverFiles(root string, excludePatterns []string) ([]string, error)
}

// Options configures a single staging run.
type Options struct {
	Directory string
	Commit    bool
	Settings  settings.Resolved
}

// Dependencies groups the collaborators of Service.
type Dependencies struct {
	Logger         *zap.Logger
	ProgressLogger *zap.Logger
	GitExecutor    gitrepo.GitExecutor
	Discoverer     FileDiscoverer
	Sleeper        batching.Sleeper
	Output         io.Writer
}

// Service stages and commits discovered files in batches.
type Service struct {
	logger            *zap.Logger
	progressLogger    *zap.Logger
	gitExecutor       gitrepo.GitExecutor
	discoverer        FileDiscoverer
	sleeper           batching.Sleeper
	reporter          ui.Reporter
	directoryResolver *pathutils.DirectoryResolver
	workTreeVerifier  *gitrepo.WorkTreeVerifier
	ignoredPathFilter *gitrepo.IgnoredPathFilter
	contextAccessor   utils.CommandContextAccessor
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, gitrepo.ErrGitExecutorNotConfigured
	}
	if dependencies.Discoverer == nil {
		return nil, ErrFileDiscovererNotConfigured
	}

	workTreeVerifier, verifierError := gitrepo.NewWorkTreeVerifier(dependencies.GitExecutor)
	if verifierError != nil {
		return nil, verifierError
	}
	ignoredPathFilter, filterError := gitrepo.NewIgnoredPathFilter(dependencies.GitExecutor)
	if filterError != nil {
		return nil, filterError
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	progressLogger := dependencies.ProgressLogger
	if progressLogger == nil {
		progressLogger = logger
	}
	sleeper := dependencies.Sleeper
	if sleeper == nil {
		sleeper = batching.TimerSleeper{}
	}

	return &Service{
		logger:            logger,
		progressLogger:    progressLogger,
		gitExecutor:       dependencies.GitExecutor,
		discoverer:        dependencies.Discoverer,
		sleeper:           sleeper,
		reporter:          ui.NewWriterReporter(dependencies.Output),
		directoryResolver: pathutils.NewDirectoryResolver(nil),
		workTreeVerifier:  workTreeVerifier,
		ignoredPathFilter: ignoredPathFilter,
		contextAccessor:   utils.NewCommandContextAccessor(),
	}, nil
}

// Run resolves and verifies the target directory, discovers its files, drops the ones git ignores, and processes
// the rest in batches. The target must be a git work tree even for dry runs. A summary line is printed on success.
func (service *Service) Run(executionContext context.Context, options Options) (batching.Summary, error) {
	runner, runnerError := batching.NewRunner(
		options.Settings.Batching,
		batching.WithObserver(ui.NewBatchEventReporter(service.progressLogger, service.reporter)),
		batching.WithSleeper(service.sleeper),
	)
	if runnerError != nil {
		return batching.Summary{}, runnerError
	}

	directory, resolveError := service.directoryResolver.Resolve(options.Directory)
	if resolveError != nil {
		return batching.Summary{}, fmt.Errorf(invalidTargetTemplateConstant, batching.ErrInvalidConfiguration, resolveError)
	}
	if verificationError := service.workTreeVerifier.VerifyWorkTree(executionContext, directory); verificationError != nil {
		return batching.Summary{}, fmt.Errorf(invalidTargetTemplateConstant, batching.ErrInvalidConfiguration, verificationError)
	}

	discoveredFiles, discoveryError := service.discoverer.DiscoverFiles(directory, options.Settings.ExcludePatterns)
	if discoveryError != nil {
		return batching.Summary{}, fmt.Errorf(discoveryFailedTemplateConstant, directory, discoveryError)
	}
	files := discoveredFiles
	if len(discoveredFiles) > 0 {
		keptFiles, ignoredCount, filterError := service.ignoredPathFilter.FilterIgnored(executionContext, directory, discoveredFiles)
		if filterError != nil {
			return batching.Summary{}, fmt.Errorf(ignoreFilterFailedTemplateConstant, directory, filterError)
		}
		if ignoredCount > 0 {
			service.logger.Info(
				ignoredPathsDroppedLogMessageConstant,
				zap.String(directoryLogFieldConstant, directory),
				zap.Int(ignoredCountLogFieldConstant, ignoredCount),
			)
		}
		if len(keptFiles) == 0 {
			service.logger.Warn(nothingToStageLogMessageConstant, zap.String(directoryLogFieldConstant, directory))
			summary := batching.Summary{DryRun: options.Settings.Batching.DryRun, Committed: options.Commit && !options.Settings.Batching.DryRun}
			service.reporter.Printf(summaryTemplate(summary), summary.TotalItems, summary.BatchCount)
			return summary, nil
		}
		files = keptFiles
	}

	gitActions, actionsError := NewGitActions(service.logger, service.gitExecutor, directory)
	if actionsError != nil {
		return batching.Summary{}, actionsError
	}
	actions := batching.Actions{Stage: gitActions.Stage}
	if options.Commit {
		actions.Commit = gitActions.Commit
		actions.CommitMessage = options.Settings.CommitMessage
	}

	configuration := runner.Configuration()
	configurationFilePath, _ := service.contextAccessor.ConfigurationFilePath(executionContext)
	service.logger.Info(
		runStartedLogMessageConstant,
		zap.String(directoryLogFieldConstant, directory),
		zap.Int(fileCountLogFieldConstant, len(files)),
		zap.Int(batchSizeLogFieldConstant, configuration.BatchSize),
		zap.Duration(delayLogFieldConstant, configuration.Delay),
		zap.Bool(dryRunLogFieldConstant, configuration.DryRun),
		zap.Bool(commitLogFieldConstant, options.Commit),
		zap.String(profileLogFieldConstant, options.Settings.ProfileName),
		zap.Strings(excludeLogFieldConstant, options.Settings.ExcludePatterns),
		zap.String(configurationFileLogFieldConstant, configurationFilePath),
	)

	summary, runError := runner.Run(executionContext, files, actions)
	if runError != nil {
		return batching.Summary{}, runError
	}

	service.logger.Info(
		runFinishedLogMessageConstant,
		zap.String(directoryLogFieldConstant, directory),
		zap.Int(fileCountLogFieldConstant, summary.TotalItems),
		zap.Int(batchCountLogFieldConstant, summary.BatchCount),
	)
	service.reporter.Printf(summaryTemplate(summary), summary.TotalItems, summary.BatchCount)
	return summary, nil
}

func summaryTemplate(summary batching.Summary) string {
	switch {
	case summary.DryRun:
		return dryRunSummaryTemplateConstant
	case summary.Committed:
		return committedSummaryTemplateConstant
	default:
		return stagedSummaryTemplateConstant
	}
}
