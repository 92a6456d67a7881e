package status

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitbatch/internal/dependencies"
	"github.com/temirov/gitbatch/internal/gitrepo"
	"github.com/temirov/gitbatch/internal/profiles"
	"github.com/temirov/gitbatch/internal/settings"
	"github.com/temirov/gitbatch/internal/utils/flags"
	pathutils "github.com/temirov/gitbatch/internal/utils/path"
)

const (
	commandUseConstant                    = "analyze [dir]"
	commandShortDescriptionConstant       = "Report whether pending changes need batching"
	commandLongDescriptionConstant        = "analyze counts modified, untracked, and added files in dir (default: current directory) and recommends batching when they exceed the batch size."
	commandExecutionErrorTemplateConstant = "status analysis failed: %w"
	tooManyArgumentsTemplateConstant      = "%s accepts at most %d positional arguments, got %d"
	argumentLimitConstant                 = 1
	countsTemplateConstant                = "Changed files: %d (untracked: %d, modified: %d, added: %d)\n"
	batchSizeTemplateConstant             = "Batch size: %d\n"
	batchingRecommendedTemplateConstant   = "Batching recommended: %d batches\n"
	batchingNotNeededMessageConstant      = "Batching not needed\n"
	fileListingTemplateConstant           = "  %s\n"
	analysisCompletedLogMessageConstant   = "Status analysis completed"
	directoryLogFieldConstant             = "directory"
	fileCountLogFieldConstant             = "files"
	needsBatchingLogFieldConstant         = "needs_batching"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the loaded batch configuration.
type ConfigurationProvider func() settings.Configuration

// CommandBuilder assembles the analyze command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  gitrepo.GitExecutor
}

// Build constructs the analyze command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}
	flags.BindBatchFlags(command, flags.AnalysisFlagDefinitions(profiles.FlagUsage()))
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > argumentLimitConstant {
		return fmt.Errorf(tooManyArgumentsTemplateConstant, command.Name(), argumentLimitConstant, len(arguments))
	}

	resolvedSettings, settingsError := builder.resolveSettings(command)
	if settingsError != nil {
		return settingsError
	}

	directoryArgument := ""
	if len(arguments) > 0 {
		directoryArgument = arguments[0]
	}
	directory, directoryError := pathutils.NewDirectoryResolver(nil).Resolve(directoryArgument)
	if directoryError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, directoryError)
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	var consoleLogger *zap.Logger
	if builder.ConsoleLoggerProvider != nil {
		consoleLogger = builder.ConsoleLoggerProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, consoleLogger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	query, queryError := NewGitStatusQuery(gitExecutor, directory)
	if queryError != nil {
		return queryError
	}
	analyzer, analyzerError := NewAnalyzer(query)
	if analyzerError != nil {
		return analyzerError
	}

	result, analysisError := analyzer.Analyze(command.Context(), resolvedSettings.Batching)
	if analysisError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, analysisError)
	}

	logger.Info(
		analysisCompletedLogMessageConstant,
		zap.String(directoryLogFieldConstant, directory),
		zap.Int(fileCountLogFieldConstant, result.FileCount),
		zap.Bool(needsBatchingLogFieldConstant, result.NeedsBatching),
	)

	writeAnalysis(command, result, resolvedSettings.Batching.BatchSize, resolvedSettings.Batching.Verbose)
	return nil
}

func (builder *CommandBuilder) resolveSettings(command *cobra.Command) (settings.Resolved, error) {
	overrides, overridesError := flags.ReadBatchFlagOverrides(command)
	if overridesError != nil {
		return settings.Resolved{}, overridesError
	}

	configuration := settings.DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	catalog, catalogError := profiles.LoadCatalog(configuration.Batch.ProfilesFile)
	if catalogError != nil {
		return settings.Resolved{}, catalogError
	}
	return settings.Resolve(configuration, overrides, catalog)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func writeAnalysis(command *cobra.Command, result AnalysisResult, batchSize int, listFiles bool) {
	output := command.OutOrStdout()
	fmt.Fprintf(output, countsTemplateConstant, result.FileCount, result.Untracked, result.Modified, result.Added)
	fmt.Fprintf(output, batchSizeTemplateConstant, batchSize)
	if result.NeedsBatching {
		fmt.Fprintf(output, batchingRecommendedTemplateConstant, result.RecommendedBatchCount)
	} else {
		fmt.Fprint(output, batchingNotNeededMessageConstant)
	}

	if !listFiles {
		return
	}
	for _, file := range result.Files {
		fmt.Fprintf(output, fileListingTemplateConstant, file)
	}
}
