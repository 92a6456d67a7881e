package staging

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitbatch/internal/batching"
	"github.com/temirov/gitbatch/internal/dependencies"
	"github.com/temirov/gitbatch/internal/gitrepo"
	"github.com/temirov/gitbatch/internal/profiles"
	"github.com/temirov/gitbatch/internal/settings"
	"github.com/temirov/gitbatch/internal/utils/flags"
)

const (
	addCommandUseConstant                 = "add [dir]"
	addCommandShortDescriptionConstant    = "Stage files in batches"
	addCommandLongDescriptionConstant     = "add discovers every file beneath dir (default: current directory), drops paths git ignores, and stages the rest with git add in batches, pausing between batches."
	commitCommandUseConstant              = "commit [dir] [message]"
	commitCommandShortDescriptionConstant = "Stage and commit files in batches"
	commitCommandLongDescriptionConstant  = "commit stages files like add and creates one commit per batch. Messages receive a (batch i/N) suffix when more than one batch is needed. Each commit records the whole index, so changes staged before the run are included in the first commit."
	commandExecutionErrorTemplateConstant = "batch staging failed: %w"
	addArgumentLimitConstant              = 1
	commitArgumentLimitConstant           = 2
	tooManyArgumentsTemplateConstant      = "%s accepts at most %d positional arguments, got %d"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the loaded batch configuration.
type ConfigurationProvider func() settings.Configuration

// CommandDependencies groups the collaborators shared by the add and commit commands. Unset collaborators
// default to production implementations.
type CommandDependencies struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  gitrepo.GitExecutor
	Discoverer                   FileDiscoverer
	Sleeper                      batching.Sleeper
}

// AddCommandBuilder assembles the add command.
type AddCommandBuilder struct {
	CommandDependencies
}

// Build constructs the add command.
func (builder *AddCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   addCommandUseConstant,
		Short: addCommandShortDescriptionConstant,
		Long:  addCommandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, false)
		},
	}
	flags.BindBatchFlags(command, flags.StagingFlagDefinitions(profiles.FlagUsage()))
	return command, nil
}

// CommitCommandBuilder assembles the commit command.
type CommitCommandBuilder struct {
	CommandDependencies
}

// Build constructs the commit command.
func (builder *CommitCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commitCommandUseConstant,
		Short: commitCommandShortDescriptionConstant,
		Long:  commitCommandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, true)
		},
	}
	flags.BindBatchFlags(command, flags.StagingFlagDefinitions(profiles.FlagUsage()))
	return command, nil
}

func (commandDependencies *CommandDependencies) run(command *cobra.Command, arguments []string, commitRequested bool) error {
	argumentLimit := addArgumentLimitConstant
	if commitRequested {
		argumentLimit = commitArgumentLimitConstant
	}
	if len(arguments) > argumentLimit {
		return fmt.Errorf(tooManyArgumentsTemplateConstant, command.Name(), argumentLimit, len(arguments))
	}

	options, optionsError := commandDependencies.parseOptions(command, arguments, commitRequested)
	if optionsError != nil {
		return optionsError
	}

	logger := commandDependencies.resolveLogger()
	consoleLogger := commandDependencies.resolveConsoleLogger()
	humanReadableLogging := false
	if commandDependencies.HumanReadableLoggingProvider != nil {
		humanReadableLogging = commandDependencies.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(commandDependencies.GitExecutor, logger, consoleLogger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(Dependencies{
		Logger:         logger,
		ProgressLogger: dependencies.ResolveProgressLogger(logger, consoleLogger, humanReadableLogging),
		GitExecutor:    gitExecutor,
		Discoverer:     dependencies.ResolveFileDiscoverer(commandDependencies.Discoverer),
		Sleeper:        dependencies.ResolveSleeper(commandDependencies.Sleeper),
		Output:         command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	if _, runError := service.Run(command.Context(), options); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

func (commandDependencies *CommandDependencies) parseOptions(command *cobra.Command, arguments []string, commitRequested bool) (Options, error) {
	overrides, overridesError := flags.ReadBatchFlagOverrides(command)
	if overridesError != nil {
		return Options{}, overridesError
	}

	configuration := commandDependencies.resolveConfiguration()
	catalog, catalogError := profiles.LoadCatalog(configuration.Batch.ProfilesFile)
	if catalogError != nil {
		return Options{}, catalogError
	}

	resolved, resolveError := settings.Resolve(configuration, overrides, catalog)
	if resolveError != nil {
		return Options{}, resolveError
	}

	options := Options{Commit: commitRequested, Settings: resolved}
	if len(arguments) > 0 {
		options.Directory = arguments[0]
	}
	if commitRequested && len(arguments) > 1 {
		if message := strings.TrimSpace(arguments[1]); len(message) > 0 {
			options.Settings.CommitMessage = message
		}
	}
	return options, nil
}

func (commandDependencies *CommandDependencies) resolveConfiguration() settings.Configuration {
	if commandDependencies.ConfigurationProvider == nil {
		return settings.DefaultConfiguration()
	}
	return commandDependencies.ConfigurationProvider()
}

func (commandDependencies *CommandDependencies) resolveLogger() *zap.Logger {
	if commandDependencies.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := commandDependencies.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (commandDependencies *CommandDependencies) resolveConsoleLogger() *zap.Logger {
	if commandDependencies.ConsoleLoggerProvider == nil {
		return nil
	}
	return commandDependencies.ConsoleLoggerProvider()
}

