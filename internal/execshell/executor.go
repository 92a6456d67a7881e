package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// CommandName identifies an external executable.
type CommandName string

// CommandGit invokes the git binary found on PATH.
const CommandGit CommandName = CommandName("git")

const (
	loggerNotConfiguredMessageConstant        = "shell executor requires a logger"
	commandRunnerNotConfiguredMessageConstant = "shell executor requires a command runner"
	commandFailedTemplateConstant             = "%s exited with code %d%s"
	commandExecutionTemplateConstant          = "%s could not be executed: %v"
	commandStartedLogMessageConstant          = "Executing command"
	commandCompletedLogMessageConstant        = "Command completed"
	commandFailedLogMessageConstant           = "Command exited with non-zero status"
	commandExecutionFailedLogMessageConstant  = "Command execution failed"
	commandNameFieldConstant                  = "command"
	commandArgumentsFieldConstant             = "arguments"
	workingDirectoryFieldConstant             = "working_directory"
	exitCodeFieldConstant                     = "exit_code"
	standardErrorFieldConstant                = "stderr"
	commandLabelSeparatorConstant             = " "
	omittedArgumentsTemplateConstant          = "... (%d more)"
	describedArgumentLimitConstant            = 6
)

// ErrLoggerNotConfigured indicates that NewShellExecutor received a nil logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates that NewShellExecutor received a nil runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// CommandDetails describes the arguments and environment of a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand couples an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures process output and exit status.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes a shell command and reports its result. A non-zero exit code is not an error.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that ran but exited with a non-zero status.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including trimmed standard error output.
func (failure CommandFailedError) Error() string {
	standardError := strings.TrimSpace(failure.Result.StandardError)
	standardErrorSuffix := ""
	if len(standardError) > 0 {
		standardErrorSuffix = ": " + standardError
	}
	return fmt.Sprintf(commandFailedTemplateConstant, describeCommand(failure.Command), failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be started or was interrupted.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionTemplateConstant, describeCommand(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor runs external commands, logging each invocation and notifying observers.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observers []CommandEventObserver
}

// NewShellExecutor constructs an executor. Observers receive lifecycle notifications in registration order.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, observers ...CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	registeredObservers := make([]CommandEventObserver, 0, len(observers))
	for _, commandObserver := range observers {
		if commandObserver != nil {
			registeredObservers = append(registeredObservers, commandObserver)
		}
	}
	if len(registeredObservers) == 0 {
		registeredObservers = append(registeredObservers, noopCommandEventObserver{})
	}

	return &ShellExecutor{logger: logger, runner: runner, observers: registeredObservers}, nil
}

// ExecuteGit runs git with the supplied details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// Execute runs the command and converts non-zero exits into CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandFields := []zap.Field{
		zap.String(commandNameFieldConstant, string(command.Name)),
		zap.Strings(commandArgumentsFieldConstant, command.Details.Arguments),
		zap.String(workingDirectoryFieldConstant, command.Details.WorkingDirectory),
	}

	executor.logger.Debug(commandStartedLogMessageConstant, commandFields...)
	for _, commandObserver := range executor.observers {
		commandObserver.CommandStarted(command)
	}

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(commandExecutionFailedLogMessageConstant, append(commandFields, zap.Error(runError))...)
		for _, commandObserver := range executor.observers {
			commandObserver.CommandExecutionFailed(command, runError)
		}
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	for _, commandObserver := range executor.observers {
		commandObserver.CommandCompleted(command, executionResult)
	}

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(
			commandFailedLogMessageConstant,
			append(commandFields, zap.Int(exitCodeFieldConstant, executionResult.ExitCode), zap.String(standardErrorFieldConstant, strings.TrimSpace(executionResult.StandardError)))...,
		)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(commandCompletedLogMessageConstant, append(commandFields, zap.Int(exitCodeFieldConstant, executionResult.ExitCode))...)
	return executionResult, nil
}

func describeCommand(command ShellCommand) string {
	arguments := command.Details.Arguments
	omittedCount := 0
	if len(arguments) > describedArgumentLimitConstant {
		omittedCount = len(arguments) - describedArgumentLimitConstant
		arguments = arguments[:describedArgumentLimitConstant]
	}
	commandParts := append([]string{string(command.Name)}, arguments...)
	if omittedCount > 0 {
		commandParts = append(commandParts, fmt.Sprintf(omittedArgumentsTemplateConstant, omittedCount))
	}
	return strings.Join(commandParts, commandLabelSeparatorConstant)
}
