package staging_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/temirov/gitbatch/internal/execshell"
)

type scriptedGitExecutor struct {
	workTreeOutput      string
	stagedOutput        string
	ignoredOutput       string
	failingSubcommand   string
	recordedArguments   [][]string
	recordedDirectories []string
}

func newScriptedGitExecutor() *scriptedGitExecutor {
	return &scriptedGitExecutor{workTreeOutput: "true\n", stagedOutput: "staged.txt\n"}
}

func (executor *scriptedGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedArguments = append(executor.recordedArguments, append([]string{}, details.Arguments...))
	executor.recordedDirectories = append(executor.recordedDirectories, details.WorkingDirectory)

	subcommand := details.Arguments[0]
	if subcommand == executor.failingSubcommand {
		return execshell.ExecutionResult{}, execshell.CommandFailedError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: details},
			Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: index.lock exists"},
		}
	}

	switch subcommand {
	case "rev-parse":
		return execshell.ExecutionResult{StandardOutput: executor.workTreeOutput}, nil
	case "diff":
		return execshell.ExecutionResult{StandardOutput: executor.stagedOutput}, nil
	case "ls-files":
		return execshell.ExecutionResult{StandardOutput: executor.ignoredOutput}, nil
	default:
		return execshell.ExecutionResult{}, nil
	}
}

func (executor *scriptedGitExecutor) subcommandCalls(subcommand string) [][]string {
	calls := make([][]string, 0)
	for _, arguments := range executor.recordedArguments {
		if arguments[0] == subcommand {
			calls = append(calls, arguments)
		}
	}
	return calls
}

type stubDiscoverer struct {
	files            []string
	err              error
	recordedRoot     string
	recordedPatterns []string
	calls            int
}

func (discoverer *stubDiscoverer) DiscoverFiles(root string, excludePatterns []string) ([]string, error) {
	discoverer.calls++
	discoverer.recordedRoot = root
	discoverer.recordedPatterns = append([]string{}, excludePatterns...)
	return discoverer.files, discoverer.err
}

type recordingSleeper struct {
	delays []time.Duration
}

func (sleeper *recordingSleeper) Sleep(executionContext context.Context, delay time.Duration) error {
	sleeper.delays = append(sleeper.delays, delay)
	return nil
}

func buildFiles(count int) []string {
	files := make([]string, 0, count)
	for index := 0; index < count; index++ {
		files = append(files, fmt.Sprintf("assets/file-%03d.bin", index))
	}
	return files
}

func countLines(output string, prefix string) int {
	count := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, prefix) {
			count++
		}
	}
	return count
}
