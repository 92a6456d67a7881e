package staging

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitbatch/internal/execshell"
	"github.com/temirov/gitbatch/internal/gitrepo"
)

const (
	gitAddSubcommandConstant         = "add"
	gitCommitSubcommandConstant      = "commit"
	gitCommitMessageFlagConstant     = "-m"
	gitDiffSubcommandConstant        = "diff"
	gitCachedFlagConstant            = "--cached"
	gitNameOnlyFlagConstant          = "--name-only"
	gitPathSeparatorArgumentConstant = "--"
	commitSkippedLogMessageConstant  = "Skipping commit because the batch staged no changes"
	workingDirectoryLogFieldConstant = "working_directory"
	batchFileCountLogFieldConstant   = "files"
)

// GitActions stages and commits batches with git in a fixed working directory.
type GitActions struct {
	logger           *zap.Logger
	executor         gitrepo.GitExecutor
	workingDirectory string
}

// NewGitActions constructs GitActions bound to workingDirectory.
func NewGitActions(logger *zap.Logger, executor gitrepo.GitExecutor, workingDirectory string) (*GitActions, error) {
	if executor == nil {
		return nil, gitrepo.ErrGitExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitActions{logger: logger, executor: executor, workingDirectory: workingDirectory}, nil
}

// Stage runs git add -- <paths...>.
func (actions *GitActions) Stage(executionContext context.Context, batch []string) error {
	arguments := make([]string, 0, len(batch)+2)
	arguments = append(arguments, gitAddSubcommandConstant, gitPathSeparatorArgumentConstant)
	arguments = append(arguments, batch...)

	_, executionError := actions.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: actions.workingDirectory,
	})
	return executionError
}

// Commit runs git commit -m <message>. A batch whose files were already committed leaves nothing staged; the
// commit is skipped instead of failing with "nothing to commit".
func (actions *GitActions) Commit(executionContext context.Context, batch []string, message string) error {
	stagedResult, stagedError := actions.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDiffSubcommandConstant, gitCachedFlagConstant, gitNameOnlyFlagConstant},
		WorkingDirectory: actions.workingDirectory,
	})
	if stagedError != nil {
		return stagedError
	}
	if len(strings.TrimSpace(stagedResult.StandardOutput)) == 0 {
		actions.logger.Info(
			commitSkippedLogMessageConstant,
			zap.String(workingDirectoryLogFieldConstant, actions.workingDirectory),
			zap.Int(batchFileCountLogFieldConstant, len(batch)),
		)
		return nil
	}

	_, executionError := actions.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitCommitMessageFlagConstant, message},
		WorkingDirectory: actions.workingDirectory,
	})
	return executionError
}
