package status

import (
	"context"

	"github.com/temirov/gitbatch/internal/execshell"
	"github.com/temirov/gitbatch/internal/gitrepo"
)

const (
	gitStatusSubcommandConstant      = "status"
	gitPorcelainFlagConstant         = "--porcelain"
	gitUntrackedFilesAllFlagConstant = "--untracked-files=all"
)

// StatusQuery lists pending changes of a work tree.
type StatusQuery interface {
	QueryStatus(executionContext context.Context) ([]Entry, error)
}

// GitStatusQuery lists pending changes by running git status in a working directory.
type GitStatusQuery struct {
	executor         gitrepo.GitExecutor
	workingDirectory string
}

// NewGitStatusQuery constructs a query bound to the provided working directory.
func NewGitStatusQuery(executor gitrepo.GitExecutor, workingDirectory string) (*GitStatusQuery, error) {
	if executor == nil {
		return nil, gitrepo.ErrGitExecutorNotConfigured
	}
	return &GitStatusQuery{executor: executor, workingDirectory: workingDirectory}, nil
}

// QueryStatus runs git status --porcelain --untracked-files=all so untracked directories expand to individual files.
func (query *GitStatusQuery) QueryStatus(executionContext context.Context) ([]Entry, error) {
	executionResult, executionError := query.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant, gitUntrackedFilesAllFlagConstant},
		WorkingDirectory: query.workingDirectory,
	})
	if executionError != nil {
		return nil, executionError
	}
	return ParsePorcelain(executionResult.StandardOutput), nil
}
