package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitbatch/internal/execshell"
)

const (
	gitRevParseSubcommandConstant         = "rev-parse"
	gitInsideWorkTreeFlagConstant         = "--is-inside-work-tree"
	gitInsideWorkTreeTrueOutputConstant   = "true"
	executorNotConfiguredMessageConstant  = "git executor not configured"
	notAWorkTreeTemplateConstant          = "%s is not inside a git work tree"
	notAWorkTreeWithCauseTemplateConstant = "%s is not inside a git work tree: %v"
)

// ErrGitExecutorNotConfigured indicates a nil executor was supplied.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor exposes the subset of shell execution used by git-facing services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// NotAWorkTreeError reports a directory outside any git work tree.
type NotAWorkTreeError struct {
	Directory string
	Cause     error
}

// Error describes the rejected directory.
func (failure NotAWorkTreeError) Error() string {
	if failure.Cause == nil {
		return fmt.Sprintf(notAWorkTreeTemplateConstant, failure.Directory)
	}
	return fmt.Sprintf(notAWorkTreeWithCauseTemplateConstant, failure.Directory, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure NotAWorkTreeError) Unwrap() error {
	return failure.Cause
}

// WorkTreeVerifier confirms that directories belong to a git work tree.
type WorkTreeVerifier struct {
	executor GitExecutor
}

// NewWorkTreeVerifier constructs a verifier around the provided executor.
func NewWorkTreeVerifier(executor GitExecutor) (*WorkTreeVerifier, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &WorkTreeVerifier{executor: executor}, nil
}

// VerifyWorkTree runs git rev-parse --is-inside-work-tree in directory. A non-zero exit or any answer other
// than "true" yields NotAWorkTreeError; a git binary that cannot be started is returned as is.
func (verifier *WorkTreeVerifier) VerifyWorkTree(executionContext context.Context, directory string) error {
	executionResult, executionError := verifier.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return NotAWorkTreeError{Directory: directory, Cause: executionError}
		}
		return executionError
	}

	if strings.TrimSpace(executionResult.StandardOutput) != gitInsideWorkTreeTrueOutputConstant {
		return NotAWorkTreeError{Directory: directory}
	}
	return nil
}
