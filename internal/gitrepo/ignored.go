package gitrepo

import (
	"context"
	"path"
	"strings"

	"github.com/temirov/gitbatch/internal/execshell"
)

const (
	gitListFilesSubcommandConstant   = "ls-files"
	gitNullTerminatedFlagConstant    = "-z"
	gitOthersFlagConstant            = "--others"
	gitIgnoredFlagConstant           = "--ignored"
	gitExcludeStandardFlagConstant   = "--exclude-standard"
	gitDirectoryFlagConstant         = "--directory"
	ignoredEntrySeparatorConstant    = "\x00"
	ignoredDirectorySuffixConstant   = "/"
	relativeCurrentDirectoryConstant = "."
)

// IgnoredPathFilter drops paths that git's ignore rules keep out of the index.
type IgnoredPathFilter struct {
	executor GitExecutor
}

// NewIgnoredPathFilter constructs a filter around the provided executor.
func NewIgnoredPathFilter(executor GitExecutor) (*IgnoredPathFilter, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &IgnoredPathFilter{executor: executor}, nil
}

// FilterIgnored returns paths minus the untracked ones git ignores, preserving order, together with the number
// of dropped paths. Paths are slash-separated and relative to directory. Tracked files are never dropped, even
// when an ignore pattern matches them.
func (filter *IgnoredPathFilter) FilterIgnored(executionContext context.Context, directory string, paths []string) ([]string, int, error) {
	executionResult, executionError := filter.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			gitListFilesSubcommandConstant,
			gitNullTerminatedFlagConstant,
			gitOthersFlagConstant,
			gitIgnoredFlagConstant,
			gitExcludeStandardFlagConstant,
			gitDirectoryFlagConstant,
		},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return nil, 0, executionError
	}

	ignoredFiles := make(map[string]struct{})
	ignoredDirectories := make(map[string]struct{})
	for _, entry := range strings.Split(executionResult.StandardOutput, ignoredEntrySeparatorConstant) {
		if len(entry) == 0 {
			continue
		}
		if strings.HasSuffix(entry, ignoredDirectorySuffixConstant) {
			ignoredDirectories[strings.TrimSuffix(entry, ignoredDirectorySuffixConstant)] = struct{}{}
			continue
		}
		ignoredFiles[entry] = struct{}{}
	}

	keptPaths := make([]string, 0, len(paths))
	for _, candidatePath := range paths {
		if _, ignored := ignoredFiles[candidatePath]; ignored {
			continue
		}
		if hasIgnoredAncestor(candidatePath, ignoredDirectories) {
			continue
		}
		keptPaths = append(keptPaths, candidatePath)
	}
	return keptPaths, len(paths) - len(keptPaths), nil
}

func hasIgnoredAncestor(candidatePath string, ignoredDirectories map[string]struct{}) bool {
	if len(ignoredDirectories) == 0 {
		return false
	}
	for parentDirectory := path.Dir(candidatePath); parentDirectory != relativeCurrentDirectoryConstant && parentDirectory != ignoredDirectorySuffixConstant; parentDirectory = path.Dir(parentDirectory) {
		if _, ignored := ignoredDirectories[parentDirectory]; ignored {
			return true
		}
	}
	return false
}
