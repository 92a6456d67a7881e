package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	currentDirectoryConstant               = "."
	directoryNotFoundTemplateConstant      = "%w: %s"
	notADirectoryTemplateConstant          = "%w: %s is not a directory"
	directoryInspectionTemplateConstant    = "unable to inspect %s: %w"
	absolutePathResolutionTemplateConstant = "unable to resolve %s: %w"
	invalidDirectoryMessageConstant        = "invalid target directory"
)

// ErrInvalidDirectory indicates a target directory that does not exist or is not a directory.
var ErrInvalidDirectory = errors.New(invalidDirectoryMessageConstant)

// DirectoryResolver turns user-supplied directory arguments into absolute, existing directories.
type DirectoryResolver struct {
	homeExpander *HomeExpander
}

// NewDirectoryResolver constructs a resolver; a nil expander falls back to the operating system home lookup.
func NewDirectoryResolver(homeExpander *HomeExpander) *DirectoryResolver {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &DirectoryResolver{homeExpander: homeExpander}
}

// Resolve expands "~", defaults empty input to the current directory, and verifies the result is a directory.
func (resolver *DirectoryResolver) Resolve(candidateDirectory string) (string, error) {
	trimmedDirectory := strings.TrimSpace(candidateDirectory)
	if len(trimmedDirectory) == 0 {
		trimmedDirectory = currentDirectoryConstant
	}

	expandedDirectory := resolver.homeExpander.Expand(trimmedDirectory)
	absoluteDirectory, absoluteError := filepath.Abs(expandedDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf(absolutePathResolutionTemplateConstant, expandedDirectory, absoluteError)
	}

	directoryInfo, statError := os.Stat(absoluteDirectory)
	if statError != nil {
		if errors.Is(statError, os.ErrNotExist) {
			return "", fmt.Errorf(directoryNotFoundTemplateConstant, ErrInvalidDirectory, absoluteDirectory)
		}
		return "", fmt.Errorf(directoryInspectionTemplateConstant, absoluteDirectory, statError)
	}
	if !directoryInfo.IsDir() {
		return "", fmt.Errorf(notADirectoryTemplateConstant, ErrInvalidDirectory, absoluteDirectory)
	}

	return absoluteDirectory, nil
}
