package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const (
	gitMetadataDirectoryNameConstant = ".git"
	discoveryRootTemplateConstant    = "unable to walk %s: %w"
)

// FileDiscoverer lists regular files below a root directory.
type FileDiscoverer struct{}

// NewFileDiscoverer constructs a file discoverer backed by filepath.WalkDir.
func NewFileDiscoverer() *FileDiscoverer {
	return &FileDiscoverer{}
}

// DiscoverFiles walks root and returns sorted, slash-separated paths relative to root. The .git directory is
// always skipped, excluded directories and nested repositories (subdirectories holding their own .git) are
// pruned, and unreadable subdirectories are ignored.
// Symbolic links are reported as files and never followed.
func (discoverer *FileDiscoverer) DiscoverFiles(root string, excludePatterns []string) ([]string, error) {
	exclusionMatcher := NewExclusionMatcher(excludePatterns)
	var files []string

	walkError := filepath.WalkDir(root, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if currentPath == root {
				return walkError
			}
			if directoryEntry != nil && directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if currentPath == root {
			return nil
		}

		relativePath, relativeError := filepath.Rel(root, currentPath)
		if relativeError != nil {
			return relativeError
		}
		relativePath = filepath.ToSlash(relativePath)

		if directoryEntry.IsDir() {
			if directoryEntry.Name() == gitMetadataDirectoryNameConstant || exclusionMatcher.Excludes(relativePath) {
				return fs.SkipDir
			}
			if isNestedRepository(currentPath) {
				return fs.SkipDir
			}
			return nil
		}

		if directoryEntry.Name() == gitMetadataDirectoryNameConstant || exclusionMatcher.Excludes(relativePath) {
			return nil
		}
		if !directoryEntry.Type().IsRegular() && directoryEntry.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		files = append(files, relativePath)
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(discoveryRootTemplateConstant, root, walkError)
	}

	sort.Strings(files)
	return files, nil
}

func isNestedRepository(directoryPath string) bool {
	_, statError := os.Lstat(filepath.Join(directoryPath, gitMetadataDirectoryNameConstant))
	return statError == nil
}
