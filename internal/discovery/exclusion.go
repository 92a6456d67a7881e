package discovery

import (
	"path"
	"strings"
)

// ExclusionMatcher decides whether a relative path is excluded from discovery.
type ExclusionMatcher struct {
	patterns []string
}

// NewExclusionMatcher normalizes patterns to forward slashes and drops blank entries.
func NewExclusionMatcher(patterns []string) ExclusionMatcher {
	normalizedPatterns := make([]string, 0, len(patterns))
	seenPatterns := make(map[string]struct{}, len(patterns))
	for _, pattern := range patterns {
		normalizedPattern := strings.ReplaceAll(strings.TrimSpace(pattern), "\\", "/")
		if len(normalizedPattern) == 0 {
			continue
		}
		if _, alreadySeen := seenPatterns[normalizedPattern]; alreadySeen {
			continue
		}
		seenPatterns[normalizedPattern] = struct{}{}
		normalizedPatterns = append(normalizedPatterns, normalizedPattern)
	}
	return ExclusionMatcher{patterns: normalizedPatterns}
}

// Excludes reports whether relativePath contains a pattern or matches it as a glob.
// Malformed glob patterns only participate as substrings.
func (matcher ExclusionMatcher) Excludes(relativePath string) bool {
	baseName := path.Base(relativePath)
	for _, pattern := range matcher.patterns {
		if strings.Contains(relativePath, pattern) {
			return true
		}
		if matched, matchError := path.Match(pattern, relativePath); matchError == nil && matched {
			return true
		}
		if matched, matchError := path.Match(pattern, baseName); matchError == nil && matched {
			return true
		}
	}
	return false
}
