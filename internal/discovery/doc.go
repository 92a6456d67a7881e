// Package discovery walks a directory tree and returns the files a batch run should stage.
//
// FileDiscoverer skips the .git directory and anything an ExclusionMatcher
// rejects. Patterns match by substring or by path.Match glob against either the
// slash-separated relative path or its base name; there are no gitignore
// semantics.
package discovery
