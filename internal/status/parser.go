package status

import (
	"strconv"
	"strings"
)

// Kind classifies a pending change.
type Kind string

// Supported change kinds.
const (
	KindUntracked Kind = Kind("untracked")
	KindAdded     Kind = Kind("added")
	KindModified  Kind = Kind("modified")
)

const (
	porcelainLineSeparatorConstant    = "\n"
	porcelainCarriageReturnConstant   = "\r"
	porcelainUntrackedCodeConstant    = "??"
	porcelainAddedMarkerConstant      = 'A'
	porcelainModifiedMarkerConstant   = 'M'
	porcelainCodeLengthConstant       = 2
	porcelainPathOffsetConstant       = 3
	porcelainCodeSeparatorConstant    = ' '
	porcelainQuotedPathPrefixConstant = `"`
)

// Entry is a single classified line of porcelain status output.
type Entry struct {
	Code string
	Path string
	Kind Kind
}

// ParsePorcelain classifies porcelain status output. Lines are a two-character code, a space, and a path.
// Deletions, renames, blank lines, and malformed lines are ignored.
func ParsePorcelain(output string) []Entry {
	entries := make([]Entry, 0)
	for _, rawLine := range strings.Split(output, porcelainLineSeparatorConstant) {
		line := strings.TrimSuffix(rawLine, porcelainCarriageReturnConstant)
		if len(line) <= porcelainPathOffsetConstant || line[porcelainCodeLengthConstant] != porcelainCodeSeparatorConstant {
			continue
		}

		code := line[:porcelainCodeLengthConstant]
		kind, recognized := classifyCode(code)
		if !recognized {
			continue
		}

		path := unquotePath(strings.TrimSpace(line[porcelainPathOffsetConstant:]))
		if len(path) == 0 {
			continue
		}
		entries = append(entries, Entry{Code: code, Path: path, Kind: kind})
	}
	return entries
}

func classifyCode(code string) (Kind, bool) {
	if code == porcelainUntrackedCodeConstant {
		return KindUntracked, true
	}
	if code[0] == porcelainAddedMarkerConstant {
		return KindAdded, true
	}
	if code[0] == porcelainModifiedMarkerConstant || code[1] == porcelainModifiedMarkerConstant {
		return KindModified, true
	}
	return "", false
}

func unquotePath(path string) string {
	if !strings.HasPrefix(path, porcelainQuotedPathPrefixConstant) {
		return path
	}
	unquoted, unquoteError := strconv.Unquote(path)
	if unquoteError != nil {
		return path
	}
	return unquoted
}
