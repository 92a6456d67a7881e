// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle
// observers, OSCommandRunner is the os/exec-backed default, and
// CommandMessageFormatter renders git add, commit, status, and work tree
// checks as human-readable progress lines.
package execshell
