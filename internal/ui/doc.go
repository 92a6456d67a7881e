// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger turns git invocations into concise progress lines,
// and BatchEventReporter renders batch progress and dry-run previews, while
// detailed telemetry continues to flow through structured loggers.
package ui
