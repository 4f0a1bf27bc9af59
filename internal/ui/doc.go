// Package ui renders command execution events as human-readable console
// output.
//
// It translates execute lifecycle events into concise messages so that
// feedback stays actionable for CLI users while detailed telemetry continues
// to flow through structured loggers.
package ui
