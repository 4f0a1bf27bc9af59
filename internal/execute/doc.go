// Package execute runs external commands with bounded execution time and a
// configurable failure policy.
//
// ExecOperation exposes a fluent configuration surface, ProcessExecutor
// spawns the process and drains both standard streams concurrently, and
// EvaluateFailurePolicy turns the raw outcome into a typed verdict.
package execute
