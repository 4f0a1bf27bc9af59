package execute

import (
	"errors"
	"fmt"
)

const (
	failureMessageTemplateConstant            = "%s: %s"
	executionContextMissingMessageConstant    = "no project or working directory configured"
	commandNotConfiguredMessageConstant       = "command must contain at least one token"
	nonPositiveTimeoutMessageConstant         = "timeout must be greater than zero"
	invalidWorkingDirectoryTemplateConstant   = "invalid working directory: %s"
	spawnFailureTemplateConstant              = "unable to start %s: %s"
)

// Sentinel errors surfaced for configuration problems detected before any
// process is spawned.
var (
	ErrExecutionContextMissing = errors.New(executionContextMissingMessageConstant)
	ErrCommandNotConfigured    = errors.New(commandNotConfiguredMessageConstant)
	ErrNonPositiveTimeout      = errors.New(nonPositiveTimeoutMessageConstant)
)

// FailureKind labels the machine-distinguishable category of an execution
// failure.
type FailureKind string

// Failure taxonomy.
const (
	FailureKindConfiguration           FailureKind = "configuration"
	FailureKindInvalidWorkingDirectory FailureKind = "invalid_working_directory"
	FailureKindSpawn                   FailureKind = "spawn"
	FailureKindTimeout                 FailureKind = "timeout"
	FailureKindExitStatus              FailureKind = "exit_status"
	FailureKindStandardError           FailureKind = "standard_error"
	FailureKindStandardOutput          FailureKind = "standard_output"
)

// ExecutionFailure describes why an execution was judged unsuccessful. It is
// surfaced to callers as an error carrying the failure kind, a human-readable
// detail, and the exit code when one was observed.
type ExecutionFailure struct {
	Kind       FailureKind
	Detail     string
	ExitCode   int
	Underlying error
}

// Error implements the error interface.
func (failure ExecutionFailure) Error() string {
	return fmt.Sprintf(failureMessageTemplateConstant, failure.Kind, failure.Detail)
}

// Unwrap exposes the wrapped cause, if any.
func (failure ExecutionFailure) Unwrap() error {
	return failure.Underlying
}

// NewConfigurationFailure builds a configuration failure wrapping the cause.
func NewConfigurationFailure(cause error) ExecutionFailure {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	return ExecutionFailure{Kind: FailureKindConfiguration, Detail: detail, Underlying: cause}
}

// NewInvalidWorkingDirectoryFailure builds a failure describing an absent or
// non-directory working directory path.
func NewInvalidWorkingDirectoryFailure(workingDirectoryPath string) ExecutionFailure {
	return ExecutionFailure{
		Kind:   FailureKindInvalidWorkingDirectory,
		Detail: fmt.Sprintf(invalidWorkingDirectoryTemplateConstant, workingDirectoryPath),
	}
}

// NewSpawnFailure builds a failure describing an executable the operating
// system could not start.
func NewSpawnFailure(executableName string, cause error) ExecutionFailure {
	causeDetail := ""
	if cause != nil {
		causeDetail = cause.Error()
	}
	return ExecutionFailure{
		Kind:       FailureKindSpawn,
		Detail:     fmt.Sprintf(spawnFailureTemplateConstant, executableName, causeDetail),
		Underlying: cause,
	}
}
