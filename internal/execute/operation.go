package execute

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultTimeout bounds executions that never configured an explicit
	// timeout.
	DefaultTimeout = 30 * time.Second

	configurationValidationTemplateConstant = "invalid execution configuration: %w"
)

var executionConfigurationValidator = validator.New(validator.WithRequiredStructEnabled())

// Project supplies the default working directory when no explicit override
// is configured. It stands in for the host build system's project object.
type Project interface {
	WorkingDirectory() string
}

// StaticProject is a trivial Project rooted at a fixed directory.
type StaticProject struct {
	Directory string
}

// WorkingDirectory implements Project.
func (project StaticProject) WorkingDirectory() string {
	return project.Directory
}

// ExecutionConfig is the immutable snapshot of an operation's configuration
// taken when execution begins. Reusing the builder afterwards cannot affect
// an execution already in flight.
type ExecutionConfig struct {
	CommandTokens            []string `validate:"min=1"`
	WorkingDirectoryOverride string
	DefaultWorkingDirectory  string
	Timeout                  time.Duration `validate:"gt=0"`
	FailureModes             FailureModeSet
	Silent                   bool
	EnvironmentVariables     map[string]string
	StandardInput            []byte
}

// ExecOperation executes a single external command. Setters mutate and
// return the same instance so configuration reads fluently; Execute works on
// an immutable snapshot.
type ExecOperation struct {
	commandTokens            []string
	workingDirectoryOverride string
	timeout                  time.Duration
	failureModes             FailureModeSet
	silent                   bool
	project                  Project
	environmentVariables     map[string]string
	standardInput            []byte

	processRunner     ProcessRunner
	eventObserver     ExecutionEventObserver
	directoryResolver *WorkingDirectoryResolver
}

// NewExecOperation constructs an operation with the default timeout, the
// operating system process executor, and no reporting sink.
func NewExecOperation() *ExecOperation {
	return &ExecOperation{
		timeout:           DefaultTimeout,
		failureModes:      NewFailureModeSet(),
		processRunner:     NewProcessExecutor(),
		eventObserver:     noopExecutionEventObserver{},
		directoryResolver: NewWorkingDirectoryResolver(),
	}
}

// Command appends tokens to the command vector. The first token ever
// appended names the executable.
func (operation *ExecOperation) Command(tokens ...string) *ExecOperation {
	operation.commandTokens = append(operation.commandTokens, tokens...)
	return operation
}

// CommandList appends an already assembled token list to the command vector.
func (operation *ExecOperation) CommandList(tokens []string) *ExecOperation {
	operation.commandTokens = append(operation.commandTokens, tokens...)
	return operation
}

// ConfiguredCommand returns the accumulated command vector in configuration
// order.
func (operation *ExecOperation) ConfiguredCommand() CommandSpec {
	return NewCommandSpec(operation.commandTokens...)
}

// WorkDir overrides the working directory for the execution.
func (operation *ExecOperation) WorkDir(directoryPath string) *ExecOperation {
	operation.workingDirectoryOverride = directoryPath
	return operation
}

// Timeout bounds the execution with the provided duration.
func (operation *ExecOperation) Timeout(timeoutDuration time.Duration) *ExecOperation {
	operation.timeout = timeoutDuration
	return operation
}

// TimeoutSeconds bounds the execution with a whole number of seconds.
func (operation *ExecOperation) TimeoutSeconds(timeoutSeconds int) *ExecOperation {
	operation.timeout = time.Duration(timeoutSeconds) * time.Second
	return operation
}

// Fail adds failure modes to the configured set.
func (operation *ExecOperation) Fail(modes ...FailureMode) *ExecOperation {
	operation.failureModes = NewFailureModeSet(append(operation.failureModes.Members(), modes...)...)
	return operation
}

// FailOnExit configures the legacy boolean failure policy: true fails on a
// nonzero exit code, false never fails on content or exit grounds. Both
// lower to the same mode set the richer Fail API feeds.
func (operation *ExecOperation) FailOnExit(failOnExit bool) *ExecOperation {
	if failOnExit {
		operation.failureModes = NewFailureModeSet(FailureModeExit)
	} else {
		operation.failureModes = NewFailureModeSet(FailureModeNone)
	}
	return operation
}

// Silent suppresses diagnostic reporting for this operation.
func (operation *ExecOperation) Silent(silent bool) *ExecOperation {
	operation.silent = silent
	return operation
}

// FromProject attaches the project supplying the default working directory.
func (operation *ExecOperation) FromProject(project Project) *ExecOperation {
	operation.project = project
	return operation
}

// Environment sets additional environment variables for the execution.
func (operation *ExecOperation) Environment(environmentVariables map[string]string) *ExecOperation {
	operation.environmentVariables = environmentVariables
	return operation
}

// StandardInput supplies bytes fed to the process on stdin.
func (operation *ExecOperation) StandardInput(inputBytes []byte) *ExecOperation {
	operation.standardInput = inputBytes
	return operation
}

// WithProcessRunner substitutes the process runner, primarily for tests.
func (operation *ExecOperation) WithProcessRunner(runner ProcessRunner) *ExecOperation {
	if runner != nil {
		operation.processRunner = runner
	}
	return operation
}

// WithEventObserver attaches the reporting sink receiving lifecycle events.
func (operation *ExecOperation) WithEventObserver(observer ExecutionEventObserver) *ExecOperation {
	if observer != nil {
		operation.eventObserver = observer
	}
	return operation
}

// finalizeConfiguration snapshots the mutable builder state.
func (operation *ExecOperation) finalizeConfiguration() ExecutionConfig {
	defaultWorkingDirectory := ""
	if operation.project != nil {
		defaultWorkingDirectory = operation.project.WorkingDirectory()
	}

	snapshotTokens := make([]string, len(operation.commandTokens))
	copy(snapshotTokens, operation.commandTokens)

	var snapshotEnvironment map[string]string
	if len(operation.environmentVariables) > 0 {
		snapshotEnvironment = make(map[string]string, len(operation.environmentVariables))
		for environmentKey, environmentValue := range operation.environmentVariables {
			snapshotEnvironment[environmentKey] = environmentValue
		}
	}

	snapshotInput := make([]byte, len(operation.standardInput))
	copy(snapshotInput, operation.standardInput)

	return ExecutionConfig{
		CommandTokens:            snapshotTokens,
		WorkingDirectoryOverride: operation.workingDirectoryOverride,
		DefaultWorkingDirectory:  defaultWorkingDirectory,
		Timeout:                  operation.timeout,
		FailureModes:             NewFailureModeSet(operation.failureModes.Members()...),
		Silent:                   operation.silent,
		EnvironmentVariables:     snapshotEnvironment,
		StandardInput:            snapshotInput,
	}
}

// Execute resolves the working directory, runs the command with both stream
// drains racing the timeout, evaluates the failure policy, and reports the
// result through the configured observer. The returned error is always an
// ExecutionFailure when non-nil.
func (operation *ExecOperation) Execute(executionContext context.Context) error {
	configuration := operation.finalizeConfiguration()
	command := NewCommandSpec(configuration.CommandTokens...)

	observer := operation.eventObserver
	if configuration.Silent {
		observer = noopExecutionEventObserver{}
	}

	failWith := func(failure ExecutionFailure) error {
		observer.ExecutionFailed(command, failure)
		return failure
	}

	if operation.project == nil && len(strings.TrimSpace(configuration.WorkingDirectoryOverride)) == 0 {
		return failWith(NewConfigurationFailure(ErrExecutionContextMissing))
	}

	if validationError := executionConfigurationValidator.Struct(configuration); validationError != nil {
		return failWith(NewConfigurationFailure(fmt.Errorf(configurationValidationTemplateConstant, validationError)))
	}

	resolvedWorkingDirectory, resolutionError := operation.directoryResolver.Resolve(configuration.WorkingDirectoryOverride, configuration.DefaultWorkingDirectory)
	if resolutionError != nil {
		return failWith(asExecutionFailure(resolutionError))
	}

	observer.ExecutionStarted(command, resolvedWorkingDirectory)

	outcome, runError := operation.processRunner.Run(executionContext, ProcessRequest{
		Command:              command,
		WorkingDirectory:     resolvedWorkingDirectory,
		Timeout:              configuration.Timeout,
		EnvironmentVariables: configuration.EnvironmentVariables,
		StandardInput:        configuration.StandardInput,
	})
	if runError != nil {
		return failWith(asExecutionFailure(runError))
	}

	verdict := EvaluateFailurePolicy(outcome, configuration.FailureModes)
	if failure, failed := verdict.Failure(); failed {
		return failWith(failure)
	}

	observer.ExecutionSucceeded(command, outcome)
	return nil
}

// asExecutionFailure coerces an error into an ExecutionFailure, wrapping
// unclassified errors as spawn failures so callers always receive a typed
// kind.
func asExecutionFailure(candidateError error) ExecutionFailure {
	executionFailure := ExecutionFailure{}
	if errors.As(candidateError, &executionFailure) {
		return executionFailure
	}
	return ExecutionFailure{Kind: FailureKindSpawn, Detail: candidateError.Error(), Underlying: candidateError}
}
