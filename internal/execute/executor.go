package execute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	standardOutputPipeLabelConstant        = "stdout pipe"
	standardErrorPipeLabelConstant         = "stderr pipe"
	pipeCreationFailureTemplateConstant    = "unable to open %s: %w"

	// drainJoinGracePeriodConstant bounds how long a timed-out run waits for
	// the drains after the kill. Descendants that inherited the pipe write
	// ends can hold them open past the child's death; once the grace expires
	// the read ends are closed so the drains can never block termination.
	drainJoinGracePeriodConstant = 250 * time.Millisecond
)

// ProcessRequest describes a single process invocation handed to a
// ProcessRunner. The working directory must already be resolved and
// validated.
type ProcessRequest struct {
	Command              CommandSpec
	WorkingDirectory     string
	Timeout              time.Duration
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ExecutionOutcome captures the raw observable result of a process run.
// ExitCodeKnown is false when the process timed out and was killed before
// reporting an exit status. A non-nil StreamReadError means a drain stopped
// scanning early (for example on a line exceeding the buffer cap); the line
// slices then hold the complete prefix read before the error.
type ExecutionOutcome struct {
	ExitCode            int
	ExitCodeKnown       bool
	StandardOutputLines []string
	StandardErrorLines  []string
	TimedOut            bool
	StreamReadError     error
}

// FirstStandardErrorLine returns the first stderr line, or an empty string.
func (outcome ExecutionOutcome) FirstStandardErrorLine() string {
	if len(outcome.StandardErrorLines) == 0 {
		return ""
	}
	return outcome.StandardErrorLines[0]
}

// FirstStandardOutputLine returns the first stdout line, or an empty string.
func (outcome ExecutionOutcome) FirstStandardOutputLine() string {
	if len(outcome.StandardOutputLines) == 0 {
		return ""
	}
	return outcome.StandardOutputLines[0]
}

// ProcessRunner represents the ability to run a prepared process request.
type ProcessRunner interface {
	Run(executionContext context.Context, request ProcessRequest) (ExecutionOutcome, error)
}

// ProcessExecutor runs commands using os/exec with concurrent stream drains
// and a hard timeout.
type ProcessExecutor struct{}

// NewProcessExecutor constructs a ProcessExecutor.
func NewProcessExecutor() *ProcessExecutor {
	return &ProcessExecutor{}
}

type processCompletion struct {
	standardOutputLines []string
	standardErrorLines  []string
	streamReadError     error
	waitError           error
}

// Run spawns the requested command, starts both stream drains immediately,
// and waits for termination bounded by the request timeout. When the timeout
// expires first the process is killed outright and the outcome reports
// TimedOut with whatever lines the drains had collected. Spawn problems are
// returned as an ExecutionFailure of kind FailureKindSpawn before any
// draining begins.
func (executor *ProcessExecutor) Run(executionContext context.Context, request ProcessRequest) (ExecutionOutcome, error) {
	if request.Command.IsEmpty() {
		return ExecutionOutcome{}, NewConfigurationFailure(ErrCommandNotConfigured)
	}
	if request.Timeout <= 0 {
		return ExecutionOutcome{}, NewConfigurationFailure(ErrNonPositiveTimeout)
	}

	executable := exec.Command(request.Command.Executable(), request.Command.Arguments()...)
	executable.Dir = request.WorkingDirectory

	if len(request.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range request.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	if len(request.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(request.StandardInput)
	}

	standardOutputPipe, standardOutputPipeError := executable.StdoutPipe()
	if standardOutputPipeError != nil {
		return ExecutionOutcome{}, pipeFailure(standardOutputPipeLabelConstant, request.Command, standardOutputPipeError)
	}
	standardErrorPipe, standardErrorPipeError := executable.StderrPipe()
	if standardErrorPipeError != nil {
		return ExecutionOutcome{}, pipeFailure(standardErrorPipeLabelConstant, request.Command, standardErrorPipeError)
	}

	if startError := executable.Start(); startError != nil {
		return ExecutionOutcome{}, NewSpawnFailure(request.Command.Executable(), startError)
	}

	standardOutputDrain := StartOutputDrain(standardOutputPipe)
	standardErrorDrain := StartOutputDrain(standardErrorPipe)

	// Both drains must finish before Wait may reap the process, otherwise a
	// child filling a pipe faster than it is read deadlocks against the
	// waiting goroutine.
	completionSignal := make(chan processCompletion, 1)
	go func() {
		standardOutputLines := standardOutputDrain.Wait()
		standardErrorLines := standardErrorDrain.Wait()
		waitError := executable.Wait()
		completionSignal <- processCompletion{
			standardOutputLines: standardOutputLines,
			standardErrorLines:  standardErrorLines,
			streamReadError:     errors.Join(standardOutputDrain.ReadError(), standardErrorDrain.ReadError()),
			waitError:           waitError,
		}
	}()

	timeoutContext, cancelTimeout := context.WithTimeout(executionContext, request.Timeout)
	defer cancelTimeout()

	select {
	case completion := <-completionSignal:
		return buildCompletedOutcome(completion)
	case <-timeoutContext.Done():
		_ = executable.Process.Kill()
		// Killing the child normally closes both pipes, letting the drains
		// finish and the wait goroutine reap the process. Descendants that
		// inherited the write ends can keep the pipes open past the kill, so
		// after the grace period the read ends are closed to unblock the
		// drains regardless.
		select {
		case completion := <-completionSignal:
			return buildTimedOutOutcome(completion), nil
		case <-time.After(drainJoinGracePeriodConstant):
			_ = standardOutputPipe.Close()
			_ = standardErrorPipe.Close()
			completion := <-completionSignal
			return buildTimedOutOutcome(completion), nil
		}
	}
}

func buildTimedOutOutcome(completion processCompletion) ExecutionOutcome {
	return ExecutionOutcome{
		StandardOutputLines: completion.standardOutputLines,
		StandardErrorLines:  completion.standardErrorLines,
		StreamReadError:     completion.streamReadError,
		TimedOut:            true,
	}
}

func buildCompletedOutcome(completion processCompletion) (ExecutionOutcome, error) {
	outcome := ExecutionOutcome{
		StandardOutputLines: completion.standardOutputLines,
		StandardErrorLines:  completion.standardErrorLines,
		StreamReadError:     completion.streamReadError,
		ExitCodeKnown:       true,
	}

	if completion.waitError != nil {
		exitError := &exec.ExitError{}
		if errors.As(completion.waitError, &exitError) {
			outcome.ExitCode = exitError.ExitCode()
			return outcome, nil
		}
		return ExecutionOutcome{}, completion.waitError
	}

	return outcome, nil
}

func pipeFailure(pipeLabel string, command CommandSpec, cause error) error {
	return NewSpawnFailure(command.Executable(), fmt.Errorf(pipeCreationFailureTemplateConstant, pipeLabel, cause))
}
