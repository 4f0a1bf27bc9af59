package execute

// ExecutionEventObserver receives lifecycle notifications for command
// execution. Reporting is a side channel: it never influences the verdict.
type ExecutionEventObserver interface {
	// ExecutionStarted notifies observers that a command is about to run.
	ExecutionStarted(command CommandSpec, workingDirectory string)
	// ExecutionSucceeded notifies observers that a command passed the failure
	// policy and supplies the raw outcome so captured output can be echoed.
	ExecutionSucceeded(command CommandSpec, outcome ExecutionOutcome)
	// ExecutionFailed reports the failure that decided a failing verdict or
	// prevented the command from running at all.
	ExecutionFailed(command CommandSpec, failure ExecutionFailure)
}

// noopExecutionEventObserver discards all execution events; it backs the
// silent flag.
type noopExecutionEventObserver struct{}

// ExecutionStarted implements ExecutionEventObserver for the no-op observer.
func (noopExecutionEventObserver) ExecutionStarted(CommandSpec, string) {}

// ExecutionSucceeded implements ExecutionEventObserver for the no-op observer.
func (noopExecutionEventObserver) ExecutionSucceeded(CommandSpec, ExecutionOutcome) {}

// ExecutionFailed implements ExecutionEventObserver for the no-op observer.
func (noopExecutionEventObserver) ExecutionFailed(CommandSpec, ExecutionFailure) {}

// NoopExecutionEventObserver returns an observer that drops every event.
func NoopExecutionEventObserver() ExecutionEventObserver {
	return noopExecutionEventObserver{}
}
