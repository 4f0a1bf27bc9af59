package execute

import "fmt"

const (
	timeoutDetailMessageConstant            = "command timed out"
	exitStatusDetailTemplateConstant        = "exit status %d"
	exitStatusStreamSuffixTemplateConstant  = "%s, %s: %s"
	standardErrorStreamLabelConstant        = "stderr"
	standardOutputStreamLabelConstant       = "stdout"
	timedOutExitCodePlaceholderConstant     = -1
	successfulExitCodeUpperBoundaryConstant = 0
)

// Verdict is the final pass or fail decision for a completed execution.
type Verdict struct {
	failure *ExecutionFailure
}

// SuccessVerdict builds a passing verdict.
func SuccessVerdict() Verdict {
	return Verdict{}
}

// FailureVerdict builds a failing verdict carrying the given failure.
func FailureVerdict(failure ExecutionFailure) Verdict {
	return Verdict{failure: &failure}
}

// Successful reports whether the execution passed.
func (verdict Verdict) Successful() bool {
	return verdict.failure == nil
}

// Failure returns the failure and true when the execution failed.
func (verdict Verdict) Failure() (ExecutionFailure, bool) {
	if verdict.failure == nil {
		return ExecutionFailure{}, false
	}
	return *verdict.failure, true
}

// EvaluateFailurePolicy maps a raw process outcome and the configured failure
// modes to a verdict. A timed-out outcome always fails regardless of the
// mode set, and a set containing FailureModeNone succeeds on any completed
// run. Otherwise shorthand modes expand to the primitive triggers and the
// first matching trigger wins in fixed precedence: exit code, then stderr,
// then stdout. The surfaced detail carries the first line of the stream that
// decided the verdict.
func EvaluateFailurePolicy(outcome ExecutionOutcome, modes FailureModeSet) Verdict {
	if outcome.TimedOut {
		return FailureVerdict(ExecutionFailure{
			Kind:     FailureKindTimeout,
			Detail:   timeoutDetailMessageConstant,
			ExitCode: timedOutExitCodePlaceholderConstant,
		})
	}

	if modes.Contains(FailureModeNone) {
		return SuccessVerdict()
	}

	triggers := modes.expandPrimitives()

	if triggers.failOnExitCode && outcome.ExitCode > successfulExitCodeUpperBoundaryConstant {
		return FailureVerdict(ExecutionFailure{
			Kind:     FailureKindExitStatus,
			Detail:   buildExitStatusDetail(outcome),
			ExitCode: outcome.ExitCode,
		})
	}

	if triggers.failOnStandardError && len(outcome.StandardErrorLines) > 0 {
		return FailureVerdict(ExecutionFailure{
			Kind:     FailureKindStandardError,
			Detail:   outcome.FirstStandardErrorLine(),
			ExitCode: outcome.ExitCode,
		})
	}

	if triggers.failOnStandardOutput && len(outcome.StandardOutputLines) > 0 {
		return FailureVerdict(ExecutionFailure{
			Kind:     FailureKindStandardOutput,
			Detail:   outcome.FirstStandardOutputLine(),
			ExitCode: outcome.ExitCode,
		})
	}

	return SuccessVerdict()
}

// buildExitStatusDetail renders the exit code together with the first stderr
// line, falling back to the first stdout line when stderr stayed empty.
func buildExitStatusDetail(outcome ExecutionOutcome) string {
	baseDetail := fmt.Sprintf(exitStatusDetailTemplateConstant, outcome.ExitCode)

	firstStandardErrorLine := outcome.FirstStandardErrorLine()
	if len(firstStandardErrorLine) > 0 {
		return fmt.Sprintf(exitStatusStreamSuffixTemplateConstant, baseDetail, standardErrorStreamLabelConstant, firstStandardErrorLine)
	}

	firstStandardOutputLine := outcome.FirstStandardOutputLine()
	if len(firstStandardOutputLine) > 0 {
		return fmt.Sprintf(exitStatusStreamSuffixTemplateConstant, baseDetail, standardOutputStreamLabelConstant, firstStandardOutputLine)
	}

	return baseDetail
}
