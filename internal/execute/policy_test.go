package execute_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rife2/bld-exec/internal/execute"
)

const (
	testCleanExitCaseNameConstant             = "clean_exit_default_modes"
	testTimeoutOverridesModesCaseNameConstant = "timeout_overrides_none"
	testExitModeCaseNameConstant              = "exit_mode_nonzero_code"
	testNoneModeCaseNameConstant              = "none_mode_ignores_exit"
	testStderrModeCaseNameConstant            = "stderr_mode_first_line"
	testStdoutModeCaseNameConstant            = "stdout_mode_first_line"
	testOutputShorthandCaseNameConstant       = "output_shorthand"
	testNormalShorthandCaseNameConstant       = "normal_shorthand_ignores_stdout"
	testAllShorthandPrecedenceCaseConstant    = "all_shorthand_exit_precedence"
	testStderrBeforeStdoutCaseNameConstant    = "stderr_before_stdout"
	testEmptySetDefaultsNormalCaseConstant    = "empty_set_defaults_to_normal"
	testExitDetailStdoutFallbackCaseConstant  = "exit_detail_falls_back_to_stdout"

	testFirstStandardErrorLineConstant  = "boom: first stderr line"
	testSecondStandardErrorLineConstant = "second stderr line"
	testFirstStandardOutputLineConstant = "hello"
	testNonzeroExitCodeConstant         = 2
	testSignalExitCodeConstant          = 137
)

func TestEvaluateFailurePolicy(testInstance *testing.T) {
	testCases := []struct {
		name           string
		outcome        execute.ExecutionOutcome
		modes          execute.FailureModeSet
		expectedKind   execute.FailureKind
		expectedDetail string
		expectSuccess  bool
	}{
		{
			name:          testCleanExitCaseNameConstant,
			outcome:       execute.ExecutionOutcome{ExitCodeKnown: true},
			modes:         execute.NewFailureModeSet(),
			expectSuccess: true,
		},
		{
			name:         testTimeoutOverridesModesCaseNameConstant,
			outcome:      execute.ExecutionOutcome{TimedOut: true},
			modes:        execute.NewFailureModeSet(execute.FailureModeNone),
			expectedKind: execute.FailureKindTimeout,
		},
		{
			name:           testExitModeCaseNameConstant,
			outcome:        execute.ExecutionOutcome{ExitCode: testNonzeroExitCodeConstant, ExitCodeKnown: true},
			modes:          execute.NewFailureModeSet(execute.FailureModeExit),
			expectedKind:   execute.FailureKindExitStatus,
			expectedDetail: "exit status 2",
		},
		{
			name:          testNoneModeCaseNameConstant,
			outcome:       execute.ExecutionOutcome{ExitCode: testSignalExitCodeConstant, ExitCodeKnown: true},
			modes:         execute.NewFailureModeSet(execute.FailureModeNone),
			expectSuccess: true,
		},
		{
			name: testStderrModeCaseNameConstant,
			outcome: execute.ExecutionOutcome{
				ExitCodeKnown:      true,
				StandardErrorLines: []string{testFirstStandardErrorLineConstant, testSecondStandardErrorLineConstant},
			},
			modes:          execute.NewFailureModeSet(execute.FailureModeStderr),
			expectedKind:   execute.FailureKindStandardError,
			expectedDetail: testFirstStandardErrorLineConstant,
		},
		{
			name: testStdoutModeCaseNameConstant,
			outcome: execute.ExecutionOutcome{
				ExitCodeKnown:       true,
				StandardOutputLines: []string{testFirstStandardOutputLineConstant},
			},
			modes:          execute.NewFailureModeSet(execute.FailureModeStdout),
			expectedKind:   execute.FailureKindStandardOutput,
			expectedDetail: testFirstStandardOutputLineConstant,
		},
		{
			name: testOutputShorthandCaseNameConstant,
			outcome: execute.ExecutionOutcome{
				ExitCodeKnown:       true,
				StandardOutputLines: []string{testFirstStandardOutputLineConstant},
			},
			modes:          execute.NewFailureModeSet(execute.FailureModeOutput),
			expectedKind:   execute.FailureKindStandardOutput,
			expectedDetail: testFirstStandardOutputLineConstant,
		},
		{
			name: testNormalShorthandCaseNameConstant,
			outcome: execute.ExecutionOutcome{
				ExitCodeKnown:       true,
				StandardOutputLines: []string{testFirstStandardOutputLineConstant},
			},
			modes:         execute.NewFailureModeSet(execute.FailureModeNormal),
			expectSuccess: true,
		},
		{
			name: testAllShorthandPrecedenceCaseConstant,
			outcome: execute.ExecutionOutcome{
				ExitCode:            testNonzeroExitCodeConstant,
				ExitCodeKnown:       true,
				StandardOutputLines: []string{testFirstStandardOutputLineConstant},
				StandardErrorLines:  []string{testFirstStandardErrorLineConstant},
			},
			modes:          execute.NewFailureModeSet(execute.FailureModeAll),
			expectedKind:   execute.FailureKindExitStatus,
			expectedDetail: "exit status 2, stderr: " + testFirstStandardErrorLineConstant,
		},
		{
			name: testStderrBeforeStdoutCaseNameConstant,
			outcome: execute.ExecutionOutcome{
				ExitCodeKnown:       true,
				StandardOutputLines: []string{testFirstStandardOutputLineConstant},
				StandardErrorLines:  []string{testFirstStandardErrorLineConstant},
			},
			modes:          execute.NewFailureModeSet(execute.FailureModeStderr, execute.FailureModeStdout),
			expectedKind:   execute.FailureKindStandardError,
			expectedDetail: testFirstStandardErrorLineConstant,
		},
		{
			name: testEmptySetDefaultsNormalCaseConstant,
			outcome: execute.ExecutionOutcome{
				ExitCodeKnown:      true,
				StandardErrorLines: []string{testFirstStandardErrorLineConstant},
			},
			modes:          execute.NewFailureModeSet(),
			expectedKind:   execute.FailureKindStandardError,
			expectedDetail: testFirstStandardErrorLineConstant,
		},
		{
			name: testExitDetailStdoutFallbackCaseConstant,
			outcome: execute.ExecutionOutcome{
				ExitCode:            testNonzeroExitCodeConstant,
				ExitCodeKnown:       true,
				StandardOutputLines: []string{testFirstStandardOutputLineConstant},
			},
			modes:          execute.NewFailureModeSet(execute.FailureModeExit),
			expectedKind:   execute.FailureKindExitStatus,
			expectedDetail: "exit status 2, stdout: " + testFirstStandardOutputLineConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			verdict := execute.EvaluateFailurePolicy(testCase.outcome, testCase.modes)

			if testCase.expectSuccess {
				require.True(testInstance, verdict.Successful())
				_, failed := verdict.Failure()
				require.False(testInstance, failed)
				return
			}

			require.False(testInstance, verdict.Successful())
			failure, failed := verdict.Failure()
			require.True(testInstance, failed)
			require.Equal(testInstance, testCase.expectedKind, failure.Kind)
			if len(testCase.expectedDetail) > 0 {
				require.Equal(testInstance, testCase.expectedDetail, failure.Detail)
			}
		})
	}
}

func TestExitStatusDetailMentionsCode(testInstance *testing.T) {
	outcome := execute.ExecutionOutcome{ExitCode: testNonzeroExitCodeConstant, ExitCodeKnown: true}
	verdict := execute.EvaluateFailurePolicy(outcome, execute.NewFailureModeSet(execute.FailureModeExit))

	failure, failed := verdict.Failure()
	require.True(testInstance, failed)
	require.Contains(testInstance, failure.Detail, "2")
	require.Equal(testInstance, testNonzeroExitCodeConstant, failure.ExitCode)
}
