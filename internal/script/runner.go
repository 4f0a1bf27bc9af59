package script

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/rife2/bld-exec/internal/execute"
	"github.com/rife2/bld-exec/internal/osinfo"
)

const (
	stepFailedTemplateConstant        = "script step %q failed: %w"
	stepStartedLogMessageConstant     = "Starting script step"
	stepSkippedLogMessageConstant     = "Skipping script step"
	scriptCompletedLogMessageConstant = "Script completed"
	stepNameLogFieldConstant          = "step"
	stepIndexLogFieldConstant         = "index"
	stepTotalLogFieldConstant         = "total"
	hostPlatformLogFieldConstant      = "host_platform"
)

// Dependencies centralizes the collaborators injected into the Runner.
type Dependencies struct {
	Logger        *zap.Logger
	ProcessRunner execute.ProcessRunner
	EventObserver execute.ExecutionEventObserver
	Project       execute.Project
	HostPlatform  osinfo.PlatformFamily
}

// Runner executes the steps of a loaded script sequentially.
type Runner struct {
	dependencies Dependencies
}

// NewRunner constructs a Runner, filling absent collaborators with inert
// defaults.
func NewRunner(dependencies Dependencies) *Runner {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.ProcessRunner == nil {
		dependencies.ProcessRunner = execute.NewProcessExecutor()
	}
	if dependencies.EventObserver == nil {
		dependencies.EventObserver = execute.NoopExecutionEventObserver()
	}
	if len(dependencies.HostPlatform) == 0 {
		dependencies.HostPlatform = osinfo.Classify(runtime.GOOS)
	}
	return &Runner{dependencies: dependencies}
}

// Run executes every resolved step in order. The first failing step aborts
// the batch and its error is returned wrapped with the step name.
func (runner *Runner) Run(executionContext context.Context, steps []ResolvedStep) error {
	for stepIndex, step := range steps {
		if !step.RunsOn(runner.dependencies.HostPlatform) {
			runner.dependencies.Logger.Info(stepSkippedLogMessageConstant,
				zap.String(stepNameLogFieldConstant, step.Name),
				zap.String(hostPlatformLogFieldConstant, string(runner.dependencies.HostPlatform)),
			)
			continue
		}

		runner.dependencies.Logger.Info(stepStartedLogMessageConstant,
			zap.String(stepNameLogFieldConstant, step.Name),
			zap.Int(stepIndexLogFieldConstant, stepIndex+1),
			zap.Int(stepTotalLogFieldConstant, len(steps)),
		)

		operation := execute.NewExecOperation().
			CommandList(step.Command).
			Timeout(step.Timeout).
			Silent(step.Silent).
			WithProcessRunner(runner.dependencies.ProcessRunner).
			WithEventObserver(runner.dependencies.EventObserver)
		if runner.dependencies.Project != nil {
			operation.FromProject(runner.dependencies.Project)
		}
		if len(step.WorkDir) > 0 {
			operation.WorkDir(step.WorkDir)
		}
		if !step.FailureModes.IsEmpty() {
			operation.Fail(step.FailureModes.Members()...)
		}

		if executionError := operation.Execute(executionContext); executionError != nil {
			return fmt.Errorf(stepFailedTemplateConstant, step.Name, executionError)
		}
	}

	runner.dependencies.Logger.Info(scriptCompletedLogMessageConstant,
		zap.Int(stepTotalLogFieldConstant, len(steps)),
	)
	return nil
}
