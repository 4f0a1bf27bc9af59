package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rife2/bld-exec/internal/execute"
)

const (
	executionStartedMessageTemplateConstant   = "Running %s"
	executionSucceededMessageTemplateConstant = "Completed %s"
	executionFailedMessageTemplateConstant    = "%s failed: %s"
	commandLabelTemplateConstant              = "%s%s"
	workingDirectorySuffixTemplateConstant    = " (in %s)"
	emptyStringConstant                       = ""
)

// ExecutionEventFormatter builds human-readable messages for execution lifecycle events.
type ExecutionEventFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter ExecutionEventFormatter) BuildStartedMessage(command execute.CommandSpec, workingDirectory string) string {
	return fmt.Sprintf(executionStartedMessageTemplateConstant, formatter.formatCommandLabel(command, workingDirectory))
}

// BuildSuccessMessage formats the message describing a command that passed the failure policy.
func (formatter ExecutionEventFormatter) BuildSuccessMessage(command execute.CommandSpec) string {
	return fmt.Sprintf(executionSucceededMessageTemplateConstant, formatter.formatCommandLabel(command, emptyStringConstant))
}

// BuildFailureMessage formats the message describing a failed execution.
func (formatter ExecutionEventFormatter) BuildFailureMessage(command execute.CommandSpec, failure execute.ExecutionFailure) string {
	return fmt.Sprintf(executionFailedMessageTemplateConstant, formatter.formatCommandLabel(command, emptyStringConstant), failure.Detail)
}

func (formatter ExecutionEventFormatter) formatCommandLabel(command execute.CommandSpec, workingDirectory string) string {
	return fmt.Sprintf(commandLabelTemplateConstant, command.String(), formatter.formatWorkingDirectorySuffix(workingDirectory))
}

func (formatter ExecutionEventFormatter) formatWorkingDirectorySuffix(workingDirectory string) string {
	trimmedWorkingDirectory := strings.TrimSpace(workingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

// ConsoleExecutionEventLogger renders execution lifecycle events using a zap
// logger configured for human-readable output. On success it echoes the
// captured stdout lines at info level so callers see what the command
// printed.
type ConsoleExecutionEventLogger struct {
	logger    *zap.Logger
	formatter ExecutionEventFormatter
}

// NewConsoleExecutionEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleExecutionEventLogger(logger *zap.Logger) *ConsoleExecutionEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleExecutionEventLogger{logger: logger, formatter: ExecutionEventFormatter{}}
}

// ExecutionStarted implements execute.ExecutionEventObserver by logging start notifications.
func (eventLogger *ConsoleExecutionEventLogger) ExecutionStarted(command execute.CommandSpec, workingDirectory string) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command, workingDirectory))
}

// ExecutionSucceeded implements execute.ExecutionEventObserver by logging completion notifications and echoing captured stdout.
func (eventLogger *ConsoleExecutionEventLogger) ExecutionSucceeded(command execute.CommandSpec, outcome execute.ExecutionOutcome) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command))
	for _, standardOutputLine := range outcome.StandardOutputLines {
		eventLogger.logger.Info(standardOutputLine)
	}
}

// ExecutionFailed implements execute.ExecutionEventObserver by logging failure notifications.
func (eventLogger *ConsoleExecutionEventLogger) ExecutionFailed(command execute.CommandSpec, failure execute.ExecutionFailure) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildFailureMessage(command, failure))
}
