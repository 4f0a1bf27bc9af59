// Package run assembles the subcommand that executes a single external
// command under the configured timeout and failure policy.
package run

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rife2/bld-exec/internal/execute"
	"github.com/rife2/bld-exec/internal/ui"
	flagutils "github.com/rife2/bld-exec/internal/utils/flags"
)

const (
	commandUseConstant                     = "run [flags] -- command [arguments...]"
	commandShortDescriptionConstant        = "Execute an external command"
	commandLongDescriptionConstant         = "run launches an external command, drains its output streams, bounds it with a timeout, and classifies the outcome against the configured failure policy."
	workDirFlagNameConstant                = "workdir"
	workDirFlagDescriptionConstant         = "Working directory for the command"
	timeoutFlagNameConstant                = "timeout"
	timeoutFlagDescriptionConstant         = "Maximum duration the command may run"
	failFlagNameConstant                   = "fail"
	failFlagDescriptionConstant            = "Failure modes turning a completed command into an error (exit, stderr, stdout, output, normal, all, none)"
	silentFlagNameConstant                 = "silent"
	silentFlagDescriptionConstant          = "Suppress execution reporting"
	environmentFlagNameConstant            = "env"
	environmentFlagDescriptionConstant     = "Additional environment variables as KEY=VALUE pairs"
	commandTokensRequiredMessageConstant   = "command tokens required; provide them after --"
	failureModeParseErrorTemplateConstant  = "unable to parse failure modes: %w"
	workingDirectoryErrorTemplateConstant  = "unable to determine working directory: %w"
)

// LoggerProvider supplies the logger assembled during application start.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the run command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	ProcessRunner         execute.ProcessRunner
	EventObserver         execute.ExecutionEventObserver
	WorkingDirectory      string
}

// Build constructs the run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	var silentFlagValue bool

	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, silentFlagValue)
		},
	}

	command.Flags().String(workDirFlagNameConstant, "", workDirFlagDescriptionConstant)
	command.Flags().Duration(timeoutFlagNameConstant, execute.DefaultTimeout, timeoutFlagDescriptionConstant)
	command.Flags().StringSlice(failFlagNameConstant, nil, failFlagDescriptionConstant)
	command.Flags().StringToString(environmentFlagNameConstant, nil, environmentFlagDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), &silentFlagValue, silentFlagNameConstant, "", false, silentFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, silentFlagValue bool) error {
	if len(arguments) == 0 {
		if helpError := command.Help(); helpError != nil {
			return helpError
		}
		return errors.New(commandTokensRequiredMessageConstant)
	}

	commandConfiguration := builder.resolveConfiguration()

	workingDirectoryOverride := commandConfiguration.WorkDir
	if command.Flags().Changed(workDirFlagNameConstant) {
		workingDirectoryOverride, _ = command.Flags().GetString(workDirFlagNameConstant)
	}

	timeout := commandConfiguration.Timeout
	if command.Flags().Changed(timeoutFlagNameConstant) {
		timeout, _ = command.Flags().GetDuration(timeoutFlagNameConstant)
	}

	failureModeNames := commandConfiguration.Fail
	if command.Flags().Changed(failFlagNameConstant) {
		failureModeNames, _ = command.Flags().GetStringSlice(failFlagNameConstant)
	}
	failureModes, failureModeError := execute.ParseFailureModeSet(failureModeNames)
	if failureModeError != nil {
		return fmt.Errorf(failureModeParseErrorTemplateConstant, failureModeError)
	}

	silent := commandConfiguration.Silent
	if command.Flags().Changed(silentFlagNameConstant) {
		silent = silentFlagValue
	}

	environmentVariables, _ := command.Flags().GetStringToString(environmentFlagNameConstant)

	project, projectError := builder.resolveProject()
	if projectError != nil {
		return projectError
	}

	operation := execute.NewExecOperation().
		CommandList(arguments).
		Timeout(timeout).
		Silent(silent).
		FromProject(project).
		WithEventObserver(builder.resolveEventObserver()).
		WithProcessRunner(builder.ProcessRunner)
	if len(workingDirectoryOverride) > 0 {
		operation.WorkDir(workingDirectoryOverride)
	}
	if !failureModes.IsEmpty() {
		operation.Fail(failureModes.Members()...)
	}
	if len(environmentVariables) > 0 {
		operation.Environment(environmentVariables)
	}

	return operation.Execute(command.Context())
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveProject() (execute.Project, error) {
	if len(builder.WorkingDirectory) > 0 {
		return execute.StaticProject{Directory: builder.WorkingDirectory}, nil
	}
	currentDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return nil, fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
	}
	return execute.StaticProject{Directory: currentDirectory}, nil
}

func (builder *CommandBuilder) resolveEventObserver() execute.ExecutionEventObserver {
	if builder.EventObserver != nil {
		return builder.EventObserver
	}
	return ui.NewConsoleExecutionEventLogger(builder.resolveLogger())
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	if logger := builder.LoggerProvider(); logger != nil {
		return logger
	}
	return zap.NewNop()
}
