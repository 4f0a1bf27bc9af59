// Package script assembles the subcommand that runs an ordered batch of
// command executions defined in a YAML or JSON file.
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rife2/bld-exec/internal/execute"
	"github.com/rife2/bld-exec/internal/script"
	"github.com/rife2/bld-exec/internal/ui"
)

const (
	commandUseConstant                    = "script [script-file]"
	commandShortDescriptionConstant       = "Run the steps defined in a script file"
	commandLongDescriptionConstant        = "script executes the command steps defined in a YAML or JSON file sequentially, stopping at the first failing step."
	workDirFlagNameConstant               = "workdir"
	workDirFlagDescriptionConstant        = "Default working directory for script steps"
	scriptPathRequiredMessageConstant     = "script file path required; provide a positional argument or configure script_path"
	loadScriptErrorTemplateConstant       = "unable to load script: %w"
	resolveStepsErrorTemplateConstant     = "unable to resolve script steps: %w"
	workingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"
)

// LoggerProvider supplies the logger assembled during application start.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the script command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	ProcessRunner         execute.ProcessRunner
	EventObserver         execute.ExecutionEventObserver
	WorkingDirectory      string
}

// Build constructs the script command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(workDirFlagNameConstant, "", workDirFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	commandConfiguration := builder.resolveConfiguration()

	scriptPath := commandConfiguration.ScriptPath
	if len(arguments) > 0 {
		scriptPath = strings.TrimSpace(arguments[0])
	}
	if len(scriptPath) == 0 {
		if helpError := command.Help(); helpError != nil {
			return helpError
		}
		return errors.New(scriptPathRequiredMessageConstant)
	}

	configuration, loadError := script.LoadConfiguration(scriptPath)
	if loadError != nil {
		return fmt.Errorf(loadScriptErrorTemplateConstant, loadError)
	}

	resolvedSteps, resolveError := configuration.ResolveSteps()
	if resolveError != nil {
		return fmt.Errorf(resolveStepsErrorTemplateConstant, resolveError)
	}

	project, projectError := builder.resolveProject(command, commandConfiguration)
	if projectError != nil {
		return projectError
	}

	logger := builder.resolveLogger()
	runner := script.NewRunner(script.Dependencies{
		Logger:        logger,
		ProcessRunner: builder.ProcessRunner,
		EventObserver: builder.resolveEventObserver(logger),
		Project:       project,
	})

	return runner.Run(command.Context(), resolvedSteps)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveProject(command *cobra.Command, configuration CommandConfiguration) (execute.Project, error) {
	workingDirectory := configuration.WorkDir
	if command.Flags().Changed(workDirFlagNameConstant) {
		workingDirectory, _ = command.Flags().GetString(workDirFlagNameConstant)
	}
	if len(workingDirectory) == 0 {
		workingDirectory = builder.WorkingDirectory
	}
	if len(workingDirectory) == 0 {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return nil, fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}
	return execute.StaticProject{Directory: workingDirectory}, nil
}

func (builder *CommandBuilder) resolveEventObserver(logger *zap.Logger) execute.ExecutionEventObserver {
	if builder.EventObserver != nil {
		return builder.EventObserver
	}
	return ui.NewConsoleExecutionEventLogger(logger)
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
