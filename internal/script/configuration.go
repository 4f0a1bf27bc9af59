package script

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rife2/bld-exec/internal/execute"
	"github.com/rife2/bld-exec/internal/osinfo"
)

const (
	configurationLoadErrorTemplateConstant      = "failed to load script configuration: %w"
	configurationParseErrorTemplateConstant     = "failed to parse script configuration: %w"
	configurationPathRequiredMessageConstant    = "script configuration path must be provided"
	configurationEmptyStepsMessageConstant      = "script configuration must define at least one step"
	stepCommandMissingTemplateConstant          = "script step %d missing command tokens"
	stepTimeoutInvalidTemplateConstant          = "script step %d has invalid timeout %q: %w"
	stepFailureModeInvalidTemplateConstant      = "script step %d has invalid failure mode: %w"
	stepPlatformUnknownTemplateConstant         = "script step %d names unknown platform %q"
	defaultStepNameTemplateConstant             = "step %d"
)

// StepConfiguration describes a single command execution within a script.
type StepConfiguration struct {
	Name    string   `yaml:"name" json:"name"`
	Command []string `yaml:"command" json:"command"`
	WorkDir string   `yaml:"work_dir" json:"work_dir"`
	Timeout string   `yaml:"timeout" json:"timeout"`
	Fail    []string `yaml:"fail" json:"fail"`
	Silent  bool     `yaml:"silent" json:"silent"`
	OnlyOn  []string `yaml:"only_on" json:"only_on"`
}

// Configuration holds the ordered script steps loaded from YAML or JSON.
type Configuration struct {
	Steps []StepConfiguration `yaml:"steps" json:"steps"`
}

// ResolvedStep is a validated step ready to execute.
type ResolvedStep struct {
	Name         string
	Command      []string
	WorkDir      string
	Timeout      time.Duration
	FailureModes execute.FailureModeSet
	Silent       bool
	Platforms    []osinfo.PlatformFamily
}

// RunsOn reports whether the step applies to the given host platform. Steps
// without platform constraints run everywhere.
func (step ResolvedStep) RunsOn(hostPlatform osinfo.PlatformFamily) bool {
	if len(step.Platforms) == 0 {
		return true
	}
	for _, platform := range step.Platforms {
		if platform == hostPlatform {
			return true
		}
	}
	return false
}

// LoadConfiguration reads the script definition from disk and performs basic
// validation.
func LoadConfiguration(filePath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Configuration{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	var configuration Configuration
	if unmarshalError := yaml.Unmarshal(contentBytes, &configuration); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}

	if len(configuration.Steps) == 0 {
		return Configuration{}, errors.New(configurationEmptyStepsMessageConstant)
	}

	return configuration, nil
}

// ResolveSteps validates every step and converts raw values into executable
// form. Steps without an explicit timeout inherit the default execution
// timeout, and steps without failure modes inherit the NORMAL default.
func (configuration Configuration) ResolveSteps() ([]ResolvedStep, error) {
	resolvedSteps := make([]ResolvedStep, 0, len(configuration.Steps))

	for stepIndex, stepConfiguration := range configuration.Steps {
		if len(stepConfiguration.Command) == 0 {
			return nil, fmt.Errorf(stepCommandMissingTemplateConstant, stepIndex)
		}

		stepTimeout := execute.DefaultTimeout
		if trimmedTimeout := strings.TrimSpace(stepConfiguration.Timeout); len(trimmedTimeout) > 0 {
			parsedTimeout, parseError := time.ParseDuration(trimmedTimeout)
			if parseError != nil {
				return nil, fmt.Errorf(stepTimeoutInvalidTemplateConstant, stepIndex, stepConfiguration.Timeout, parseError)
			}
			stepTimeout = parsedTimeout
		}

		failureModes, parseError := execute.ParseFailureModeSet(stepConfiguration.Fail)
		if parseError != nil {
			return nil, fmt.Errorf(stepFailureModeInvalidTemplateConstant, stepIndex, parseError)
		}

		stepPlatforms := make([]osinfo.PlatformFamily, 0, len(stepConfiguration.OnlyOn))
		for _, rawPlatformName := range stepConfiguration.OnlyOn {
			classifiedPlatform := osinfo.Classify(rawPlatformName)
			if classifiedPlatform == osinfo.PlatformFamilyUnknown {
				return nil, fmt.Errorf(stepPlatformUnknownTemplateConstant, stepIndex, rawPlatformName)
			}
			stepPlatforms = append(stepPlatforms, classifiedPlatform)
		}

		stepName := strings.TrimSpace(stepConfiguration.Name)
		if len(stepName) == 0 {
			stepName = fmt.Sprintf(defaultStepNameTemplateConstant, stepIndex+1)
		}

		resolvedSteps = append(resolvedSteps, ResolvedStep{
			Name:         stepName,
			Command:      stepConfiguration.Command,
			WorkDir:      stepConfiguration.WorkDir,
			Timeout:      stepTimeout,
			FailureModes: failureModes,
			Silent:       stepConfiguration.Silent,
			Platforms:    stepPlatforms,
		})
	}

	return resolvedSteps, nil
}
