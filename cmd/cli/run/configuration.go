package run

import (
	"strings"
	"time"

	"github.com/rife2/bld-exec/internal/execute"
)

const (
	workDirConfigurationKeyConstant = "work_dir"
	timeoutConfigurationKeyConstant = "timeout"
	failConfigurationKeyConstant    = "fail"
	silentConfigurationKeyConstant  = "silent"
	configurationKeySeparator       = "."
)

// CommandConfiguration captures persisted configuration values for run.
type CommandConfiguration struct {
	WorkDir string        `mapstructure:"work_dir"`
	Timeout time.Duration `mapstructure:"timeout"`
	Fail    []string      `mapstructure:"fail"`
	Silent  bool          `mapstructure:"silent"`
}

// DefaultCommandConfiguration provides default run command settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Timeout: execute.DefaultTimeout,
	}
}

// DefaultConfigurationValues exposes the defaults keyed for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + configurationKeySeparator + workDirConfigurationKeyConstant: defaults.WorkDir,
		prefix + configurationKeySeparator + timeoutConfigurationKeyConstant: defaults.Timeout,
		prefix + configurationKeySeparator + failConfigurationKeyConstant:    defaults.Fail,
		prefix + configurationKeySeparator + silentConfigurationKeyConstant:  defaults.Silent,
	}
}

// Sanitize normalizes configuration values, restoring defaults where values
// are unusable.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.WorkDir = strings.TrimSpace(configuration.WorkDir)
	if sanitized.Timeout <= 0 {
		sanitized.Timeout = execute.DefaultTimeout
	}
	sanitized.Fail = sanitizeFailureModeNames(configuration.Fail)
	return sanitized
}

func sanitizeFailureModeNames(raw []string) []string {
	trimmed := make([]string, 0, len(raw))
	for _, candidate := range raw {
		value := strings.TrimSpace(candidate)
		if len(value) == 0 {
			continue
		}
		trimmed = append(trimmed, value)
	}
	return trimmed
}
