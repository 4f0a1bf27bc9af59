package script

import "strings"

const (
	scriptPathConfigurationKeyConstant = "script_path"
	workDirConfigurationKeyConstant    = "work_dir"
	configurationKeySeparator          = "."
)

// CommandConfiguration captures persisted configuration values for script.
type CommandConfiguration struct {
	ScriptPath string `mapstructure:"script_path"`
	WorkDir    string `mapstructure:"work_dir"`
}

// DefaultCommandConfiguration provides default script command settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{}
}

// DefaultConfigurationValues exposes the defaults keyed for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + configurationKeySeparator + scriptPathConfigurationKeyConstant: defaults.ScriptPath,
		prefix + configurationKeySeparator + workDirConfigurationKeyConstant:    defaults.WorkDir,
	}
}

// Sanitize normalizes configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ScriptPath = strings.TrimSpace(configuration.ScriptPath)
	sanitized.WorkDir = strings.TrimSpace(configuration.WorkDir)
	return sanitized
}
