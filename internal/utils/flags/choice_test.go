package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "log_format_default_console",
			defaultChoice:  "console",
			choices:        []string{"console", "json"},
			description:    "Log output format.",
			expectedOutput: "`<CONSOLE|json>` Log output format.",
		},
		{
			name:           "log_level_default_info",
			defaultChoice:  "info",
			choices:        []string{"debug", "info", "warn", "error"},
			description:    "Minimum log level.",
			expectedOutput: "`<debug|INFO|warn|error>` Minimum log level.",
		},
		{
			name:           "empty_description",
			defaultChoice:  "console",
			choices:        []string{"console", "json"},
			description:    "",
			expectedOutput: "`<CONSOLE|json>`",
		},
		{
			name:           "duplicate_choices_collapsed",
			defaultChoice:  "json",
			choices:        []string{"json", "json", "console", "console"},
			description:    "Log output format.",
			expectedOutput: "`<JSON|console>` Log output format.",
		},
		{
			name:           "whitespace_trimmed",
			defaultChoice:  "debug",
			choices:        []string{" debug ", " info "},
			description:    "Minimum log level.",
			expectedOutput: "`<DEBUG|info>` Minimum log level.",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			formattedUsage := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(testInstance, testCase.expectedOutput, formattedUsage)
		})
	}
}
