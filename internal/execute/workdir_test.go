package execute_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rife2/bld-exec/internal/execute"
)

const (
	testMissingDirectoryNameConstant = "foo"
	testRegularFileNameConstant      = "plain.txt"
	testBlankOverrideConstant        = "   "
)

func TestWorkingDirectoryResolverPrefersOverride(testInstance *testing.T) {
	overrideDirectory := testInstance.TempDir()
	defaultDirectory := testInstance.TempDir()

	resolver := execute.NewWorkingDirectoryResolver()
	resolvedDirectory, resolutionError := resolver.Resolve(overrideDirectory, defaultDirectory)

	require.NoError(testInstance, resolutionError)
	require.Equal(testInstance, overrideDirectory, resolvedDirectory)
}

func TestWorkingDirectoryResolverFallsBackToDefault(testInstance *testing.T) {
	defaultDirectory := testInstance.TempDir()

	resolver := execute.NewWorkingDirectoryResolver()

	testCases := []struct {
		name     string
		override string
	}{
		{name: "empty_override", override: ""},
		{name: "blank_override", override: testBlankOverrideConstant},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolvedDirectory, resolutionError := resolver.Resolve(testCase.override, defaultDirectory)
			require.NoError(testInstance, resolutionError)
			require.Equal(testInstance, defaultDirectory, resolvedDirectory)
		})
	}
}

func TestWorkingDirectoryResolverRejectsMissingDirectory(testInstance *testing.T) {
	resolver := execute.NewWorkingDirectoryResolver()

	_, resolutionError := resolver.Resolve(testMissingDirectoryNameConstant, "")
	require.Error(testInstance, resolutionError)

	executionFailure := execute.ExecutionFailure{}
	require.True(testInstance, errors.As(resolutionError, &executionFailure))
	require.Equal(testInstance, execute.FailureKindInvalidWorkingDirectory, executionFailure.Kind)
	require.Contains(testInstance, executionFailure.Detail, testMissingDirectoryNameConstant)
}

func TestWorkingDirectoryResolverRejectsRegularFile(testInstance *testing.T) {
	containingDirectory := testInstance.TempDir()
	regularFilePath := filepath.Join(containingDirectory, testRegularFileNameConstant)
	require.NoError(testInstance, os.WriteFile(regularFilePath, []byte("content"), 0o600))

	resolver := execute.NewWorkingDirectoryResolver()
	_, resolutionError := resolver.Resolve(regularFilePath, "")

	executionFailure := execute.ExecutionFailure{}
	require.True(testInstance, errors.As(resolutionError, &executionFailure))
	require.Equal(testInstance, execute.FailureKindInvalidWorkingDirectory, executionFailure.Kind)
}
