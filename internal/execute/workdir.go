package execute

import (
	"os"
	"strings"

	pathutils "github.com/rife2/bld-exec/internal/utils/path"
)

// WorkingDirectoryResolver selects and validates the effective working
// directory for an execution.
type WorkingDirectoryResolver struct {
	homeExpander *pathutils.HomeExpander
}

// NewWorkingDirectoryResolver constructs a resolver using the operating
// system home directory lookup for tilde expansion.
func NewWorkingDirectoryResolver() *WorkingDirectoryResolver {
	return &WorkingDirectoryResolver{homeExpander: pathutils.NewHomeExpander()}
}

// Resolve picks the override when it is non-blank, else the default path,
// and verifies the chosen path exists as a directory. Validation happens
// before any process is spawned; a failing path produces an
// InvalidWorkingDirectory failure and no side effects.
func (resolver *WorkingDirectoryResolver) Resolve(overridePath string, defaultPath string) (string, error) {
	candidatePath := strings.TrimSpace(overridePath)
	if len(candidatePath) == 0 {
		candidatePath = strings.TrimSpace(defaultPath)
	}

	if resolver != nil && resolver.homeExpander != nil {
		candidatePath = resolver.homeExpander.Expand(candidatePath)
	}

	directoryInfo, statError := os.Stat(candidatePath)
	if statError != nil || !directoryInfo.IsDir() {
		return "", NewInvalidWorkingDirectoryFailure(candidatePath)
	}

	return candidatePath, nil
}
