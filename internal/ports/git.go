package ports

import (
	"context"
)

// BranchDetector looks up the version-control branch of a directory.
// This is a driven port (implemented by adapters).
type BranchDetector interface {
	// Branch returns the checked-out branch name for workingDir.
	Branch(ctx context.Context, workingDir string) (string, error)
}
