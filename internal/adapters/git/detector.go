// Package git provides branch detection using go-git.
package git

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// Detector implements the ports.BranchDetector interface using go-git.
type Detector struct{}

// NewDetector creates a new git detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Ensure Detector implements ports.BranchDetector.
var _ ports.BranchDetector = (*Detector)(nil)

// Branch returns the checked-out branch of the repository containing
// workingDir, searching parent directories. A detached HEAD is reported
// as "detached@" plus the short commit hash.
func (d *Detector) Branch(ctx context.Context, workingDir string) (string, error) {
	if workingDir == "" {
		var err error
		workingDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(workingDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "detached@" + GetShortCommit(head.Hash().String()), nil
	}
	return head.Name().Short(), nil
}

// GetShortCommit returns a shortened commit hash.
func GetShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
