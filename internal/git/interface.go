package git

import "context"

// IClient is the subset of git the measurement pipeline needs.
type IClient interface {
	Clone(ctx context.Context, repoURL, directory string) error
	CurrentCommitSHA(ctx context.Context, directory string) (string, error)
	RepoExists(directory string) bool
}
