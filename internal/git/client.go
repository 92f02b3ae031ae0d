package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	werrors "wasmweight/internal/errors"
	"wasmweight/internal/process"
)

// Client handles git interactions through an external git binary.
type Client struct {
	runner process.Runner
}

// NewClient creates a new Git client.
func NewClient(runner process.Runner) *Client {
	return &Client{runner: runner}
}

var (
	reGitHubPAT = regexp.MustCompile(`https://[^@:/]+@github\.com`)
	reBasicAuth = regexp.MustCompile(`https://[^:/]+:[^@/]+@`)
)

// Redact masks credentials embedded in clone URLs.
func Redact(s string) string {
	s = reGitHubPAT.ReplaceAllString(s, "https://[REDACTED]@github.com")
	return reBasicAuth.ReplaceAllString(s, "https://[REDACTED]@")
}

// Clone clones a repository into a destination directory.
func (c *Client) Clone(ctx context.Context, url, dest string) error {
	cmd := process.New("git", "clone", url, dest).WithEnv("GIT_TERMINAL_PROMPT=0")
	if err := c.runner.Run(ctx, cmd); err != nil {
		var execErr *werrors.ExecutionError
		if errors.As(err, &execErr) {
			execErr.Command = Redact(execErr.Command)
		}
		return fmt.Errorf("failed to clone %s: %w", Redact(url), err)
	}
	return nil
}

// CurrentCommitSHA returns the commit hash HEAD resolves to.
func (c *Client) CurrentCommitSHA(ctx context.Context, dir string) (string, error) {
	out, err := c.runner.Output(ctx, process.New("git", "rev-parse", "HEAD").In(dir))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RepoExists reports whether something already occupies dir. The checkout is
// not validated; a half-finished clone from an earlier crash is reused as is.
func (c *Client) RepoExists(dir string) bool {
	_, err := os.Stat(dir)
	return err == nil
}
