package interfaces

import (
	"context"

	"github.com/google/go-github/v75/github"
)

// GitHubClient defines the authenticated upstream calls the gateway makes.
// URLs may be absolute or relative to the configured API base URL.
type GitHubClient interface {
	// Get returns the raw response body of a GET request
	Get(ctx context.Context, url string) ([]byte, error)

	// GetJSON decodes the response body of a GET request into v
	GetJSON(ctx context.Context, url string, v any) error

	// ListCommits returns the first page of commits of a repository's default branch
	ListCommits(ctx context.Context, owner, repo string) ([]*github.RepositoryCommit, error)
}
