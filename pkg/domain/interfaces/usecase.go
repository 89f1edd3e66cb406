package interfaces

import (
	"context"
	"encoding/json"
)

// GatewayUseCase defines the operations behind the public routes. Every
// method returns either a payload or an error, never both; errors carry a
// types.GatewayError variant somewhere in their chain.
type GatewayUseCase interface {
	// DownloadFile fetches a GitHub contents URL and returns the decoded file bytes
	DownloadFile(ctx context.Context, url string) ([]byte, error)

	// SearchTree fetches url, or fallback when url is empty, and returns the JSON body verbatim
	SearchTree(ctx context.Context, url, fallback string) (json.RawMessage, error)

	// SearchRepositories runs a repository search sorted by stars
	SearchRepositories(ctx context.Context, query string) (json.RawMessage, error)

	// SearchFiles returns the root tree of the latest commit of owner/repo
	SearchFiles(ctx context.Context, owner, repo string) (json.RawMessage, error)
}
