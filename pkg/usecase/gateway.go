package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/keycodes/pkg/domain/interfaces"
	"github.com/m-mizutani/keycodes/pkg/domain/model"
	"github.com/m-mizutani/keycodes/pkg/domain/types"
)

type gatewayUseCase struct {
	githubClient interfaces.GitHubClient
}

// NewGateway creates a new instance of GatewayUseCase
func NewGateway(githubClient interfaces.GitHubClient) interfaces.GatewayUseCase {
	return &gatewayUseCase{
		githubClient: githubClient,
	}
}

// DownloadFile fetches a contents API URL and returns the base64-decoded `content` field
func (uc *gatewayUseCase) DownloadFile(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, &types.InvalidQueryError{Param: "url"}
	}

	var file model.FileContent
	if err := uc.githubClient.GetJSON(ctx, url, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch file", goerr.V("url", url))
	}

	if file.Content == nil {
		return nil, goerr.Wrap(&types.UpstreamShapeError{
			Path:   "content",
			Reason: "field is missing",
		}, "file response has no content", goerr.V("url", url))
	}

	if file.Encoding != "" && file.Encoding != "base64" {
		return nil, goerr.Wrap(&types.UpstreamShapeError{
			Path:   "encoding",
			Reason: fmt.Sprintf("unsupported encoding %q", file.Encoding),
		}, "file content is not base64", goerr.V("url", url))
	}

	// StdEncoding skips the newlines GitHub inserts every 60 characters
	data, err := base64.StdEncoding.DecodeString(*file.Content)
	if err != nil {
		return nil, goerr.Wrap(&types.DecodeError{Field: "content", Err: err},
			"failed to decode file content", goerr.V("url", url))
	}

	ctxlog.From(ctx).Debug("Downloaded file", "url", url, "size", len(data))
	return data, nil
}

// SearchTree returns the JSON body of url, or of fallback when url is empty.
// fallback is only supplied internally by SearchFiles.
func (uc *gatewayUseCase) SearchTree(ctx context.Context, url, fallback string) (json.RawMessage, error) {
	target := url
	if target == "" {
		target = fallback
	}
	if target == "" {
		return nil, &types.InvalidQueryError{Param: "url"}
	}

	body, err := uc.getJSONBody(ctx, target)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search tree", goerr.V("url", target))
	}

	return body, nil
}

// SearchRepositories searches repositories sorted by stars, descending.
// query is substituted into the upstream URL without escaping.
func (uc *gatewayUseCase) SearchRepositories(ctx context.Context, query string) (json.RawMessage, error) {
	if query == "" {
		return nil, &types.InvalidQueryError{Param: "q"}
	}

	target := fmt.Sprintf("search/repositories?q=%s&sort=stars&order=desc", query)
	body, err := uc.getJSONBody(ctx, target)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search repositories", goerr.V("q", query))
	}

	return body, nil
}

// SearchFiles resolves the latest commit of owner/repo to its root tree and
// returns the tree listing. Each step needs a field from the previous
// response, so the first failure aborts the chain.
func (uc *gatewayUseCase) SearchFiles(ctx context.Context, owner, repo string) (json.RawMessage, error) {
	if repo == "" {
		return nil, &types.InvalidQueryError{Param: "repo"}
	}
	if owner == "" {
		return nil, &types.InvalidQueryError{Param: "owner"}
	}
	logger := ctxlog.From(ctx)

	// 1. latest commit SHA
	commits, err := uc.githubClient.ListCommits(ctx, owner, repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest commit", goerr.V("owner", owner), goerr.V("repo", repo))
	}
	if len(commits) == 0 {
		return nil, goerr.Wrap(&types.UpstreamShapeError{
			Path:   "[0].sha",
			Reason: "commit list is empty",
		}, "repository has no commits", goerr.V("owner", owner), goerr.V("repo", repo))
	}
	latestCommitSHA := commits[0].GetSHA()
	if latestCommitSHA == "" {
		return nil, goerr.Wrap(&types.UpstreamShapeError{
			Path:   "[0].sha",
			Reason: "field is missing",
		}, "latest commit has no SHA", goerr.V("owner", owner), goerr.V("repo", repo))
	}

	// 2. tree of that commit
	var commit model.GitCommit
	commitURL := fmt.Sprintf("repos/%s/%s/git/commits/%s", owner, repo, latestCommitSHA)
	if err := uc.githubClient.GetJSON(ctx, commitURL, &commit); err != nil {
		return nil, goerr.Wrap(err, "failed to get commit", goerr.V("sha", latestCommitSHA))
	}
	if err := validateTreeRef(commit.Tree); err != nil {
		return nil, goerr.Wrap(err, "commit has no tree", goerr.V("sha", latestCommitSHA))
	}

	logger.Debug("Resolved latest tree",
		"owner", owner,
		"repo", repo,
		"commit_sha", latestCommitSHA,
		"tree_sha", commit.Tree.SHA,
	)

	// 3. tree listing
	return uc.SearchTree(ctx, "", commit.Tree.URL)
}

func (uc *gatewayUseCase) getJSONBody(ctx context.Context, target string) (json.RawMessage, error) {
	body, err := uc.githubClient.Get(ctx, target)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &types.UpstreamShapeError{Path: "$", Reason: "response body is not JSON"}
	}
	return json.RawMessage(body), nil
}

func validateTreeRef(tree *model.GitTreeRef) error {
	switch {
	case tree == nil:
		return &types.UpstreamShapeError{Path: "tree", Reason: "field is missing"}
	case tree.SHA == "":
		return &types.UpstreamShapeError{Path: "tree.sha", Reason: "field is missing"}
	case tree.URL == "":
		return &types.UpstreamShapeError{Path: "tree.url", Reason: "field is missing"}
	}
	return nil
}
