package github

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/keycodes/pkg/domain/interfaces"
	"github.com/m-mizutani/keycodes/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
}

type config struct {
	baseURL   string
	transport http.RoundTripper
	timeout   time.Duration
}

// Option is a functional option for the GitHub client
type Option func(*config)

// WithBaseURL overrides the API root, e.g. for GitHub Enterprise or tests
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithTransport sets the transport underneath basic authentication
func WithTransport(transport http.RoundTripper) Option {
	return func(c *config) {
		c.transport = transport
	}
}

// WithTimeout bounds every upstream call. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// NewClient creates a GitHub client that authenticates every request with cred
// as HTTP basic authentication
func NewClient(cred types.Credential, opts ...Option) (interfaces.GitHubClient, error) {
	cfg := &config{
		baseURL:   types.DefaultGitHubBaseURL,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	baseURL, err := url.Parse(cfg.baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse GitHub base URL", goerr.V("base_url", cfg.baseURL))
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	transport := cfg.transport
	if cred.IsSet() {
		transport = &github.BasicAuthTransport{
			Username:  cred.ClientID,
			Password:  cred.ClientSecret,
			Transport: cfg.transport,
		}
	}

	githubClient := github.NewClient(&http.Client{
		Transport: transport,
		Timeout:   cfg.timeout,
	})
	githubClient.BaseURL = baseURL
	githubClient.UserAgent = types.ServiceName + "/" + types.Version
	// Every call reaches GitHub; an exhausted limit comes back as GitHub's own 403.
	githubClient.DisableRateLimitCheck = true

	return &client{
		githubClient: githubClient,
	}, nil
}

// Get returns the raw body of a GET request
func (c *client) Get(ctx context.Context, target string) ([]byte, error) {
	req, err := c.newRequest(ctx, target)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	resp, err := c.githubClient.Do(ctx, req, &buf)
	if err != nil {
		return nil, convertError(resp, err, req.URL.String())
	}

	return buf.Bytes(), nil
}

// GetJSON decodes the body of a GET request into v
func (c *client) GetJSON(ctx context.Context, target string, v any) error {
	req, err := c.newRequest(ctx, target)
	if err != nil {
		return err
	}

	resp, err := c.githubClient.Do(ctx, req, v)
	if err != nil {
		return convertError(resp, err, req.URL.String())
	}

	return nil
}

// ListCommits returns the first page of commits of the default branch
func (c *client) ListCommits(ctx context.Context, owner, repo string) ([]*github.RepositoryCommit, error) {
	ctxlog.From(ctx).Debug("Listing commits", "owner", owner, "repo", repo)

	commits, resp, err := c.githubClient.Repositories.ListCommits(ctx, owner, repo, nil)
	if err != nil {
		return nil, goerr.Wrap(convertError(resp, err, "repos/"+owner+"/"+repo+"/commits"),
			"failed to list commits",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	return commits, nil
}

func (c *client) newRequest(ctx context.Context, target string) (*http.Request, error) {
	req, err := c.githubClient.NewRequest(http.MethodGet, requote(target), nil)
	if err != nil {
		return nil, goerr.Wrap(&types.InvalidURLError{URL: target, Err: err}, "failed to build upstream request")
	}

	ctxlog.From(ctx).Debug("Calling GitHub API", "method", req.Method, "url", req.URL.String())
	return req, nil
}

// convertError maps a go-github failure onto the gateway error variants.
// A response with a non-2xx status is a status error; a 2xx response whose
// body failed to decode is a shape error; no response at all is a transport error.
func convertError(resp *github.Response, err error, target string) error {
	if resp != nil && resp.Response != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return goerr.Wrap(&types.UpstreamStatusError{
				StatusCode: resp.StatusCode,
				Message:    upstreamMessage(err, resp.StatusCode),
			}, "upstream request failed", goerr.V("url", target))
		}

		return goerr.Wrap(&types.UpstreamShapeError{
			Path:   "$",
			Reason: err.Error(),
		}, "failed to decode upstream response", goerr.V("url", target))
	}

	return goerr.Wrap(&types.TransportError{Err: err}, "failed to call GitHub", goerr.V("url", target))
}

func upstreamMessage(err error, status int) string {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Message != "" {
		return errResp.Message
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Message != "" {
		return rateErr.Message
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Message != "" {
		return abuseErr.Message
	}

	return http.StatusText(status)
}
