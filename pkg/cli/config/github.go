package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/keycodes/pkg/domain/types"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	ClientID     string
	ClientSecret string `masq:"secret"`
	BaseURL      string
	Timeout      time.Duration
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-client-id",
			Usage:       "GitHub OAuth App client ID used for basic authentication",
			Destination: &c.ClientID,
			Sources:     cli.EnvVars("KEYCODES_GITHUB_CLIENT_ID", "GITHUB_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:        "github-client-secret",
			Usage:       "GitHub OAuth App client secret used for basic authentication",
			Destination: &c.ClientSecret,
			Sources:     cli.EnvVars("KEYCODES_GITHUB_CLIENT_SECRET", "GITHUB_CLIENT_SECRET"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub REST API base URL",
			Value:       types.DefaultGitHubBaseURL,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("KEYCODES_GITHUB_BASE_URL"),
		},
		&cli.DurationFlag{
			Name:        "github-timeout",
			Usage:       "Timeout of each GitHub API call, 0 for none",
			Value:       0,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("KEYCODES_GITHUB_TIMEOUT"),
		},
	}
}

// Credential returns the basic authentication pair for upstream calls
func (c *GitHub) Credential() types.Credential {
	return types.Credential{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
	}
}
