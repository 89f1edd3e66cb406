package types

// Version is the application version, overwritten at build time with -ldflags
var Version = "dev"

const (
	// ServiceName is reported by the health endpoint and used in the upstream User-Agent
	ServiceName = "keycodes"

	// DefaultGitHubBaseURL is the upstream REST API root
	DefaultGitHubBaseURL = "https://api.github.com"
)
