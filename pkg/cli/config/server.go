package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr    string
	Metrics bool
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:4000",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("KEYCODES_ADDR"),
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Serve Prometheus metrics on /metrics",
			Value:       true,
			Destination: &c.Metrics,
			Sources:     cli.EnvVars("KEYCODES_METRICS"),
		},
	}
}
