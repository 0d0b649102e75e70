package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const flushTimeout = 2 * time.Second

// Sentry holds CLI flags for error reporting configuration. The DSN is
// redacted from structured logs.
type Sentry struct {
	DSN         string `masq:"secret"`
	Environment string
}

// Flags returns CLI flags for Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (error reporting disabled when empty)",
			Sources:     cli.EnvVars("RESIDUUM_SENTRY_DSN"),
			Destination: &s.DSN,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment label",
			Sources:     cli.EnvVars("RESIDUUM_SENTRY_ENV"),
			Destination: &s.Environment,
		},
	}
}

// Configure initializes Sentry when a DSN is set and returns a flush
// function. Without a DSN it is a no-op.
func (s *Sentry) Configure(version string) (func(), error) {
	if s.DSN == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.DSN,
		Environment: s.Environment,
		Release:     version,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	return func() {
		sentry.Flush(flushTimeout)
	}, nil
}
