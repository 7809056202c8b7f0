package infra

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"tastepalette/internal/config"
)

// InitSentry returns a flush func. An empty DSN leaves reporting disabled.
func InitSentry(cfg *config.Config) func() {
	if cfg.SentryDSN == "" {
		return func() {}
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		TracesSampleRate: 0.2,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Printf("Sentry initialization failed: %v", err)
		return func() {}
	}

	return func() {
		sentry.Flush(2 * time.Second)
	}
}
