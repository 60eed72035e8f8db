package app

import (
	"log/slog"

	"github.com/thenoetrevino/ticketboard/internal/events"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	limits      ticketservice.Limits
	maxRetries  int
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithLimits sets the accepted ticket title length
func WithLimits(l ticketservice.Limits) Option {
	return func(cfg *appConfig) {
		cfg.limits = l
	}
}

// WithMaxRetries sets how often a busy transaction is retried
func WithMaxRetries(n int) Option {
	return func(cfg *appConfig) {
		cfg.maxRetries = n
	}
}
