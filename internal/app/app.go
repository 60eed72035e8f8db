package app

import (
	"database/sql"
	"log/slog"

	"github.com/thenoetrevino/ticketboard/internal/database"
	"github.com/thenoetrevino/ticketboard/internal/events"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
)

// App holds all application services and provides dependency injection.
type App struct {
	repo        *database.Repository
	eventClient events.EventPublisher
	logger      *slog.Logger

	TicketService ticketservice.Service
}

// New wires the store and services around an open database
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{
		logger: slog.Default(),
		limits: ticketservice.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var repoOpts []database.Option
	if cfg.maxRetries > 0 {
		repoOpts = append(repoOpts, database.WithMaxRetries(cfg.maxRetries))
	}
	repo := database.NewRepository(db, repoOpts...)

	cfg.logger.Debug("app initialized",
		"events", cfg.eventClient != nil,
		"title_min", cfg.limits.TitleMin,
		"title_max", cfg.limits.TitleMax)

	return &App{
		repo:          repo,
		eventClient:   cfg.eventClient,
		logger:        cfg.logger,
		TicketService: ticketservice.NewService(repo, cfg.eventClient, ticketservice.WithLimits(cfg.limits)),
	}
}

// Repo returns the underlying store
func (a *App) Repo() *database.Repository {
	return a.repo
}

// Events returns the event client, or nil when running without the daemon
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Logger returns the logger the app was built with
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close flushes and disconnects the event client, if any. The database is
// owned by the caller.
func (a *App) Close() error {
	if a.eventClient == nil {
		return nil
	}
	return a.eventClient.Close()
}
