package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/thenoetrevino/ticketboard/internal/app"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
	"github.com/thenoetrevino/ticketboard/internal/config"
	"github.com/thenoetrevino/ticketboard/internal/database"
	"github.com/thenoetrevino/ticketboard/internal/events"
	"github.com/thenoetrevino/ticketboard/internal/logging"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
)

// daemonConnectTimeout bounds the optional daemon connection on startup
const daemonConnectTimeout = 500 * time.Millisecond

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	db        *sql.DB   // nil when the app was injected
	logCloser io.Closer // nil when the app was injected
}

// appKey carries a prebuilt *app.App through a command context
type appKey struct{}

// WithApp returns a context that makes GetCLIFromContext reuse a instead of
// opening the configured database. The caller keeps ownership of a.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// GetCLIFromContext returns a CLI around the app stored by WithApp, or a
// fully initialised one from NewCLI.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		cfg := config.Default()
		styles.Init(cfg.ColorScheme)
		return &CLI{App: a, Config: cfg}, nil
	}
	return NewCLI(ctx)
}

// NewCLI loads the config, opens the board database and connects to the event
// daemon if one is running.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logCloser, err := logging.Init(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		// logging is best effort; keep the default stderr handler
		slog.Debug("file logging disabled", "path", cfg.Log.Path, "error", err)
		logCloser = nil
	}

	styles.Init(cfg.ColorScheme)

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		closeLog(logCloser)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	opts := []app.Option{
		app.WithLimits(ticketservice.Limits{
			TitleMin: cfg.Validation.TitleMinLength,
			TitleMax: cfg.Validation.TitleMaxLength,
		}),
		app.WithMaxRetries(cfg.Database.MaxRetries),
	}
	if client := connectDaemon(ctx, cfg.Daemon.SocketPath); client != nil {
		opts = append(opts, app.WithEventPublisher(client))
	}

	return &CLI{
		App:       app.New(db, opts...),
		Config:    cfg,
		db:        db,
		logCloser: logCloser,
	}, nil
}

// connectDaemon returns a connected event client, or nil when no daemon is
// listening on socketPath
func connectDaemon(ctx context.Context, socketPath string) events.EventPublisher {
	client, err := events.NewClient(socketPath)
	if err != nil {
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, daemonConnectTimeout)
	defer cancel()

	if err := client.Connect(connectCtx); err != nil {
		slog.Debug("event daemon not available", "socket", socketPath, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// Close flushes pending events and releases the database. An injected app is
// left open.
func (c *CLI) Close() error {
	if c.db == nil {
		return nil
	}

	if err := c.App.Close(); err != nil {
		slog.Warn("failed to close event client", "error", err)
	}
	err := c.db.Close()
	closeLog(c.logCloser)
	return err
}

func closeLog(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
