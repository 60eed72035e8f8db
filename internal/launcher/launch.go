// Package launcher starts the interactive board screen
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/events"
	"github.com/thenoetrevino/ticketboard/internal/tui"
)

// Launch runs the board screen until the user quits or ctx is cancelled.
// Live updates are used when the daemon is reachable.
func Launch(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("error closing board", "error", err)
		}
	}()

	var eventChan <-chan events.Event
	if client := cliInstance.App.Events(); client != nil {
		ch, err := client.Listen(ctx)
		if err != nil {
			daemonErr := events.ClassifyDaemonError(err)
			slog.Warn("live updates unavailable",
				"socket", daemonErr.Socket, "message", daemonErr.Message, "hint", daemonErr.Hint)
		} else {
			eventChan = ch
		}
	} else {
		slog.Info("daemon not running, continuing without live updates")
	}

	model := tui.InitialModel(ctx, cliInstance.App, cliInstance.Config, eventChan)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running board: %w", err)
	}
	return nil
}
