// Package watch streams board events from the event daemon.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
	"github.com/thenoetrevino/ticketboard/internal/config"
	"github.com/thenoetrevino/ticketboard/internal/events"
	"github.com/thenoetrevino/ticketboard/internal/models"
)

const connectTimeout = 2 * time.Second

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream board changes",
		Long: `Print board events (creates, updates, moves, deletes, imports) as other
ticketboard processes make them. Requires a running ticketboard-daemon.`,
		Args: cli.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().String("status", "", "Only show events touching this column")
	cmd.Flags().String("socket", "", "Daemon socket (defaults to the configured one)")
	cmd.Flags().Int("count", 0, "Exit after this many events (0 = run until interrupted)")
	cli.AddOutputFlags(cmd, false)
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)
	count, _ := cmd.Flags().GetInt("count")

	var status models.Status
	if s := cli.OptionalString(cmd, "status"); s != nil {
		var err error
		if status, err = cli.ParseStatus(*s); err != nil {
			return formatter.Fail(err)
		}
	}

	socketPath, _ := cmd.Flags().GetString("socket")
	if socketPath == "" {
		socketPath = configuredSocket()
	}

	client, err := events.NewClient(socketPath)
	if err != nil {
		return formatter.Fail(cli.UsageError(err))
	}
	defer func() { _ = client.Close() }()

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		daemonErr := events.ClassifyDaemonError(err)
		return formatter.FailWithSuggestion(fmt.Errorf("failed to connect to daemon: %s", daemonErr.Message), daemonErr.Hint)
	}
	if status != "" {
		if err := client.Subscribe(string(status)); err != nil {
			return formatter.Fail(err)
		}
	}

	ch, err := client.Listen(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if !formatter.JSON {
		scope := "whole board"
		if status != "" {
			scope = string(status)
		}
		fmt.Printf("Watching %s on %s\n", scope, socketPath)
	}

	seen := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return formatter.Fail(fmt.Errorf("daemon connection closed"))
			}
			if err := printEvent(formatter, ev); err != nil {
				return err
			}
			seen++
			if count > 0 && seen >= count {
				return nil
			}
		}
	}
}

// configuredSocket returns the socket path from the config file, falling
// back to the default location
func configuredSocket() string {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	return cfg.Daemon.SocketPath
}

func printEvent(formatter *cli.OutputFormatter, ev events.Event) error {
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(ev)
	}

	line := fmt.Sprintf("%s #%d %-15s", ev.Timestamp.Local().Format("15:04:05"), ev.SequenceID, ev.Type)
	if ev.TicketID != "" {
		line += " " + ev.TicketID
	}
	switch {
	case ev.FromStatus != "":
		line += fmt.Sprintf(" %s → %s", styles.RenderStatus(models.Status(ev.FromStatus)), styles.RenderStatus(models.Status(ev.Status)))
	case ev.Status != "":
		line += " " + styles.RenderStatus(models.Status(ev.Status))
	}
	fmt.Println(line)
	return nil
}
