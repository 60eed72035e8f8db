package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/ticketboard/internal/config"
	"github.com/thenoetrevino/ticketboard/internal/daemon"
	"github.com/thenoetrevino/ticketboard/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// stderr, so systemd/journald picks it up
	if err := logging.InitWriter(os.Stderr, cfg.Log.Level); err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}

	server, err := daemon.NewServer(daemon.Config{
		SocketPath:      cfg.Daemon.SocketPath,
		BroadcastBuffer: cfg.Daemon.BroadcastBuffer,
		ClientBuffer:    cfg.Daemon.ClientBuffer,
	})
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("ticketboard daemon starting", "socket_path", cfg.Daemon.SocketPath, "pid", os.Getpid())

	// Start the daemon (blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("ticketboard daemon shut down gracefully")
}
