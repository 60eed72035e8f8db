package events

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClassifyDaemonError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"missing socket", fmt.Errorf("dial: %w", os.ErrNotExist), ErrSocketNotFound},
		{"permission", fmt.Errorf("dial: %w", os.ErrPermission), ErrSocketPermission},
		{"timeout", fmt.Errorf("dial: %w", context.DeadlineExceeded), ErrDaemonUnresponsive},
		{"anything else", errors.New("boom"), ErrDaemonNotRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDaemonError(tt.err)
			if got.Code != tt.want {
				t.Errorf("expected code %d, got %d (%s)", tt.want, got.Code, got)
			}
			if got.Hint == "" {
				t.Error("expected a hint")
			}
			if !errors.Is(got, tt.err) {
				t.Error("expected the cause to stay in the chain")
			}
		})
	}

	if ClassifyDaemonError(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func dialErr(t *testing.T, socket string) error {
	t.Helper()
	client, err := NewClient(socket)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer func() { _ = client.Close() }()

	err = client.Connect(context.Background())
	if err == nil {
		t.Fatal("expected Connect to fail")
	}
	return err
}

func TestClassifyDaemonError_MissingSocketNamesPath(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "ticketboard.sock")

	got := ClassifyDaemonError(dialErr(t, socket))
	if got.Code != ErrSocketNotFound {
		t.Fatalf("expected ErrSocketNotFound, got %d (%s)", got.Code, got)
	}
	if got.Socket != socket || !strings.Contains(got.Message, socket) {
		t.Errorf("expected socket path in error, got %+v", got)
	}
	if !strings.Contains(got.Hint, "TICKETBOARD_SOCKET") {
		t.Errorf("expected config hint, got %q", got.Hint)
	}
}

func TestClassifyDaemonError_StaleSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "ticketboard.sock")
	l, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	// leave the socket file behind the way a crashed daemon does
	l.(*net.UnixListener).SetUnlinkOnClose(false)
	_ = l.Close()

	got := ClassifyDaemonError(dialErr(t, socket))
	if got.Code != ErrConnectionRefused {
		t.Fatalf("expected ErrConnectionRefused, got %d (%s)", got.Code, got)
	}
	if got.Socket != socket {
		t.Errorf("expected socket %s, got %s", socket, got.Socket)
	}
}
