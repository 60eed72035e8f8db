package logging

import (
	"bytes"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestInit_WritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})

	path := filepath.Join(t.TempDir(), "logs", "ticketboard.log")
	closer, err := Init(path, "warn")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	slog.Info("hidden")
	slog.Warn("board check failed", "column", "done")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "column=done") {
		t.Errorf("expected warn record in log, got %q", out)
	}
}

func TestInitWriter(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	if err := InitWriter(&buf, "debug"); err != nil {
		t.Fatalf("InitWriter failed: %v", err)
	}
	Logger.Debug("moved", "ticket", "t1")

	if !strings.Contains(buf.String(), "ticket=t1") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if err := InitWriter(&buf, "nope"); err == nil {
		t.Error("expected error for bad level")
	}
}
