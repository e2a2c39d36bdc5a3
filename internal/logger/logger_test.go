package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"quantdesk/internal/config"
)

func TestNew(t *testing.T) {
	log, err := New(config.LogConfig{Level: "debug", Encoding: "console", Development: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Debug("hello")
	_ = log.Sync()

	// A bad level falls back to info instead of failing startup.
	log, err = New(config.LogConfig{Level: "chatty", Encoding: "json"})
	if err != nil {
		t.Fatalf("new with bad level: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug enabled after fallback")
	}
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "daily_report.log")

	log, err := NewWithFile(config.LogConfig{Level: "info", Encoding: "json"}, path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("first run")
	_ = log.Sync()

	// A second logger on the same path appends rather than truncating.
	log, err = NewWithFile(config.LogConfig{Level: "info", Encoding: "json"}, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	log.Info("second run")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, "first run") || !strings.Contains(out, "second run") {
		t.Fatalf("log=%s", out)
	}
}
