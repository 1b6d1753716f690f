package logging

import (
	"os"
	"path/filepath"
	"testing"

	"pushrelay/internal/config"
)

func TestNew_WritesToLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "relay.log")
	cfg := &config.Config{AppEnv: "production", LogLevel: "info", LogFile: logFile}

	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	logger.Info("relay started")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log file to contain the entry")
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	cfg := &config.Config{LogLevel: "loud"}

	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Error("debug should be disabled when level falls back to info")
	}
}
