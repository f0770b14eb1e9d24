package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rowanveil/dungeon-chat/internal/config"
	"github.com/rowanveil/dungeon-chat/internal/engine"
	"github.com/rowanveil/dungeon-chat/internal/models"
	"github.com/rowanveil/dungeon-chat/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the terminal client",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	settingsPath := cfg.SettingsFile
	if settingsPath == "" {
		if p, err := models.DefaultSettingsPath(); err == nil {
			settingsPath = p
		}
	}
	settings, err := models.LoadSettings(settingsPath)
	if err != nil {
		logger.Warn("could not load settings, using defaults", "error", err)
		settings = models.DefaultSettings()
	}

	eng, err := engine.NewEngine(cmd.Context(), engine.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer eng.Close()

	return tui.Run(eng, settings, settingsPath)
}

// newLogger writes structured logs to a file; stdout belongs to the TUI.
// With no file configured, logs are discarded.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { _ = f.Close() }, nil
}
