package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/nubitek/gatepulse/cache"
	"gitlab.com/nubitek/gatepulse/config"
	"gitlab.com/nubitek/gatepulse/dash"
	"gitlab.com/nubitek/gatepulse/gateway"
	"gitlab.com/nubitek/gatepulse/logscan"
	"gitlab.com/nubitek/gatepulse/player"
)

// buildLogger constructs the process logger. Verbose lowers the level to
// Debug. A non-empty path appends to that file instead of stderr -- the
// watch daemon's diagnostic channel -- and the returned closer releases it.
func buildLogger(path string, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
}

// buildPanelOptions wires the dashboard model's dependencies from the
// configuration: gateway client, snapshot store for chart continuity, and
// the two poll schedules.
func buildPanelOptions(cfg *config.Config, logger *slog.Logger) (dash.Options, error) {
	client := gateway.NewClient(cfg.Gateway.BaseURL, cfg.RequestTimeout(), logger)

	store, err := cache.NewStore(cfg.Panel.CacheDir, logger)
	if err != nil {
		// The panel works without persistence; the chart just starts empty.
		logger.Warn("snapshot store unavailable, chart history disabled", "error", err)
		store = nil
	}

	return dash.Options{
		Client:             client,
		Store:              store,
		Logger:             logger,
		PollInterval:       cfg.PollInterval(),
		DevicePollInterval: cfg.DevicePollInterval(),
		HistoryCapacity:    cfg.Panel.HistoryCapacity,
	}, nil
}

// buildPlayerConfig maps the player section of the configuration onto the
// playback loop's runtime config.
func buildPlayerConfig(cfg *config.Config, logger *slog.Logger) player.Config {
	return player.Config{
		VideoPath:    cfg.Player.VideoPath,
		PosterPath:   cfg.Player.PosterPath,
		FlagPath:     cfg.Player.FlagPath,
		PollInterval: cfg.PlayerPollInterval(),
		MaxRuntime:   cfg.PlayerMaxRuntime(),
		Command:      cfg.Player.Command,
		PosterWidth:  cfg.Player.PosterWidth,
		PosterHeight: cfg.Player.PosterHeight,
		Logger:       logger,
	}
}

// buildScanConfig maps the logscan section plus the -date/-lines flag
// overrides onto a scan config. An empty date selects today's log.
func buildScanConfig(cfg *config.Config, dateFlag string, linesFlag int, logger *slog.Logger) (logscan.Config, error) {
	scan := logscan.Config{
		LogDir: cfg.Logscan.LogDir,
		Lines:  cfg.Logscan.Lines,
		Logger: logger,
	}
	if linesFlag > 0 {
		scan.Lines = linesFlag
	}
	if dateFlag != "" {
		day, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
		if err != nil {
			return logscan.Config{}, fmt.Errorf("invalid -date %q (want YYYY-MM-DD): %w", dateFlag, err)
		}
		scan.Date = day
	}
	return scan, nil
}
