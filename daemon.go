package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"gitlab.com/nubitek/gatepulse/cache"
	"gitlab.com/nubitek/gatepulse/config"
	"gitlab.com/nubitek/gatepulse/gateway"
	"gitlab.com/nubitek/gatepulse/history"
	"gitlab.com/nubitek/gatepulse/internal/format"
)

// daemon is the headless watch mode: it polls the gateway feeds on the
// panel's schedule and writes each payload to the snapshot store, so the
// one-shot render modes (banner, status segment) and a freshly started TUI
// have state to show without touching the gateway themselves.
type daemon struct {
	config  *config.Config
	logger  *slog.Logger
	store   *cache.Store
	feeds   []gateway.Feed
	pidFile string

	mu        sync.Mutex // protects lastRun, feedState and temps
	lastRun   map[string]time.Time
	feedState map[string]string
	temps     *history.Buffer
}

// newDaemon creates a daemon with the gateway feeds wired from the
// configuration. The temperature window is restored from the store so the
// chart history survives a daemon restart.
func newDaemon(cfg *config.Config, logger *slog.Logger) (*daemon, error) {
	store, err := cache.NewStore(cfg.Panel.CacheDir, logger)
	if err != nil {
		return nil, fmt.Errorf("daemon: create cache store: %w", err)
	}

	client := gateway.NewClient(cfg.Gateway.BaseURL, cfg.RequestTimeout(), logger)

	// The device feed defaults to a zero interval: one fetch on the first
	// pass, never again, matching the panel's own load behavior.
	feeds := []gateway.Feed{
		gateway.NewSensorFeed(client, cfg.PollInterval()),
		gateway.NewDeviceFeed(client, cfg.DevicePollInterval()),
	}

	temps := history.New(cfg.Panel.HistoryCapacity)
	saved, _, err := cache.GetTyped[[]history.Sample](store, history.CacheKey, 0)
	if err != nil {
		logger.Warn("could not restore chart history", "error", err)
	} else if saved != nil {
		temps = history.Restore(cfg.Panel.HistoryCapacity, *saved)
	}

	pidFile := filepath.Join(cfg.Panel.CacheDir, "gatepulse.pid")

	return &daemon{
		config:    cfg,
		logger:    logger,
		store:     store,
		feeds:     feeds,
		pidFile:   pidFile,
		lastRun:   make(map[string]time.Time),
		feedState: make(map[string]string),
		temps:     temps,
	}, nil
}

// writePIDFile writes the current process PID to the PID file.
// The PID file path is {CacheDir}/gatepulse.pid.
func (d *daemon) writePIDFile() error {
	// Ensure the directory exists.
	dir := filepath.Dir(d.pidFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create PID file directory: %w", err)
	}
	pid := os.Getpid()
	data := []byte(strconv.Itoa(pid))
	if err := os.WriteFile(d.pidFile, data, 0o644); err != nil {
		return fmt.Errorf("write PID file: %w", err)
	}
	d.logger.Info("wrote PID file", "path", d.pidFile, "pid", pid)
	return nil
}

// removePIDFile removes the PID file on shutdown.
func (d *daemon) removePIDFile() {
	if err := os.Remove(d.pidFile); err != nil && !os.IsNotExist(err) {
		d.logger.Error("failed to remove PID file", "path", d.pidFile, "error", err)
		return
	}
	d.logger.Info("removed PID file", "path", d.pidFile)
}

// isRunning checks if another daemon instance is already running by reading
// the PID file and checking if the process exists. If the PID file contains
// a stale PID (process no longer exists), the file is cleaned up.
func (d *daemon) isRunning() (bool, int) {
	data, err := os.ReadFile(d.pidFile)
	if err != nil {
		return false, 0
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		// Corrupt PID file -- remove it.
		d.logger.Warn("corrupt PID file, removing", "path", d.pidFile, "content", string(data))
		os.Remove(d.pidFile)
		return false, 0
	}

	// Check if the process exists by sending signal 0.
	process, err := os.FindProcess(pid)
	if err != nil {
		// On Unix, FindProcess never returns an error, but handle it anyway.
		os.Remove(d.pidFile)
		return false, 0
	}

	err = process.Signal(syscall.Signal(0))
	if err != nil {
		// Process does not exist -- stale PID file.
		d.logger.Warn("stale PID file, removing", "path", d.pidFile, "pid", pid)
		os.Remove(d.pidFile)
		return false, 0
	}

	return true, pid
}

// run starts the daemon polling loop. It checks for an existing instance,
// writes a PID file, runs an immediate collection pass, then ticks at the
// configured poll interval until the context is cancelled.
func (d *daemon) run(ctx context.Context) error {
	// Check if another instance is running.
	if running, pid := d.isRunning(); running {
		return fmt.Errorf("daemon already running (PID %d)", pid)
	}

	// Write PID file.
	if err := d.writePIDFile(); err != nil {
		return fmt.Errorf("write PID file: %w", err)
	}
	defer d.removePIDFile()

	ticker := time.NewTicker(d.config.PollInterval())
	defer ticker.Stop()

	// Run immediately on start.
	if err := d.runOnce(ctx); err != nil {
		d.logger.Error("initial polling pass failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("daemon shutting down gracefully")
			d.shutdown()
			return ctx.Err()
		case <-ticker.C:
			if err := d.runOnce(ctx); err != nil {
				d.logger.Error("polling pass failed", "error", err)
			}
		}
	}
}

// shutdown performs cleanup on daemon exit, logging final cache state.
func (d *daemon) shutdown() {
	d.logger.Info("performing shutdown cleanup")
	if meta, err := d.store.Stats(); err == nil {
		for key, ts := range meta.LastUpdate {
			d.logger.Info("cache entry at shutdown",
				"key", key,
				"age", time.Since(ts).String(),
			)
		}
	}
}

// runOnce performs a single polling pass across all feeds. Feeds run
// concurrently via goroutines. Each feed is subject to per-feed interval
// tracking: if a feed ran too recently (based on its Interval()), it is
// skipped for this pass. A zero interval means the feed is collected once,
// on the first pass, and never re-polled -- the device list keeps the
// panel's fetch-once-at-load behavior this way.
func (d *daemon) runOnce(ctx context.Context) error {
	start := time.Now()
	d.logger.Debug("starting polling pass")

	var wg sync.WaitGroup
	for _, f := range d.feeds {
		d.mu.Lock()
		if lastRun, ok := d.lastRun[f.Name()]; ok {
			if f.Interval() <= 0 || time.Since(lastRun) < f.Interval() {
				d.logger.Debug("skipping feed, interval not elapsed",
					"name", f.Name(),
					"interval", f.Interval(),
					"since_last", time.Since(lastRun),
				)
				d.mu.Unlock()
				continue
			}
		}
		d.mu.Unlock()

		wg.Add(1)
		go func(feed gateway.Feed) {
			defer wg.Done()
			d.collectOne(ctx, feed)
		}(f)
	}

	wg.Wait()

	if err := d.writeHealth(); err != nil {
		d.logger.Error("health file write failed", "error", err)
	}

	elapsed := time.Since(start)
	d.logger.Info("polling pass complete",
		"duration", fmt.Sprintf("%dms", elapsed.Milliseconds()),
	)

	return nil
}

// collectOne runs a single feed, writes its payload to the cache, and
// updates the lastRun timestamp for per-feed interval tracking. A failed
// fetch leaves the cached payload from the previous pass in place; the next
// scheduled pass is the only retry.
func (d *daemon) collectOne(ctx context.Context, f gateway.Feed) {
	d.logger.Debug("polling feed", "name", f.Name())

	payload, err := f.Collect(ctx)
	if err != nil {
		d.logger.Error("feed fetch failed",
			"name", f.Name(),
			"error", err,
		)
		d.mu.Lock()
		d.feedState[f.Name()] = err.Error()
		d.mu.Unlock()
		return
	}

	if err := d.store.Set(f.Name(), payload); err != nil {
		d.logger.Error("cache write failed",
			"name", f.Name(),
			"error", err,
		)
		return
	}

	// The sensor feed also drives the rolling temperature window the
	// banner sparkline and a restarted TUI resume from.
	if snap, ok := payload.(*gateway.SensorSnapshot); ok {
		d.recordSample(snap)
	}

	d.mu.Lock()
	d.lastRun[f.Name()] = time.Now()
	d.feedState[f.Name()] = "ok"
	d.mu.Unlock()
}

// recordSample pushes a numeric temperature reading onto the bounded window
// and persists the window to the store.
func (d *daemon) recordSample(snap *gateway.SensorSnapshot) {
	v, ok := snap.Get(gateway.KeyTemperature)
	if !ok {
		return
	}
	f, isNum := v.Number()
	if !isNum {
		return
	}

	d.mu.Lock()
	d.temps.Push(history.Sample{Label: format.ClockLabel(time.Now()), Value: f})
	samples := d.temps.Samples()
	d.mu.Unlock()

	if err := cache.SetTyped(d.store, history.CacheKey, &samples); err != nil {
		d.logger.Warn("could not persist chart history", "error", err)
	}
}

// writeHealth snapshots the per-feed states into the health file.
func (d *daemon) writeHealth() error {
	d.mu.Lock()
	states := make(map[string]string, len(d.feedState))
	for name, state := range d.feedState {
		states[name] = state
	}
	d.mu.Unlock()

	return writeHealthFile(d.config.Panel.CacheDir, states)
}
