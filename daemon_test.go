package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"gitlab.com/nubitek/gatepulse/cache"
	"gitlab.com/nubitek/gatepulse/config"
	"gitlab.com/nubitek/gatepulse/gateway"
	"gitlab.com/nubitek/gatepulse/history"
)

func TestNewDaemon(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Gateway.BaseURL = "http://127.0.0.1:5000"
	cfg.Panel.CacheDir = filepath.Join(tmpDir, "cache")
	cfg.Panel.LogFile = filepath.Join(tmpDir, "test.log")

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	d, err := newDaemon(cfg, logger)
	if err != nil {
		t.Fatalf("newDaemon() error: %v", err)
	}

	if d.config != cfg {
		t.Error("daemon.config does not match input")
	}
	if d.store == nil {
		t.Error("daemon.store is nil")
	}
	if d.temps == nil {
		t.Error("daemon.temps is nil")
	}

	// Both gateway feeds should be wired.
	if len(d.feeds) != 2 {
		t.Fatalf("expected 2 feeds wired, got %d", len(d.feeds))
	}

	names := make(map[string]bool)
	for _, f := range d.feeds {
		names[f.Name()] = true
	}
	for _, expected := range []string{gateway.FeedSensors, gateway.FeedDevices} {
		if !names[expected] {
			t.Errorf("feed %q not wired", expected)
		}
	}
}

func TestNewDaemon_RestoresHistory(t *testing.T) {
	tmpDir := t.TempDir()
	cacheDir := filepath.Join(tmpDir, "cache")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := cache.NewStore(cacheDir, logger)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	saved := []history.Sample{
		{Label: "10:00:00", Value: 20.5},
		{Label: "10:00:10", Value: 21.0},
	}
	if err := cache.SetTyped(store, history.CacheKey, &saved); err != nil {
		t.Fatalf("SetTyped() error: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Panel.CacheDir = cacheDir

	d, err := newDaemon(cfg, logger)
	if err != nil {
		t.Fatalf("newDaemon() error: %v", err)
	}

	if got := d.temps.Len(); got != 2 {
		t.Fatalf("restored window has %d samples, want 2", got)
	}
	if values := d.temps.Values(); values[0] != 20.5 || values[1] != 21.0 {
		t.Errorf("restored values = %v, want [20.5 21]", values)
	}
}

// mockFeed is a test feed that returns static data.
type mockFeed struct {
	name     string
	payload  any
	interval time.Duration
	err      error
	calls    int
}

func (m *mockFeed) Name() string            { return m.name }
func (m *mockFeed) Description() string     { return "mock " + m.name }
func (m *mockFeed) Interval() time.Duration { return m.interval }
func (m *mockFeed) Collect(ctx context.Context) (any, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.payload, nil
}

// mockSlowFeed sleeps before returning data. Used to verify feeds run
// concurrently within a pass.
type mockSlowFeed struct {
	name     string
	payload  any
	duration time.Duration
}

func (m *mockSlowFeed) Name() string            { return m.name }
func (m *mockSlowFeed) Description() string     { return "slow mock " + m.name }
func (m *mockSlowFeed) Interval() time.Duration { return time.Minute }
func (m *mockSlowFeed) Collect(ctx context.Context) (any, error) {
	select {
	case <-time.After(m.duration):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return m.payload, nil
}

// newTestDaemon creates a daemon over a temporary cache directory with no
// feeds. The caller appends feeds as needed.
func newTestDaemon(t *testing.T) *daemon {
	t.Helper()
	cacheDir := filepath.Join(t.TempDir(), "cache")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := cache.NewStore(cacheDir, logger)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Panel.CacheDir = cacheDir

	return &daemon{
		config:    cfg,
		logger:    logger,
		store:     store,
		pidFile:   filepath.Join(cacheDir, "gatepulse.pid"),
		lastRun:   make(map[string]time.Time),
		feedState: make(map[string]string),
		temps:     history.New(history.DefaultCapacity),
	}
}

func hasKey(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}

func TestDaemon_WritePIDFile(t *testing.T) {
	d := newTestDaemon(t)

	if err := d.writePIDFile(); err != nil {
		t.Fatalf("writePIDFile() error: %v", err)
	}

	data, err := os.ReadFile(d.pidFile)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		t.Fatalf("PID file contains non-integer: %q", string(data))
	}

	if pid != os.Getpid() {
		t.Errorf("PID file contains %d, want %d", pid, os.Getpid())
	}
}

func TestDaemon_RemovePIDFile(t *testing.T) {
	d := newTestDaemon(t)

	if err := d.writePIDFile(); err != nil {
		t.Fatalf("writePIDFile() error: %v", err)
	}

	// Verify the file exists.
	if _, err := os.Stat(d.pidFile); err != nil {
		t.Fatalf("PID file does not exist after write: %v", err)
	}

	d.removePIDFile()

	// Verify the file is gone.
	if _, err := os.Stat(d.pidFile); !os.IsNotExist(err) {
		t.Errorf("PID file still exists after removePIDFile(); err = %v", err)
	}
}

func TestDaemon_IsRunning_NoFile(t *testing.T) {
	d := newTestDaemon(t)

	running, pid := d.isRunning()
	if running {
		t.Errorf("isRunning() = true, want false (no PID file)")
	}
	if pid != 0 {
		t.Errorf("isRunning() pid = %d, want 0", pid)
	}
}

func TestDaemon_IsRunning_CurrentProcess(t *testing.T) {
	d := newTestDaemon(t)

	// Write current process PID.
	if err := d.writePIDFile(); err != nil {
		t.Fatalf("writePIDFile() error: %v", err)
	}

	running, pid := d.isRunning()
	if !running {
		t.Error("isRunning() = false, want true (current process is running)")
	}
	if pid != os.Getpid() {
		t.Errorf("isRunning() pid = %d, want %d", pid, os.Getpid())
	}
}

func TestDaemon_IsRunning_StaleProcess(t *testing.T) {
	d := newTestDaemon(t)

	// Write a PID that almost certainly does not exist.
	stalePID := 4999999
	if err := os.MkdirAll(filepath.Dir(d.pidFile), 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	if err := os.WriteFile(d.pidFile, []byte(strconv.Itoa(stalePID)), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	running, pid := d.isRunning()
	if running {
		t.Errorf("isRunning() = true, want false (stale PID %d)", stalePID)
	}
	if pid != 0 {
		t.Errorf("isRunning() pid = %d, want 0 for stale process", pid)
	}

	// Verify the stale PID file was cleaned up.
	if _, err := os.Stat(d.pidFile); !os.IsNotExist(err) {
		t.Error("stale PID file was not cleaned up")
	}
}

func TestDaemon_RunOnce(t *testing.T) {
	d := newTestDaemon(t)
	d.feeds = append(d.feeds, &mockFeed{
		name:     "test-feed",
		payload:  map[string]string{"status": "ok"},
		interval: time.Minute,
	})

	if err := d.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce() error: %v", err)
	}

	if keys := d.store.Keys(); !hasKey(keys, "test-feed") {
		t.Errorf("cache key %q not found after runOnce; keys = %v", "test-feed", keys)
	}
}

func TestDaemon_RunOnce_FeedError(t *testing.T) {
	d := newTestDaemon(t)
	d.feeds = append(d.feeds,
		&mockFeed{name: "failing-feed", interval: time.Minute, err: context.DeadlineExceeded},
		&mockFeed{name: "succeeding-feed", interval: time.Minute, payload: map[string]string{"status": "ok"}},
	)

	// runOnce should not return an error even if one feed fails.
	if err := d.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce() error: %v", err)
	}

	keys := d.store.Keys()
	if !hasKey(keys, "succeeding-feed") {
		t.Errorf("cache key %q not found after runOnce; keys = %v", "succeeding-feed", keys)
	}
	if hasKey(keys, "failing-feed") {
		t.Error("failing feed should not have written to cache")
	}
}

func TestDaemon_RunOnce_Concurrent(t *testing.T) {
	d := newTestDaemon(t)

	sleepDuration := 50 * time.Millisecond

	// Three slow feeds, each sleeping for sleepDuration.
	for i := 0; i < 3; i++ {
		d.feeds = append(d.feeds, &mockSlowFeed{
			name:     fmt.Sprintf("slow-%d", i),
			payload:  map[string]string{"status": "ok"},
			duration: sleepDuration,
		})
	}

	start := time.Now()
	if err := d.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce() error: %v", err)
	}
	elapsed := time.Since(start)

	// If executed concurrently, total time should be around sleepDuration
	// (not 3x sleepDuration). Allow generous margin for CI/slow machines.
	maxExpected := sleepDuration * 2
	if elapsed > maxExpected {
		t.Errorf("runOnce() took %v, want < %v (concurrent execution expected)", elapsed, maxExpected)
	}
}

func TestDaemon_RunOnce_PerFeedInterval(t *testing.T) {
	d := newTestDaemon(t)
	d.feeds = append(d.feeds,
		&mockFeed{name: "fresh-feed", interval: time.Minute, payload: map[string]string{"status": "fresh"}},
		&mockFeed{name: "stale-feed", interval: time.Minute, payload: map[string]string{"status": "stale"}},
	)

	// Mark "fresh-feed" as having just run (should be skipped); leaving
	// "stale-feed" untracked means it runs.
	d.lastRun["fresh-feed"] = time.Now()

	if err := d.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce() error: %v", err)
	}

	keys := d.store.Keys()
	if !hasKey(keys, "stale-feed") {
		t.Error("stale-feed should have been collected but was not found in cache")
	}
	if hasKey(keys, "fresh-feed") {
		t.Error("fresh-feed should have been skipped but was found in cache")
	}
}

func TestDaemon_RunOnce_ZeroIntervalCollectsOnce(t *testing.T) {
	d := newTestDaemon(t)
	once := &mockFeed{name: "once-feed", payload: []string{"a", "b"}}
	d.feeds = append(d.feeds, once)

	// First pass collects, every later pass skips.
	for i := 0; i < 3; i++ {
		if err := d.runOnce(context.Background()); err != nil {
			t.Fatalf("runOnce() pass %d error: %v", i, err)
		}
	}

	if once.calls != 1 {
		t.Errorf("zero-interval feed collected %d times, want 1", once.calls)
	}
	if keys := d.store.Keys(); !hasKey(keys, "once-feed") {
		t.Errorf("cache key %q not found; keys = %v", "once-feed", keys)
	}
}

func TestDaemon_RunOnce_ZeroIntervalRetriesAfterFailure(t *testing.T) {
	d := newTestDaemon(t)
	flaky := &mockFeed{name: "flaky-feed", err: fmt.Errorf("boom")}
	d.feeds = append(d.feeds, flaky)

	// Failed pass does not count as the one collection.
	if err := d.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce() error: %v", err)
	}
	if flaky.calls != 1 {
		t.Fatalf("feed collected %d times after first pass, want 1", flaky.calls)
	}

	// Heal the feed; the next pass retries and succeeds.
	flaky.err = nil
	flaky.payload = []string{"ok"}
	if err := d.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce() error: %v", err)
	}
	if flaky.calls != 2 {
		t.Errorf("feed collected %d times after retry pass, want 2", flaky.calls)
	}

	// Now it has succeeded once; further passes skip it.
	if err := d.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce() error: %v", err)
	}
	if flaky.calls != 2 {
		t.Errorf("feed collected %d times after settle pass, want 2", flaky.calls)
	}
}

func TestDaemon_RunOnce_WritesHealthFile(t *testing.T) {
	d := newTestDaemon(t)
	d.feeds = append(d.feeds,
		&mockFeed{name: "good-feed", interval: time.Minute, payload: "fine"},
		&mockFeed{name: "bad-feed", interval: time.Minute, err: fmt.Errorf("connection refused")},
	)

	if err := d.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce() error: %v", err)
	}

	status, err := readHealthFile(d.config.Panel.CacheDir)
	if err != nil {
		t.Fatalf("readHealthFile() error: %v", err)
	}

	if status.Status != "degraded" {
		t.Errorf("health status = %q, want %q (one feed failing)", status.Status, "degraded")
	}
	if status.Feeds["good-feed"] != "ok" {
		t.Errorf("good-feed state = %q, want %q", status.Feeds["good-feed"], "ok")
	}
	if !strings.Contains(status.Feeds["bad-feed"], "connection refused") {
		t.Errorf("bad-feed state = %q, want the failure text", status.Feeds["bad-feed"])
	}
}

func TestDaemon_Run_AlreadyRunning(t *testing.T) {
	d := newTestDaemon(t)

	// Write PID file with current process PID to simulate already running.
	if err := d.writePIDFile(); err != nil {
		t.Fatalf("writePIDFile() error: %v", err)
	}
	defer d.removePIDFile()

	err := d.run(context.Background())
	if err == nil {
		t.Fatal("run() should return an error when daemon is already running")
	}

	if !strings.Contains(err.Error(), "already running") {
		t.Errorf("run() error = %q, want error containing 'already running'", err.Error())
	}
}

func TestDaemon_Shutdown(t *testing.T) {
	d := newTestDaemon(t)

	// shutdown should not panic even with an empty cache.
	d.shutdown()
}

func TestDaemon_CollectOne_Success(t *testing.T) {
	d := newTestDaemon(t)

	feed := &mockFeed{name: "success-feed", interval: time.Minute, payload: "fine"}
	d.collectOne(context.Background(), feed)

	if keys := d.store.Keys(); !hasKey(keys, "success-feed") {
		t.Errorf("cache key %q not found after collectOne; keys = %v", "success-feed", keys)
	}

	d.mu.Lock()
	lastRun, ok := d.lastRun["success-feed"]
	state := d.feedState["success-feed"]
	d.mu.Unlock()
	if !ok {
		t.Error("lastRun not set for success-feed")
	}
	if time.Since(lastRun) > time.Second {
		t.Errorf("lastRun is too old: %v ago", time.Since(lastRun))
	}
	if state != "ok" {
		t.Errorf("feed state = %q, want %q", state, "ok")
	}
}

func TestDaemon_CollectOne_Error(t *testing.T) {
	d := newTestDaemon(t)

	feed := &mockFeed{name: "error-feed", interval: time.Minute, err: fmt.Errorf("simulated failure")}
	// collectOne should not panic on error.
	d.collectOne(context.Background(), feed)

	// No data written to cache.
	if keys := d.store.Keys(); hasKey(keys, "error-feed") {
		t.Error("error-feed should not have written to cache")
	}

	// lastRun stays unset so the next pass retries; the failure text is
	// recorded for the health file.
	d.mu.Lock()
	_, ok := d.lastRun["error-feed"]
	state := d.feedState["error-feed"]
	d.mu.Unlock()
	if ok {
		t.Error("lastRun should not be set for error-feed")
	}
	if state != "simulated failure" {
		t.Errorf("feed state = %q, want %q", state, "simulated failure")
	}
}

func TestDaemon_CollectOne_RecordsTemperature(t *testing.T) {
	d := newTestDaemon(t)

	snap := &gateway.SensorSnapshot{Readings: []gateway.Reading{
		{Key: "temperature", Value: gateway.NumberValue("24.5", 24.5)},
		{Key: "humidity", Value: gateway.NumberValue("60", 60)},
	}}
	feed := &mockFeed{name: gateway.FeedSensors, interval: time.Minute, payload: snap}

	d.collectOne(context.Background(), feed)

	if got := d.temps.Len(); got != 1 {
		t.Fatalf("temperature window has %d samples, want 1", got)
	}
	if values := d.temps.Values(); values[0] != 24.5 {
		t.Errorf("window value = %v, want 24.5", values[0])
	}

	// The window is persisted so a restart resumes it.
	saved, _, err := cache.GetTyped[[]history.Sample](d.store, history.CacheKey, 0)
	if err != nil {
		t.Fatalf("GetTyped() error: %v", err)
	}
	if saved == nil || len(*saved) != 1 {
		t.Fatalf("persisted window = %v, want 1 sample", saved)
	}
	if (*saved)[0].Value != 24.5 {
		t.Errorf("persisted value = %v, want 24.5", (*saved)[0].Value)
	}
}

func TestDaemon_CollectOne_NonNumericTemperatureSkipsWindow(t *testing.T) {
	d := newTestDaemon(t)

	snap := &gateway.SensorSnapshot{Readings: []gateway.Reading{
		{Key: "temperature", Value: gateway.StringValue("n/a")},
	}}
	feed := &mockFeed{name: gateway.FeedSensors, interval: time.Minute, payload: snap}

	d.collectOne(context.Background(), feed)

	if got := d.temps.Len(); got != 0 {
		t.Errorf("temperature window has %d samples, want 0 for non-numeric reading", got)
	}
}
