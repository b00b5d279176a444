package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/nubitek/gatepulse/internal/format"
)

// HealthStatus is the watch daemon's liveness record, written after every
// polling pass and read back by the -health probe.
type HealthStatus struct {
	Status   string            `json:"status"`
	LastPoll time.Time         `json:"last_poll"`
	Feeds    map[string]string `json:"feeds"`
}

// healthFile is the filename for the daemon health check within the cache directory.
const healthFile = "health.json"

// writeHealthFile writes the health status to the cache directory. Each feed
// entry is "ok" or the text of its most recent failure.
func writeHealthFile(cacheDir string, feeds map[string]string) error {
	status := HealthStatus{
		Status:   "ok",
		LastPoll: time.Now(),
		Feeds:    make(map[string]string, len(feeds)),
	}
	for name, state := range feeds {
		status.Feeds[name] = state
		if state != "ok" {
			status.Status = "degraded"
		}
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal health status: %w", err)
	}

	path := filepath.Join(cacheDir, healthFile)
	return os.WriteFile(path, data, 0644)
}

// readHealthFile reads the health status from the cache directory.
func readHealthFile(cacheDir string) (*HealthStatus, error) {
	path := filepath.Join(cacheDir, healthFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read health file: %w", err)
	}

	var status HealthStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("unmarshal health file: %w", err)
	}

	return &status, nil
}

// checkHealth reads the health file and reports whether the watch daemon is
// healthy. The daemon is considered healthy if the health file exists and the
// last poll was within 2x the poll interval. Returns exit code 0 for healthy,
// 1 for unhealthy/missing.
func checkHealth(cacheDir string, pollInterval time.Duration, jsonOutput bool) int {
	status, err := readHealthFile(cacheDir)
	if err != nil {
		if jsonOutput {
			fmt.Println(`{"status":"missing","error":"no health file found"}`)
		} else {
			fmt.Fprintln(os.Stderr, "watch daemon not running (no health file)")
		}
		return 1
	}

	staleThreshold := 2 * pollInterval
	age := time.Since(status.LastPoll)
	isStale := age > staleThreshold

	if jsonOutput {
		output := map[string]interface{}{
			"status":    status.Status,
			"last_poll": status.LastPoll.Format(time.RFC3339),
			"age":       age.String(),
			"stale":     isStale,
			"feeds":     status.Feeds,
		}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(data))
	} else {
		if isStale {
			fmt.Fprintf(os.Stderr, "watch daemon stale (last poll %s, threshold %s)\n", format.FormatTimeSince(status.LastPoll), staleThreshold)
		} else {
			fmt.Printf("watch daemon healthy (last poll %s)\n", format.FormatTimeSince(status.LastPoll))
			for name, s := range status.Feeds {
				fmt.Printf("  %s: %s\n", name, s)
			}
		}
	}

	if isStale {
		return 1
	}
	return 0
}
