// Package segment formats cached gateway state as one-line strings for
// prompt and status-bar embedding (starship custom modules, tmux
// status-right). Like the banner it reads only the snapshot store; a prompt
// segment must never block on the device bus.
package segment

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gitlab.com/nubitek/gatepulse/cache"
	"gitlab.com/nubitek/gatepulse/gateway"
)

// OutputConfig holds the configuration for the segment renderer.
type OutputConfig struct {
	// CacheDir is the directory where gatepulse stores cached gateway state.
	CacheDir string

	// CacheTTL is the maximum age of cached data before it is considered
	// stale. Stale data is still displayed but suffixed with " ?".
	CacheTTL time.Duration

	// Logger is used for diagnostic messages. A no-op logger is used if nil.
	Logger *slog.Logger
}

// DefaultOutputConfig returns an OutputConfig with the standard cache
// directory and a 30-second TTL.
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		CacheDir: cache.DefaultDir(),
		CacheTTL: 30 * time.Second,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Output reads cached gateway state and formats it as a one-line summary.
type Output struct {
	store  *cache.Store
	config OutputConfig
}

// NewOutput creates an Output with the given configuration. It initialises
// the underlying cache store and returns an error if the cache directory
// cannot be created.
func NewOutput(cfg OutputConfig) (*Output, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	store, err := cache.NewStore(cfg.CacheDir, logger)
	if err != nil {
		return nil, fmt.Errorf("segment: create cache store: %w", err)
	}

	return &Output{
		store:  store,
		config: cfg,
	}, nil
}

// Render returns the one-line gateway summary, like
//
//	24.5°C 60%RH ●5/6 dev
//
// On a cache miss it returns an empty string so the embedding prompt hides
// the segment entirely. Stale data is suffixed with " ?".
func (o *Output) Render() string {
	var parts []string
	fresh := true

	snap, sensorsFresh, err := cache.GetTyped[gateway.SensorSnapshot](o.store, gateway.FeedSensors, o.config.CacheTTL)
	if err == nil && snap != nil {
		fresh = fresh && sensorsFresh
		if v, ok := snap.Get(gateway.KeyTemperature); ok {
			parts = append(parts, v.String()+"°C")
		}
		if v, ok := snap.Get(gateway.KeyHumidity); ok {
			parts = append(parts, v.String()+"%RH")
		}
	}

	devices, devicesFresh, err := cache.GetTyped[[]gateway.DeviceRecord](o.store, gateway.FeedDevices, o.config.CacheTTL)
	if err == nil && devices != nil {
		fresh = fresh && devicesFresh
		connected := 0
		for _, d := range *devices {
			if d.Connected() {
				connected++
			}
		}
		parts = append(parts, fmt.Sprintf("●%d/%d dev", connected, len(*devices)))
	}

	if len(parts) == 0 {
		return ""
	}

	output := strings.Join(parts, " ")
	if !fresh {
		output += " ?"
	}
	return output
}
