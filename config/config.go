// Package config provides configuration parsing for gatepulse.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"gitlab.com/nubitek/gatepulse/cache"
	"gitlab.com/nubitek/gatepulse/history"
)

// Config represents the gatepulse configuration.
type Config struct {
	// Gateway holds the status API connection settings.
	Gateway GatewayConfig `yaml:"gateway"`

	// Panel holds the dashboard and watch daemon settings.
	Panel PanelConfig `yaml:"panel"`

	// Player holds the advertising display loop settings.
	Player PlayerConfig `yaml:"player"`

	// Logscan holds the gateway log scanner settings.
	Logscan LogscanConfig `yaml:"logscan"`
}

// GatewayConfig holds the status API connection settings.
type GatewayConfig struct {
	// BaseURL is the root of the gateway's local status API.
	BaseURL string `yaml:"base_url"`
	// RequestTimeout is a duration string for the HTTP client deadline.
	// "0s" imposes none, leaving requests on platform connection semantics.
	RequestTimeout string `yaml:"request_timeout"`
}

// PanelConfig holds the dashboard and watch daemon settings.
type PanelConfig struct {
	// PollInterval is a duration string between sensor fetch cycles.
	PollInterval string `yaml:"poll_interval"`
	// DevicePollInterval is a duration string between device list fetches.
	// "0s" fetches the list once at startup and never again.
	DevicePollInterval string `yaml:"device_poll_interval"`
	// HistoryCapacity is the number of samples kept for the temperature chart.
	HistoryCapacity int `yaml:"history_capacity"`
	// CacheDir is the directory for cached gateway snapshots.
	CacheDir string `yaml:"cache_dir"`
	// LogFile is the path for watch daemon log output.
	LogFile string `yaml:"log_file"`
}

// PlayerConfig holds the advertising display loop settings.
type PlayerConfig struct {
	// VideoPath is the advertising clip played while the display flag is on.
	VideoPath string `yaml:"video_path"`
	// PosterPath is an optional still shown while playback is off; empty
	// disables the poster entirely.
	PosterPath string `yaml:"poster_path"`
	// FlagPath is the JSON file carrying the {"display": bool} toggle.
	FlagPath string `yaml:"flag_path"`
	// PollInterval is a duration string between flag file checks.
	PollInterval string `yaml:"poll_interval"`
	// MaxRuntime stops playback after this duration; "0s" means unlimited.
	MaxRuntime string `yaml:"max_runtime"`
	// Command is the playback command line; the media path is appended.
	Command []string `yaml:"command"`
	// PosterWidth and PosterHeight bound the prepared poster image.
	PosterWidth  int `yaml:"poster_width"`
	PosterHeight int `yaml:"poster_height"`
}

// LogscanConfig holds the gateway log scanner settings.
type LogscanConfig struct {
	// LogDir is the directory holding dated gateway logs.
	LogDir string `yaml:"log_dir"`
	// Lines is how many matching lines to keep per category.
	Lines int `yaml:"lines"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Gateway: GatewayConfig{
			BaseURL:        "http://127.0.0.1:5000",
			RequestTimeout: "0s",
		},
		Panel: PanelConfig{
			PollInterval:       "10s",
			DevicePollInterval: "0s",
			HistoryCapacity:    history.DefaultCapacity,
			CacheDir:           cache.DefaultDir(),
			LogFile:            filepath.Join(home, ".local", "log", "gatepulse.log"),
		},
		Player: PlayerConfig{
			VideoPath:    "",
			PosterPath:   "",
			FlagPath:     filepath.Join(home, ".config", "gatepulse", "display.json"),
			PollInterval: "2s",
			MaxRuntime:   "0s",
			Command: []string{
				"mpv",
				"--fullscreen",
				"--loop-file=inf",
				"--no-terminal",
				"--no-osc",
				"--no-input-default-bindings",
			},
			PosterWidth:  1920,
			PosterHeight: 1080,
		},
		Logscan: LogscanConfig{
			LogDir: filepath.Join(home, ".local", "log"),
			Lines:  20,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gatepulse", "config.yaml")
}

// LoadConfig loads configuration from a YAML file, merging with defaults.
// A missing file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for required fields and logical consistency.
func (c *Config) Validate() error {
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway.base_url is required")
	}
	if _, err := time.ParseDuration(c.Gateway.RequestTimeout); err != nil {
		return fmt.Errorf("gateway.request_timeout is not a duration: %w", err)
	}

	interval, err := time.ParseDuration(c.Panel.PollInterval)
	if err != nil {
		return fmt.Errorf("panel.poll_interval is not a duration: %w", err)
	}
	if interval <= 0 {
		return fmt.Errorf("panel.poll_interval must be positive, got %q", c.Panel.PollInterval)
	}
	deviceInterval, err := time.ParseDuration(c.Panel.DevicePollInterval)
	if err != nil {
		return fmt.Errorf("panel.device_poll_interval is not a duration: %w", err)
	}
	if deviceInterval < 0 {
		return fmt.Errorf("panel.device_poll_interval must not be negative, got %q", c.Panel.DevicePollInterval)
	}
	if c.Panel.HistoryCapacity < 1 {
		return fmt.Errorf("panel.history_capacity must be at least 1, got %d", c.Panel.HistoryCapacity)
	}
	if c.Panel.CacheDir == "" {
		return fmt.Errorf("panel.cache_dir is required")
	}

	playerInterval, err := time.ParseDuration(c.Player.PollInterval)
	if err != nil {
		return fmt.Errorf("player.poll_interval is not a duration: %w", err)
	}
	if playerInterval <= 0 {
		return fmt.Errorf("player.poll_interval must be positive, got %q", c.Player.PollInterval)
	}
	if _, err := time.ParseDuration(c.Player.MaxRuntime); err != nil {
		return fmt.Errorf("player.max_runtime is not a duration: %w", err)
	}
	if len(c.Player.Command) == 0 {
		return fmt.Errorf("player.command must name a playback command")
	}

	if c.Logscan.Lines < 1 {
		return fmt.Errorf("logscan.lines must be at least 1, got %d", c.Logscan.Lines)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Durations below parse the string fields once validation has passed.

// RequestTimeout returns the HTTP client deadline; zero means none.
func (c *Config) RequestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Gateway.RequestTimeout)
	return d
}

// PollInterval returns the sensor fetch period.
func (c *Config) PollInterval() time.Duration {
	d, _ := time.ParseDuration(c.Panel.PollInterval)
	return d
}

// DevicePollInterval returns the device list fetch period; zero means the
// list is fetched once at startup.
func (c *Config) DevicePollInterval() time.Duration {
	d, _ := time.ParseDuration(c.Panel.DevicePollInterval)
	return d
}

// PlayerPollInterval returns the display flag poll period.
func (c *Config) PlayerPollInterval() time.Duration {
	d, _ := time.ParseDuration(c.Player.PollInterval)
	return d
}

// PlayerMaxRuntime returns the playback cap; zero means unlimited.
func (c *Config) PlayerMaxRuntime() time.Duration {
	d, _ := time.ParseDuration(c.Player.MaxRuntime)
	return d
}
