// Package banner renders a one-shot boxed summary of the gateway's cached
// state: the latest sensor readings, the temperature window, the humidity
// split and the device inventory. It reads only from the snapshot store the
// watch daemon maintains, never from the gateway itself, so it is safe to run
// from shell startup files.
package banner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/nubitek/gatepulse/cache"
	"gitlab.com/nubitek/gatepulse/gateway"
	"gitlab.com/nubitek/gatepulse/history"
	"gitlab.com/nubitek/gatepulse/internal/format"
	"gitlab.com/nubitek/gatepulse/widgets"
)

// titleColor styles the box title.
var titleColor = lipgloss.Color("#7C3AED")

// Config controls banner generation.
type Config struct {
	// CacheDir is the gatepulse snapshot store directory.
	CacheDir string
	// CacheTTL is how long cached gateway state counts as fresh.
	CacheTTL time.Duration
	// Hostname overrides os.Hostname().
	Hostname string
	// TermWidth overrides terminal width detection. Zero auto-detects.
	TermWidth int
	// TermHeight overrides terminal height detection. Zero auto-detects.
	TermHeight int
	// Logger for banner operations.
	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults for banner generation.
func DefaultConfig() Config {
	return Config{
		CacheDir: cache.DefaultDir(),
		CacheTTL: 30 * time.Second,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Banner renders the boxed gateway summary.
type Banner struct {
	config Config
}

// NewBanner creates a Banner with the given configuration. If Logger is
// nil, a no-op logger is used.
func NewBanner(cfg Config) *Banner {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Banner{config: cfg}
}

// Generate produces the complete banner string. Missing or stale cache
// entries degrade individual sections to placeholders; they never fail the
// render.
func (b *Banner) Generate(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var snap *gateway.SensorSnapshot
	var devices *[]gateway.DeviceRecord
	var samples []history.Sample
	var age time.Duration

	store, err := cache.NewStore(b.config.CacheDir, b.config.Logger)
	if err != nil {
		b.config.Logger.Warn("banner: could not open snapshot store", "error", err)
	} else {
		snap, devices, samples = b.loadCached(store)
		age = store.Age(gateway.FeedSensors)
	}

	hostname := b.config.Hostname
	if hostname == "" {
		hostname, _ = os.Hostname()
		if hostname == "" {
			hostname = "unknown"
		}
	}

	width := b.config.TermWidth
	if width == 0 {
		width, _ = DetectTerminalSize()
	}
	if width > 100 {
		width = 100
	}

	lines := b.buildLines(snap, devices, samples, age, width-4)
	title := "gatepulse :: " + hostname

	return RenderBox(lines, width, title, RoundedBox, titleColor), nil
}

// loadCached reads the daemon's snapshots from the store. Each entry that
// cannot be loaded is logged and degrades to nil.
func (b *Banner) loadCached(store *cache.Store) (*gateway.SensorSnapshot, *[]gateway.DeviceRecord, []history.Sample) {
	ttl := b.config.CacheTTL

	snap, _, err := cache.GetTyped[gateway.SensorSnapshot](store, gateway.FeedSensors, ttl)
	if err != nil {
		b.config.Logger.Warn("banner: could not load sensor snapshot", "error", err)
		snap = nil
	}

	devices, _, err := cache.GetTyped[[]gateway.DeviceRecord](store, gateway.FeedDevices, ttl)
	if err != nil {
		b.config.Logger.Warn("banner: could not load device list", "error", err)
		devices = nil
	}

	var samples []history.Sample
	saved, _, err := cache.GetTyped[[]history.Sample](store, history.CacheKey, ttl)
	if err != nil {
		b.config.Logger.Warn("banner: could not load chart history", "error", err)
	} else if saved != nil {
		samples = *saved
	}

	return snap, devices, samples
}

// buildLines assembles the box content.
func (b *Banner) buildLines(snap *gateway.SensorSnapshot, devices *[]gateway.DeviceRecord, samples []history.Sample, age time.Duration, innerWidth int) []string {
	lines := []string{b.statusLine(snap != nil, age)}
	lines = append(lines, "")
	lines = append(lines, readingLines(snap, innerWidth)...)
	lines = append(lines, "")

	if len(samples) > 0 {
		values := make([]float64, len(samples))
		for i, s := range samples {
			values[i] = s.Value
		}
		spark := widgets.RenderSparklineWithRange(values, sparkWidth(innerWidth, len(values)))
		lines = append(lines, fmt.Sprintf("%-9s %s", "temp", spark))
	}

	if snap != nil {
		if v, ok := snap.Get(gateway.KeyHumidity); ok {
			if ratio, isNum := v.Number(); isNum {
				cfg := widgets.DefaultSplitGaugeConfig()
				cfg.Series = [2]float64{ratio, 100 - ratio}
				lines = append(lines, fmt.Sprintf("%-9s %s", "humidity", widgets.RenderSplitGauge(cfg)))
			}
		}
	}

	lines = append(lines, deviceLines(devices)...)
	return lines
}

// statusLine reports snapshot freshness and system uptime.
func (b *Banner) statusLine(haveData bool, age time.Duration) string {
	state := "no data, is the watch daemon running?"
	if haveData {
		if b.config.CacheTTL > 0 && age > b.config.CacheTTL {
			state = "stale, " + format.FormatDuration(age) + " old"
		} else {
			state = "updated " + format.FormatDuration(age) + " ago"
		}
	}

	line := "sensors: " + state
	if uptime := computeUptime(); uptime != "unknown" {
		line += "   up " + uptime
	}
	return line
}

// readingLines renders the snapshot as aligned label/value columns in
// gateway order.
func readingLines(snap *gateway.SensorSnapshot, width int) []string {
	if snap == nil || snap.Len() == 0 {
		return []string{"(no sensor data)"}
	}

	labelWidth := 0
	for _, r := range snap.Readings {
		if n := len(format.HumanizeKey(r.Key)); n > labelWidth {
			labelWidth = n
		}
	}
	if labelWidth > 24 {
		labelWidth = 24
	}

	cellWidth := labelWidth + 12
	cols := width / (cellWidth + 2)
	if cols < 1 {
		cols = 1
	}
	if cols > 3 {
		cols = 3
	}

	var lines []string
	var row strings.Builder
	for i, r := range snap.Readings {
		if i > 0 && i%cols == 0 {
			lines = append(lines, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
		title := format.TruncateWithEllipsis(format.HumanizeKey(r.Key), labelWidth)
		cell := fmt.Sprintf("%-*s %s", labelWidth, title, r.Value.String())
		row.WriteString(fmt.Sprintf("%-*s", cellWidth+2, cell))
	}
	if row.Len() > 0 {
		lines = append(lines, strings.TrimRight(row.String(), " "))
	}
	return lines
}

// deviceLines renders the connected count plus one line per unhealthy
// device. A nil pointer means the device list was never cached; an empty
// list is a valid zero-device inventory.
func deviceLines(devices *[]gateway.DeviceRecord) []string {
	if devices == nil {
		return []string{fmt.Sprintf("%-9s (no data)", "devices")}
	}

	connected := 0
	for _, d := range *devices {
		if d.Connected() {
			connected++
		}
	}

	lines := []string{fmt.Sprintf("%-9s %d/%d connected", "devices", connected, len(*devices))}
	for _, d := range *devices {
		if d.Connected() {
			continue
		}
		status := d.Status
		if status == "" {
			status = "unknown"
		}
		name := d.Name
		if name == "" {
			name = d.ID
		}
		lines = append(lines, fmt.Sprintf("  ! %s (%s)", name, status))
	}
	return lines
}

// sparkWidth sizes the sparkline to one glyph per sample, bounded by the
// available width.
func sparkWidth(innerWidth, samples int) int {
	w := samples
	if max := innerWidth - 24; w > max && max > 0 {
		w = max
	}
	if w < 1 {
		w = 1
	}
	return w
}

// computeUptime returns a human-readable system uptime, or "unknown" when
// the platform offers none.
func computeUptime() string {
	d := getSystemUptime()
	if d == 0 {
		return "unknown"
	}
	return format.FormatDuration(d)
}
