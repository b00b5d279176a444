// Package dash is the live status panel. It renders the gateway's sensor
// snapshot as a card grid, the rolling temperature window as a line chart,
// humidity as a two-segment gauge and the device list as a table, refreshing
// on a fixed schedule driven by the Bubbletea update loop.
package dash

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/nubitek/gatepulse/cache"
	"gitlab.com/nubitek/gatepulse/gateway"
	"gitlab.com/nubitek/gatepulse/history"
	"gitlab.com/nubitek/gatepulse/internal/format"
)

// Tab identifies which tab is currently active.
type Tab int

const (
	TabPanel Tab = iota
	TabDevices
	tabCount // sentinel for wrapping
)

// tabNames maps each Tab value to its display label.
var tabNames = map[Tab]string{
	TabPanel:   "Panel",
	TabDevices: "Devices",
}

// zoneTab returns the bubblezone mark ID for a tab's header label.
func zoneTab(t Tab) string {
	return fmt.Sprintf("tab-%d", t)
}

// Options configures a panel model. Client is required; everything else
// has a usable zero value.
type Options struct {
	Client *gateway.Client
	// Store persists the temperature window across restarts. Nil disables
	// persistence.
	Store  *cache.Store
	Logger *slog.Logger
	// PollInterval is the sensor refresh period.
	PollInterval time.Duration
	// DevicePollInterval is the device refresh period. Zero means the
	// device list is fetched once at startup and never again, matching
	// the gateway's own panel.
	DevicePollInterval time.Duration
	// HistoryCapacity bounds the temperature window. Values below one
	// fall back to history.DefaultCapacity.
	HistoryCapacity int
}

// Model is the top-level Bubbletea model for the gatepulse panel.
type Model struct {
	client *gateway.Client
	store  *cache.Store
	logger *slog.Logger

	pollInterval       time.Duration
	devicePollInterval time.Duration

	activeTab Tab
	width     int
	height    int
	ready     bool
	help      help.Model

	snapshot    *gateway.SensorSnapshot
	devices     []gateway.DeviceRecord
	devicesSeen bool
	footerLinks []FooterLink

	temps *history.Buffer
	line  *LineChart
	gauge *Gauge

	lastUpdated time.Time
	lastErr     error
	fetchFails  int
}

// NewModel builds the panel model. The chart and gauge handles are created
// here exactly once; every later refresh mutates them in place.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}

	temps := history.New(opts.HistoryCapacity)
	if opts.Store != nil {
		saved, _, err := cache.GetTyped[[]history.Sample](opts.Store, history.CacheKey, 0)
		if err != nil {
			logger.Warn("could not restore chart history", "error", err)
		} else if saved != nil {
			temps = history.Restore(opts.HistoryCapacity, *saved)
		}
	}

	line := NewLineChart()
	line.Update(temps)

	return Model{
		client:             opts.Client,
		store:              opts.Store,
		logger:             logger,
		pollInterval:       opts.PollInterval,
		devicePollInterval: opts.DevicePollInterval,
		activeTab:          TabPanel,
		help:               help.New(),
		temps:              temps,
		line:               line,
		gauge:              NewGauge(),
	}
}

// Init implements tea.Model. It fires the initial fetches and arms the
// refresh schedule. The device poll is only armed when a recurring
// interval is configured; otherwise the startup fetch is the only one.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.fetchSensorsCmd(),
		m.fetchDevicesCmd(),
		m.fetchFooterCmd(),
		tickCmd(m.pollInterval),
	}
	if m.devicePollInterval > 0 {
		cmds = append(cmds, deviceTickCmd(m.devicePollInterval))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.NextTab):
			m.activeTab = (m.activeTab + 1) % tabCount
		case key.Matches(msg, keys.PrevTab):
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case key.Matches(msg, keys.Panel):
			m.activeTab = TabPanel
		case key.Matches(msg, keys.Devices):
			m.activeTab = TabDevices
		case key.Matches(msg, keys.Refresh):
			return m, tea.Batch(m.fetchSensorsCmd(), m.fetchDevicesCmd(), m.fetchFooterCmd())
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i := Tab(0); i < tabCount; i++ {
			if zone.Get(zoneTab(i)).InBounds(msg) {
				m.activeTab = i
				break
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

	case tickMsg:
		// Re-arm first. The next cycle is scheduled whether or not the
		// fetch it triggers ever comes back.
		return m, tea.Batch(tickCmd(m.pollInterval), m.fetchSensorsCmd())

	case deviceTickMsg:
		return m, tea.Batch(deviceTickCmd(m.devicePollInterval), m.fetchDevicesCmd())

	case sensorsMsg:
		return m.applySensors(msg), nil

	case devicesMsg:
		return m.applyDevices(msg), nil

	case footerMsg:
		m.footerLinks = msg.links
	}

	return m, nil
}

// applySensors folds one sensor fetch result into the model. A failed
// fetch is logged and counted but changes nothing the user sees: the
// cards, chart and gauge keep their previous state until the next cycle
// delivers a usable snapshot.
func (m Model) applySensors(msg sensorsMsg) Model {
	if msg.err != nil {
		m.logger.Warn("sensor fetch failed", "error", msg.err)
		m.lastErr = msg.err
		m.fetchFails++
		return m
	}

	m.snapshot = msg.snap
	m.lastUpdated = msg.at
	m.lastErr = nil

	if v, ok := msg.snap.Get(gateway.KeyTemperature); ok {
		if f, isNum := v.Number(); isNum {
			m.temps.Push(history.Sample{Label: format.ClockLabel(msg.at), Value: f})
			m.line.Update(m.temps)
			m.persistHistory()
		}
	}
	if v, ok := msg.snap.Get(gateway.KeyHumidity); ok {
		if f, isNum := v.Number(); isNum {
			m.gauge.Update(f)
		}
	}

	return m
}

// applyDevices folds one device fetch result into the model. Failures
// keep the previous table; an empty list is a valid result and clears it.
func (m Model) applyDevices(msg devicesMsg) Model {
	if msg.err != nil {
		m.logger.Warn("device fetch failed", "error", msg.err)
		m.lastErr = msg.err
		m.fetchFails++
		return m
	}
	m.devices = msg.devices
	m.devicesSeen = true
	return m
}

// persistHistory saves the temperature window so a restarted panel picks
// the chart up where it left off.
func (m Model) persistHistory() {
	if m.store == nil {
		return
	}
	samples := m.temps.Samples()
	if err := cache.SetTyped(m.store, history.CacheKey, &samples); err != nil {
		m.logger.Warn("could not persist chart history", "error", err)
	}
}

// View implements tea.Model. The frame is passed through the zone scanner
// so the tab labels stay clickable at whatever position layout gives them.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	content := m.renderTabContent()
	footer := m.renderFooter()

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
}

// renderHeader renders the tab bar with the active tab highlighted. Each
// label is marked as a mouse zone.
func (m Model) renderHeader() string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		name := tabNames[i]
		style := styleInactiveTab
		if i == m.activeTab {
			style = styleActiveTab
		}
		tabs = append(tabs, zone.Mark(zoneTab(i), style.Render(name)))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return styleHeader.Width(m.width).Render(tabBar)
}

// renderTabContent delegates to the active tab's renderer.
func (m Model) renderTabContent() string {
	layout := LayoutFor(m.width)

	var content string
	switch m.activeTab {
	case TabPanel:
		content = m.renderPanelTab(layout)
	case TabDevices:
		content = m.renderDevicesTab(layout)
	default:
		content = ""
	}

	return styleContent.Width(m.width).Render(content)
}

// renderPanelTab renders the card grid plus the temperature and humidity
// sections.
func (m Model) renderPanelTab(layout LayoutConfig) string {
	sectionWidth := m.width - 2*layout.ContentPadding - 4
	if sectionWidth < 16 {
		sectionWidth = 16
	}

	parts := []string{
		renderCards(m.snapshot, layout),
		"",
		sectionTitle("Temperature", sectionWidth),
		m.line.View(layout.ChartWidth),
		"",
		sectionTitle("Humidity", sectionWidth),
		m.gauge.View(layout.GaugeWidth),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderDevicesTab renders the device table. Before the first fetch has
// landed there is nothing to reconcile, so a placeholder shows instead of
// an empty table.
func (m Model) renderDevicesTab(layout LayoutConfig) string {
	if !m.devicesSeen {
		return styleMuted.Render("(loading device list)")
	}
	table := renderDeviceTable(m.devices, layout.TableMaxWidth)
	return lipgloss.JoinVertical(lipgloss.Left, table, "", deviceSummary(m.devices))
}

// renderFooter renders the navigation links from the gateway's footer
// partial, the key help line, the last update time and any standing fetch
// error.
func (m Model) renderFooter() string {
	var lines []string

	if nav := renderFooterLinks(m.footerLinks, m.client.BaseURL()); nav != "" {
		lines = append(lines, nav)
	}

	status := m.help.View(keys)
	if !m.lastUpdated.IsZero() {
		status += styleMuted.Render("  Updated: " + m.lastUpdated.Format("15:04:05"))
	}
	if m.lastErr != nil {
		status += "  " + styleError.Render("! "+m.lastErr.Error())
	}
	lines = append(lines, status)

	return styleFooter.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
