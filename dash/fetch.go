package dash

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/nubitek/gatepulse/gateway"
)

// tickMsg fires a sensor refresh cycle.
type tickMsg time.Time

// deviceTickMsg fires a device refresh cycle when device polling is
// enabled.
type deviceTickMsg time.Time

// sensorsMsg carries the result of one sensor fetch.
type sensorsMsg struct {
	snap *gateway.SensorSnapshot
	at   time.Time
	err  error
}

// devicesMsg carries the result of one device fetch.
type devicesMsg struct {
	devices []gateway.DeviceRecord
	err     error
}

// footerMsg carries the navigation links for the footer. Fetch failures
// are resolved to the fallback set before the message is emitted, so the
// footer always has something to show.
type footerMsg struct {
	links []FooterLink
}

// tickCmd schedules the next sensor cycle. Each tick re-arms the next one
// unconditionally: the schedule never waits for an in-flight fetch, so a
// response slower than the poll interval overlaps with the next request
// and the later arrival wins.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// deviceTickCmd schedules the next device cycle.
func deviceTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return deviceTickMsg(t)
	})
}

// fetchSensorsCmd runs one sensor fetch off the update loop.
func (m Model) fetchSensorsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		snap, err := client.FetchSensors(context.Background())
		return sensorsMsg{snap: snap, at: time.Now(), err: err}
	}
}

// fetchDevicesCmd runs one device fetch off the update loop.
func (m Model) fetchDevicesCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		devices, err := client.FetchDevices(context.Background())
		return devicesMsg{devices: devices, err: err}
	}
}

// fetchFooterCmd fetches the footer partial and parses its navigation
// links, falling back to the static set on any failure.
func (m Model) fetchFooterCmd() tea.Cmd {
	client := m.client
	logger := m.logger
	return func() tea.Msg {
		html, err := client.FetchFooter(context.Background())
		if err != nil {
			logger.Warn("footer fetch failed, using fallback links", "error", err)
			return footerMsg{links: fallbackFooterLinks()}
		}
		links := parseFooterLinks(html)
		if len(links) == 0 {
			logger.Warn("footer partial had no links, using fallback")
			return footerMsg{links: fallbackFooterLinks()}
		}
		return footerMsg{links: links}
	}
}
