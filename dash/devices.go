package dash

import (
	"fmt"

	"gitlab.com/nubitek/gatepulse/gateway"
	"gitlab.com/nubitek/gatepulse/widgets"
)

// renderDeviceTable renders the device inventory. The table is rebuilt
// wholesale from the latest snapshot; an empty snapshot yields a table
// with a header and zero rows.
func renderDeviceTable(devices []gateway.DeviceRecord, maxWidth int) string {
	cfg := widgets.DefaultTableConfig()
	cfg.Columns = []widgets.Column{
		{Title: "Name", Width: 20},
		{Title: "ID", Width: 10},
		{Title: "Protocol", Width: 10},
		{Title: "Status", Width: 14},
		{Title: "Description", Width: 28},
	}
	cfg.MaxWidth = maxWidth
	cfg.Rows = make([][]string, 0, len(devices))
	for _, d := range devices {
		cfg.Rows = append(cfg.Rows, []string{
			d.Name,
			d.ID,
			d.Protocol,
			renderDeviceStatus(d),
			d.Description,
		})
	}
	return widgets.RenderTable(cfg)
}

// deviceStatusLevel classifies a device's status string. Only the exact
// "connected" token counts as healthy; every other value, including
// variants like "CONNECTED" or "online", classifies as an error. Unknown
// states fail toward error, never toward healthy.
func deviceStatusLevel(d gateway.DeviceRecord) widgets.StatusLevel {
	if d.Connected() {
		return widgets.StatusOK
	}
	return widgets.StatusCritical
}

// renderDeviceStatus renders the status cell: a classified dot plus the
// raw status token as reported by the gateway.
func renderDeviceStatus(d gateway.DeviceRecord) string {
	return widgets.RenderStatus(widgets.StatusConfig{
		Level:    deviceStatusLevel(d),
		Text:     d.Status,
		ShowIcon: true,
	})
}

// deviceSummary returns a "N/M connected" line for the table footer.
func deviceSummary(devices []gateway.DeviceRecord) string {
	connected := 0
	for _, d := range devices {
		if d.Connected() {
			connected++
		}
	}
	return styleMuted.Render(fmt.Sprintf("%d/%d connected", connected, len(devices)))
}
