//go:build linux

package banner

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// getSystemUptime returns the system uptime on Linux by reading /proc/uptime.
func getSystemUptime() time.Duration {
	data, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0
	}
	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
