// Package player keeps the advertising display in the state the gateway
// asks for. The gateway writes a JSON flag file; the player polls it and
// reconciles a looping video process against it, restarting playback when
// the process dies and switching to a prepared poster image when the
// display is toggled off.
package player

import (
	"encoding/json"
	"log/slog"
	"os"
)

// displayFlag mirrors the gateway's flag file, {"display": true}.
type displayFlag struct {
	Display *bool `json:"display"`
}

// ReadDisplayFlag reports whether the display should be on. The flag fails
// open: a missing, unreadable or malformed file, or one without a
// "display" key, all read as true, so a broken writer never blanks the
// screen.
func ReadDisplayFlag(path string, logger *slog.Logger) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("could not read display flag, defaulting on", "path", path, "error", err)
		}
		return true
	}

	var flag displayFlag
	if err := json.Unmarshal(data, &flag); err != nil {
		logger.Warn("malformed display flag, defaulting on", "path", path, "error", err)
		return true
	}
	if flag.Display == nil {
		return true
	}
	return *flag.Display
}
