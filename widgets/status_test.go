package widgets

import (
	"strings"
	"testing"
)

func TestRenderStatus_WithIcon(t *testing.T) {
	result := RenderStatus(StatusConfig{
		Level:    StatusOK,
		Text:     "connected",
		ShowIcon: true,
	})

	if !strings.Contains(result, "●") {
		t.Errorf("expected dot icon, got: %q", result)
	}
	if !strings.Contains(result, "connected") {
		t.Errorf("expected text, got: %q", result)
	}
}

func TestRenderStatus_IconOnly(t *testing.T) {
	result := RenderStatus(StatusConfig{
		Level:    StatusCritical,
		ShowIcon: true,
	})

	if !strings.Contains(result, "●") {
		t.Errorf("expected dot icon, got: %q", result)
	}
	if strings.Contains(result, " ") {
		t.Errorf("expected no trailing space without text, got: %q", result)
	}
}

func TestRenderStatus_TextOnly(t *testing.T) {
	result := RenderStatus(StatusConfig{
		Level: StatusWarning,
		Text:  "stale",
	})

	if !strings.Contains(result, "stale") {
		t.Errorf("expected text, got: %q", result)
	}
	if strings.Contains(result, "●") {
		t.Errorf("expected no icon, got: %q", result)
	}
}

func TestRenderStatus_DistinctIcons(t *testing.T) {
	unknown := RenderStatus(StatusConfig{Level: StatusUnknown, ShowIcon: true})
	pending := RenderStatus(StatusConfig{Level: StatusPending, ShowIcon: true})

	if !strings.Contains(unknown, "○") {
		t.Errorf("expected outline dot for unknown, got: %q", unknown)
	}
	if !strings.Contains(pending, "◌") {
		t.Errorf("expected dotted circle for pending, got: %q", pending)
	}
}
