package gateway

import (
	"context"
	"time"
)

// Feed is one polled gateway resource. The watch daemon drives every feed on
// its own schedule and caches whatever Collect returns under Name.
type Feed interface {
	// Name is the cache key the feed's payload is stored under.
	Name() string

	// Description is a short human-readable summary for startup logs.
	Description() string

	// Interval is the poll period. Zero means collect once at startup and
	// never again.
	Interval() time.Duration

	// Collect fetches the feed's current payload.
	Collect(ctx context.Context) (any, error)
}

// SensorFeed polls the scalar sensor state on a fixed period.
type SensorFeed struct {
	client   *Client
	interval time.Duration
}

var _ Feed = (*SensorFeed)(nil)

// NewSensorFeed creates a sensor feed polling at interval.
func NewSensorFeed(client *Client, interval time.Duration) *SensorFeed {
	return &SensorFeed{client: client, interval: interval}
}

func (f *SensorFeed) Name() string        { return FeedSensors }
func (f *SensorFeed) Description() string { return "scalar sensor and status readings" }

func (f *SensorFeed) Interval() time.Duration { return f.interval }

func (f *SensorFeed) Collect(ctx context.Context) (any, error) {
	return f.client.FetchSensors(ctx)
}

// DeviceFeed fetches the device list. The gateway's device inventory changes
// rarely, so the default interval is zero: one fetch at startup, matching the
// panel's own load behavior.
type DeviceFeed struct {
	client   *Client
	interval time.Duration
}

var _ Feed = (*DeviceFeed)(nil)

// NewDeviceFeed creates a device feed. interval zero means fetch once.
func NewDeviceFeed(client *Client, interval time.Duration) *DeviceFeed {
	return &DeviceFeed{client: client, interval: interval}
}

func (f *DeviceFeed) Name() string        { return FeedDevices }
func (f *DeviceFeed) Description() string { return "device inventory and link status" }

func (f *DeviceFeed) Interval() time.Duration { return f.interval }

func (f *DeviceFeed) Collect(ctx context.Context) (any, error) {
	return f.client.FetchDevices(ctx)
}
