// Package gateway is the HTTP client for the NuBitek gateway's local status
// API. It exposes the two volatile reads the panel polls, the scalar sensor
// map and the device list, plus the shared footer partial, and maps failures
// onto two error kinds: TransportError for a failed exchange, DecodeError for
// a body that would not parse. The client never retries; the panel's fixed
// poll schedule is the retry mechanism.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// sensorsPath serves the flat metric map.
	sensorsPath = "/sensors"

	// devicesPath serves the ordered device records.
	devicesPath = "/device-list"

	// footerPath serves the shared footer/navigation partial.
	footerPath = "/partials/footer.html"

	// userAgent identifies gatepulse in request headers.
	userAgent = "gatepulse/0.1.0"

	// maxResponseBytes limits the response body size to prevent unbounded reads.
	maxResponseBytes = 1 << 20 // 1 MiB
)

// Cache keys under which the watch daemon stores feed payloads.
const (
	FeedSensors = "sensors"
	FeedDevices = "devices"
)

// Client fetches panel state from the gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client for the gateway at baseURL. A zero timeout
// imposes no client-side deadline, leaving requests on the platform's
// connection semantics. If logger is nil, a no-op logger is used.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the gateway base URL the client was built with, with any
// trailing slash removed.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchSensors retrieves the current scalar sensor state. Key order in the
// returned snapshot matches the gateway's JSON exactly.
func (c *Client) FetchSensors(ctx context.Context) (*SensorSnapshot, error) {
	body, err := c.get(ctx, "sensors", sensorsPath, "application/json")
	if err != nil {
		return nil, err
	}

	var snap SensorSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, &DecodeError{Op: "sensors", Err: err}
	}

	c.logger.Debug("fetched sensor snapshot", "readings", snap.Len())
	return &snap, nil
}

// FetchDevices retrieves the device list in gateway order. An empty list is a
// valid result, not an error.
func (c *Client) FetchDevices(ctx context.Context) ([]DeviceRecord, error) {
	body, err := c.get(ctx, "devices", devicesPath, "application/json")
	if err != nil {
		return nil, err
	}

	var devices []DeviceRecord
	if err := json.Unmarshal(body, &devices); err != nil {
		return nil, &DecodeError{Op: "devices", Err: err}
	}

	c.logger.Debug("fetched device list", "devices", len(devices))
	return devices, nil
}

// FetchFooter retrieves the footer navigation partial as raw HTML.
func (c *Client) FetchFooter(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "footer", footerPath, "text/html")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// get performs one GET against the gateway and returns the body of a 200
// response. Any other outcome is a *TransportError.
func (c *Client) get(ctx context.Context, op, path, accept string) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	c.logger.Debug("fetching gateway state", "op", op, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return body, nil
}
