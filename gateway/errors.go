package gateway

import "fmt"

// TransportError represents a failed exchange with the gateway: a non-success
// HTTP status or a network-level failure before a body could be parsed.
type TransportError struct {
	Op         string // which fetch failed: "sensors", "devices" or "footer"
	StatusCode int    // zero when no response was received
	Status     string
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("gateway %s: unexpected status %s (body: %s)", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("gateway %s: unexpected status %s", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError represents a response body that could not be parsed into the
// expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gateway %s: parsing response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
