package upstream

import (
	"context"
	"errors"
	"net"
)

// Network-level errors surfaced to the proxy handlers as 502.
// Upstream responses with non-200 statuses are NOT errors; they are passed
// through verbatim.
var (
	// ErrTimeout indicates the upstream did not answer within the request
	// timeout.
	ErrTimeout = errors.New("upstream timeout")

	// ErrUnreachable indicates a connection-level failure talking to the
	// upstream.
	ErrUnreachable = errors.New("upstream unreachable")
)

// errorClass labels network failures for metrics.
type errorClass string

const (
	classTimeout     errorClass = "timeout"
	classUnreachable errorClass = "unreachable"
)

// classify separates timeouts from other network failures.
func classify(err error) errorClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return classTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return classTimeout
	}
	return classUnreachable
}
