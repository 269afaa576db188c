package httputil

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single outbound call. NASA POWER multi-year
// point queries routinely take tens of seconds.
const DefaultTimeout = 60 * time.Second

// NewClient returns an HTTP client with standard timeout configuration.
func NewClient() *http.Client {
	return NewClientWithTimeout(DefaultTimeout)
}

// NewClientWithTimeout returns an HTTP client that gives up after d.
func NewClientWithTimeout(d time.Duration) *http.Client {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &http.Client{
		Timeout: d,
	}
}
