package pullweights

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output.
// Use this when you want silent operation with no logging overhead.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ===== Client =====

// ClientOption configures a Client using the functional options pattern.
type ClientOption func(*Client)

// WithHTTPClient replaces the transport used for every request, API calls
// and blob transfers alike. The default is an *http.Client with a
// 120-second timeout that follows redirects.
func WithHTTPClient(hc HTTPClient) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = logger
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// ===== Transfer =====

// TransferOption configures a Transfer.
type TransferOption func(*Transfer)

// WithTransferLogger sets the logger for transfer debug output.
func WithTransferLogger(logger *slog.Logger) TransferOption {
	return func(t *Transfer) {
		t.log = logger
	}
}

// WithProgress registers a callback invoked after each completed file
// transfer. Transfers run strictly sequentially, so the callback is never
// called concurrently.
func WithProgress(fn func(TransferEvent)) TransferOption {
	return func(t *Transfer) {
		t.progress = fn
	}
}
