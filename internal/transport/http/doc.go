// Package http provides outbound HTTP helpers for the CLI:
// defaults for the client and a RoundTripper that adds configured headers to every request.
package http
