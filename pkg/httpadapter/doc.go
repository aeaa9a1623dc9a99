// Package httpadapter connects net/http clients and servers to a printer.Printer.
//
// NewTransport wraps an http.RoundTripper and Middleware wraps an http.Handler.
// Both translate the live exchange into canonical messages, buffering at most
// the configured body ceiling plus one byte, and hand the body stream on
// unchanged to whoever reads it next.
package httpadapter
