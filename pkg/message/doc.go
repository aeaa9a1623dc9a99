// Package message defines the canonical, client-independent representation
// of an intercepted HTTP exchange: requests, responses, ordered headers and
// buffered bodies. Values are immutable once constructed, so a single message
// can be rendered any number of times and shared between goroutines.
package message
