package message

import (
	"iter"
	"strings"
)

// Header is a single header field as it appeared on the wire.
type Header struct {
	// Name is the header name in its original case.
	Name string
	// Value is the raw header value.
	Value string
}

// Headers is an ordered, immutable list of header fields.
// Duplicates are kept in encounter order; lookups ignore name case.
type Headers struct {
	entries []Header
}

// NewHeaders creates Headers from the given fields, preserving their order.
// The input slice is copied.
func NewHeaders(fields ...Header) Headers {
	if len(fields) == 0 {
		return Headers{}
	}

	entries := make([]Header, len(fields))
	copy(entries, fields)

	return Headers{entries: entries}
}

// Len returns the number of header fields, counting duplicates.
func (h Headers) Len() int {
	return len(h.entries)
}

// At returns the header field at position i.
func (h Headers) At(i int) Header {
	return h.entries[i]
}

// All iterates over header fields in encounter order.
func (h Headers) All() iter.Seq[Header] {
	return func(yield func(Header) bool) {
		for _, entry := range h.entries {
			if !yield(entry) {
				return
			}
		}
	}
}

// Get returns the first value of the named header.
func (h Headers) Get(name string) (string, bool) {
	for _, entry := range h.entries {
		if strings.EqualFold(entry.Name, name) {
			return entry.Value, true
		}
	}

	return "", false
}

// Values returns every value of the named header in encounter order.
func (h Headers) Values(name string) []string {
	var values []string

	for _, entry := range h.entries {
		if strings.EqualFold(entry.Name, name) {
			values = append(values, entry.Value)
		}
	}

	return values
}

// Slice returns a copy of the header fields.
func (h Headers) Slice() []Header {
	if len(h.entries) == 0 {
		return nil
	}

	result := make([]Header, len(h.entries))
	copy(result, h.entries)

	return result
}
