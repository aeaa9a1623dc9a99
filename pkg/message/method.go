package message

import (
	"errors"
	"fmt"
	"strings"
)

// Method is an HTTP request method.
type Method string

// Supported HTTP methods.
const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodConnect Method = "CONNECT"
)

// ErrUnknownMethod indicates that a method name is not a recognized HTTP verb.
var ErrUnknownMethod = errors.New("unknown HTTP method")

//nolint:gochecknoglobals // Immutable lookup table.
var knownMethods = map[Method]struct{}{
	MethodGet:     {},
	MethodHead:    {},
	MethodPost:    {},
	MethodPut:     {},
	MethodPatch:   {},
	MethodDelete:  {},
	MethodOptions: {},
	MethodTrace:   {},
	MethodConnect: {},
}

// ParseMethod converts a method name into a Method.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseMethod(name string) (Method, error) {
	method := Method(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := knownMethods[method]; !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownMethod, name)
	}

	return method, nil
}

// String returns the method name.
func (m Method) String() string {
	return string(m)
}
