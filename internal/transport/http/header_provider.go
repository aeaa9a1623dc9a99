package http

//go:generate $MOCKGEN -source=header_provider.go -destination=mocks/header_provider_mock.go

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HeaderProvider supplies headers that every outgoing request must carry.
type HeaderProvider interface {
	// Headers returns the headers to add. Callers must not modify the result.
	Headers() http.Header
}

// Static error definitions for better error handling.
var (
	// ErrInvalidHeader indicates a header flag that is not in "Name: value" form.
	ErrInvalidHeader = errors.New("invalid header, expected 'Name: value'")
)

// StaticHeaderProvider always returns the same headers.
type StaticHeaderProvider struct {
	// headers holds the canonicalized headers.
	headers http.Header
}

// NewStaticHeaderProvider creates a provider for headers. A User-Agent is
// added from userAgent, or DefaultUserAgent, unless headers already has one.
func NewStaticHeaderProvider(userAgent string, headers http.Header) *StaticHeaderProvider {
	result := headers.Clone()
	if result == nil {
		result = make(http.Header)
	}

	if result.Get(userAgentHeader) == "" {
		userAgent = strings.TrimSpace(userAgent)
		if userAgent == "" {
			userAgent = DefaultUserAgent
		}

		result.Set(userAgentHeader, userAgent)
	}

	return &StaticHeaderProvider{headers: result}
}

// Headers returns the configured headers.
func (p *StaticHeaderProvider) Headers() http.Header {
	return p.headers
}

// ParseHeaders parses "Name: value" lines as given on the command line.
// Repeated names keep all their values in order.
func ParseHeaders(lines []string) (http.Header, error) {
	headers := make(http.Header, len(lines))

	for _, line := range lines {
		name, value, found := strings.Cut(line, ":")

		name = strings.TrimSpace(name)
		if !found || name == "" || strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidHeader, line)
		}

		headers.Add(name, strings.TrimSpace(value))
	}

	return headers, nil
}
