package http

import (
	"net/http"
)

// HeaderInjector is a custom http.RoundTripper that adds provided headers to requests lacking them.
// Headers the request already carries are left alone.
type HeaderInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// headerProvider provides the headers to inject.
	headerProvider HeaderProvider
}

// NewHeaderInjector creates and returns a new instance of HeaderInjector.
func NewHeaderInjector(next http.RoundTripper, headerProvider HeaderProvider) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &HeaderInjector{
		next:           next,
		headerProvider: headerProvider,
	}
}

// RoundTrip executes a single HTTP transaction with the missing headers added.
// The caller's request is cloned before it is changed.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	var outgoing *http.Request

	for name, values := range t.headerProvider.Headers() {
		if req.Header.Get(name) != "" {
			continue
		}

		if outgoing == nil {
			outgoing = req.Clone(req.Context())
		}

		outgoing.Header.Del(name)

		for _, value := range values {
			outgoing.Header.Add(name, value)
		}
	}

	if outgoing == nil {
		outgoing = req
	}

	return t.next.RoundTrip(outgoing)
}
