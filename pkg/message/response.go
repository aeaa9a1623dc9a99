package message

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ResponseParams holds the fields used to construct a Response.
type ResponseParams struct {
	// ExchangeID optionally correlates a response with its request.
	ExchangeID string
	// URL is the URL of the request that produced the response.
	URL string
	// Protocol is the protocol version the response arrived with.
	Protocol Protocol
	// StatusCode is the numeric HTTP status.
	StatusCode int
	// StatusMessage is the reason phrase. When empty, the standard phrase is used.
	StatusMessage string
	// Elapsed is the time spent between sending the request and receiving the response.
	Elapsed time.Duration
	// Headers are the response headers in wire order.
	Headers Headers
	// Body is the response entity, or nil when there is none.
	Body *Body
}

// Response is an immutable snapshot of an intercepted HTTP response.
type Response struct {
	exchangeID    string
	url           string
	protocol      Protocol
	statusCode    int
	statusMessage string
	elapsed       time.Duration
	headers       Headers
	body          *Body
}

// NewResponse creates a Response snapshot from params.
func NewResponse(params ResponseParams) *Response {
	statusMessage := strings.TrimSpace(params.StatusMessage)
	if statusMessage == "" {
		statusMessage = http.StatusText(params.StatusCode)
	}

	return &Response{
		exchangeID:    params.ExchangeID,
		url:           params.URL,
		protocol:      params.Protocol,
		statusCode:    params.StatusCode,
		statusMessage: statusMessage,
		elapsed:       params.Elapsed,
		headers:       NewHeaders(params.Headers.entries...),
		body:          params.Body,
	}
}

// ExchangeID returns the correlation ID, or an empty string.
func (r *Response) ExchangeID() string {
	return r.exchangeID
}

// URL returns the URL of the originating request.
func (r *Response) URL() string {
	return r.url
}

// Protocol returns the protocol version.
func (r *Response) Protocol() Protocol {
	return r.protocol
}

// StatusCode returns the numeric status.
func (r *Response) StatusCode() int {
	return r.statusCode
}

// StatusMessage returns the reason phrase.
func (r *Response) StatusMessage() string {
	return r.statusMessage
}

// IsSuccessful reports whether the status code is in the 2xx range.
func (r *Response) IsSuccessful() bool {
	return r.statusCode >= http.StatusOK && r.statusCode < http.StatusMultipleChoices
}

// Elapsed returns the round-trip duration.
func (r *Response) Elapsed() time.Duration {
	return r.elapsed
}

// Headers returns the response headers.
func (r *Response) Headers() Headers {
	return r.headers
}

// Body returns the response entity, or nil.
func (r *Response) Body() *Body {
	return r.body
}

// PathSegments returns the non-empty path segments of the response URL,
// e.g. ["api", "v1", "users"] for "https://host/api/v1/users?page=2".
func (r *Response) PathSegments() []string {
	parsed, err := url.Parse(r.url)
	if err != nil {
		return nil
	}

	var segments []string

	for segment := range strings.SplitSeq(parsed.EscapedPath(), "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	return segments
}
