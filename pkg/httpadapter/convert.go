package httpadapter

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/oshokin/plinter/pkg/message"
)

// NewRequest translates req into a canonical request. b is the buffered body, or nil.
func NewRequest(req *http.Request, exchangeID string, b *message.Body) *message.Request {
	// Extension methods are kept as sent.
	method := message.Method(strings.ToUpper(req.Method))
	if method == "" {
		method = message.MethodGet
	}

	return message.NewRequest(message.RequestParams{
		ExchangeID: exchangeID,
		Method:     method,
		URL:        requestURL(req),
		Protocol:   protocolOf(req.ProtoMajor, req.ProtoMinor),
		Headers:    convertHeaders(req.Header),
		Body:       b,
	})
}

// NewResponse translates resp into a canonical response. b is the buffered body, or nil.
func NewResponse(resp *http.Response, exchangeID string, elapsed time.Duration, b *message.Body) *message.Response {
	var url string
	if resp.Request != nil {
		url = requestURL(resp.Request)
	}

	return message.NewResponse(message.ResponseParams{
		ExchangeID:    exchangeID,
		URL:           url,
		Protocol:      protocolOf(resp.ProtoMajor, resp.ProtoMinor),
		StatusCode:    resp.StatusCode,
		StatusMessage: statusMessage(resp.Status, resp.StatusCode),
		Elapsed:       elapsed,
		Headers:       convertHeaders(resp.Header),
		Body:          b,
	})
}

// convertHeaders flattens header into fields ordered by name.
// Values of a repeated header keep their order.
func convertHeaders(header http.Header) message.Headers {
	if len(header) == 0 {
		return message.Headers{}
	}

	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}

	slices.Sort(names)

	fields := make([]message.Header, 0, len(names))

	for _, name := range names {
		for _, value := range header[name] {
			fields = append(fields, message.Header{Name: name, Value: value})
		}
	}

	return message.NewHeaders(fields...)
}

// requestURL returns the absolute URL of req. Server-side requests carry only
// the path, so the scheme and host are restored from the connection.
func requestURL(req *http.Request) string {
	if req.URL == nil {
		return ""
	}

	if req.URL.IsAbs() {
		return req.URL.String()
	}

	restored := *req.URL

	restored.Scheme = "http"
	if req.TLS != nil {
		restored.Scheme = "https"
	}

	if restored.Host == "" {
		restored.Host = req.Host
	}

	return restored.String()
}

// protocolOf maps a protocol version; net/http leaves it zero on requests
// built by hand, and those are sent as HTTP/1.1.
func protocolOf(major, minor int) message.Protocol {
	if major == 0 {
		return message.ProtocolHTTP11
	}

	return message.ProtocolFromVersion(major, minor)
}

// statusMessage strips the code from a status line such as "200 OK".
func statusMessage(status string, code int) string {
	return strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
}

func contentHeaders(header http.Header) (string, string) {
	return header.Get("Content-Type"), header.Get("Content-Encoding")
}
