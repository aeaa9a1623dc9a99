package message

// RequestParams holds the fields used to construct a Request.
type RequestParams struct {
	// ExchangeID optionally correlates a request with its response.
	ExchangeID string
	// Method is the request method.
	Method Method
	// URL is the full request URL.
	URL string
	// Protocol is the protocol version the request is sent with.
	Protocol Protocol
	// Headers are the request headers in wire order.
	Headers Headers
	// Body is the request entity, or nil when there is none.
	Body *Body
}

// Request is an immutable snapshot of an intercepted HTTP request.
type Request struct {
	exchangeID string
	method     Method
	url        string
	protocol   Protocol
	headers    Headers
	body       *Body
}

// NewRequest creates a Request snapshot from params.
func NewRequest(params RequestParams) *Request {
	return &Request{
		exchangeID: params.ExchangeID,
		method:     params.Method,
		url:        params.URL,
		protocol:   params.Protocol,
		headers:    NewHeaders(params.Headers.entries...),
		body:       params.Body,
	}
}

// ExchangeID returns the correlation ID, or an empty string.
func (r *Request) ExchangeID() string {
	return r.exchangeID
}

// Method returns the request method.
func (r *Request) Method() Method {
	return r.method
}

// URL returns the request URL.
func (r *Request) URL() string {
	return r.url
}

// Protocol returns the protocol version.
func (r *Request) Protocol() Protocol {
	return r.protocol
}

// Headers returns the request headers.
func (r *Request) Headers() Headers {
	return r.headers
}

// Body returns the request entity, or nil.
func (r *Request) Body() *Body {
	return r.body
}
