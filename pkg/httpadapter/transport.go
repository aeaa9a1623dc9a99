package httpadapter

import (
	"errors"
	"net/http"
	"time"

	"github.com/oshokin/plinter/pkg/message"
	"github.com/oshokin/plinter/pkg/printer"
)

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// Transport is an http.RoundTripper that prints every request and response passing through it.
type Transport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// printer renders the exchange.
	printer *printer.Printer
	// opts holds the adapter options.
	opts options
}

// NewTransport wraps next, which defaults to http.DefaultTransport, with trace printing.
func NewTransport(next http.RoundTripper, p *printer.Printer, opts ...Option) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}

	if p == nil {
		p = printer.New(nil)
	}

	return &Transport{
		next:    next,
		printer: p,
		opts:    newOptions(opts),
	}
}

// RoundTrip prints the request, forwards it and prints the response or the failure.
// At level BODY the response is buffered up to the body ceiling before RoundTrip
// returns; the caller still reads the complete, unchanged body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	cfg := t.printer.Config()

	if !cfg.LogsRequests() && !cfg.LogsResponses() {
		return t.next.RoundTrip(req)
	}

	var (
		exchangeID = t.opts.newExchangeID()
		outgoing   = req
		reqBody    *message.Body
	)

	if cfg.LogsBodies() && cfg.LogsRequests() && hasBody(req.Body) {
		// RoundTrippers must not modify the caller's request.
		outgoing = req.Clone(req.Context())
		reqBody, outgoing.Body = captureBody(req.Body, cfg.MaxBodySize(), req.ContentLength, req.Header)
	}

	traced := NewRequest(outgoing, exchangeID, reqBody)
	t.printer.PrintRequest(traced)

	// Record the start time to measure the duration of the request.
	startTime := time.Now()

	resp, err := t.next.RoundTrip(outgoing)

	elapsed := time.Since(startTime)

	if err != nil {
		t.printer.PrintFailure(traced, elapsed, err)

		return nil, err
	}

	var respBody *message.Body

	if cfg.LogsBodies() && cfg.LogsResponses() && hasBody(resp.Body) {
		respBody, resp.Body = captureBody(resp.Body, cfg.MaxBodySize(), resp.ContentLength, resp.Header)
	}

	described := resp
	if described.Request == nil {
		withRequest := *resp
		withRequest.Request = outgoing
		described = &withRequest
	}

	t.printer.PrintResponse(NewResponse(described, exchangeID, elapsed, respBody))

	return resp, nil
}
