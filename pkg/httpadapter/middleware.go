package httpadapter

import (
	"bytes"
	"net/http"
	"time"

	"github.com/oshokin/plinter/pkg/message"
	"github.com/oshokin/plinter/pkg/printer"
)

// Middleware returns server middleware that prints every request a handler
// receives and the response it writes.
func Middleware(p *printer.Printer, opts ...Option) func(http.Handler) http.Handler {
	if p == nil {
		p = printer.New(nil)
	}

	settings := newOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cfg := p.Config()

			if !cfg.LogsRequests() && !cfg.LogsResponses() {
				next.ServeHTTP(w, r)

				return
			}

			var (
				exchangeID = settings.newExchangeID()
				reqBody    *message.Body
			)

			if cfg.LogsBodies() && cfg.LogsRequests() && hasBody(r.Body) {
				reqBody, r.Body = captureBody(r.Body, cfg.MaxBodySize(), r.ContentLength, r.Header)
			}

			p.PrintRequest(NewRequest(r, exchangeID, reqBody))

			recorder := newResponseRecorder(w, cfg.MaxBodySize(), cfg.LogsBodies() && cfg.LogsResponses())

			startTime := time.Now()

			next.ServeHTTP(recorder, r)

			p.PrintResponse(recorder.response(r, exchangeID, time.Since(startTime)))
		})
	}
}

// responseRecorder passes writes through while keeping the status, a header
// snapshot and a bounded copy of the body.
type responseRecorder struct {
	http.ResponseWriter

	status      int
	header      http.Header
	wroteHeader bool
	written     int64
	capture     bool
	limit       int64
	buf         bytes.Buffer
}

func newResponseRecorder(w http.ResponseWriter, limit int64, capture bool) *responseRecorder {
	return &responseRecorder{
		ResponseWriter: w,
		status:         http.StatusOK,
		capture:        capture,
		limit:          limit,
	}
}

func (r *responseRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.header = r.ResponseWriter.Header().Clone()
		r.wroteHeader = true
	}

	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}

	n, err := r.ResponseWriter.Write(data)
	r.written += int64(n)

	if r.capture {
		if remaining := r.limit + 1 - int64(r.buf.Len()); remaining > 0 {
			r.buf.Write(data[:min(int64(n), remaining)])
		}
	}

	return n, err
}

// Flush forwards to the wrapped writer when it supports flushing.
func (r *responseRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *responseRecorder) response(req *http.Request, exchangeID string, elapsed time.Duration) *message.Response {
	header := r.header
	if header == nil {
		header = r.ResponseWriter.Header()
	}

	var b *message.Body

	if r.capture && r.buf.Len() > 0 {
		contentType, contentEncoding := contentHeaders(header)

		if int64(r.buf.Len()) > r.limit {
			b = message.NewTruncatedBody(r.buf.Bytes(), r.written, contentType, contentEncoding)
		} else {
			b = message.NewBody(r.buf.Bytes(), contentType, contentEncoding)
		}
	}

	return message.NewResponse(message.ResponseParams{
		ExchangeID: exchangeID,
		URL:        requestURL(req),
		Protocol:   protocolOf(req.ProtoMajor, req.ProtoMinor),
		StatusCode: r.status,
		Elapsed:    elapsed,
		Headers:    convertHeaders(header),
		Body:       b,
	})
}
