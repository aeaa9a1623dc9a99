package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/plinter/internal/config"
	"github.com/oshokin/plinter/internal/logger"
	transport_http "github.com/oshokin/plinter/internal/transport/http"
	"github.com/oshokin/plinter/internal/utils"
	"github.com/oshokin/plinter/pkg/httpadapter"
	"github.com/oshokin/plinter/pkg/message"
	"github.com/oshokin/plinter/pkg/printer"
)

// Static error definitions for better error handling.
var (
	// ErrInvalidURL indicates an argument that is neither a URL nor a URL list file.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrNoURLs indicates that the arguments expanded to nothing.
	ErrNoURLs = errors.New("no URLs to trace")
)

const defaultScheme = "http://"

// Tracer sends requests through the logging transport so that every exchange is printed.
type Tracer struct {
	client *http.Client
	method message.Method
	data   string
	// progress receives a progress bar while several URLs are traced. Nil disables it.
	progress io.Writer
}

// NewTracer builds a tracer from a validated configuration. The client chain is
// header injection first, then the logging transport, then next.
// A nil next means http.DefaultTransport.
func NewTracer(cfg *config.Config, p *printer.Printer, next http.RoundTripper) (*Tracer, error) {
	headers, err := transport_http.ParseHeaders(cfg.Headers)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request headers: %w", err)
	}

	if next == nil {
		next = http.DefaultTransport
	}

	var adapterOptions []httpadapter.Option
	if !cfg.ExchangeIDs {
		adapterOptions = append(adapterOptions, httpadapter.WithExchangeIDGenerator(nil))
	}

	headerProvider := transport_http.NewStaticHeaderProvider(cfg.UserAgent, headers)
	logging := httpadapter.NewTransport(next, p, adapterOptions...)

	return &Tracer{
		client: &http.Client{
			Transport: transport_http.NewHeaderInjector(logging, headerProvider),
			Timeout:   cfg.ParsedTimeout,
		},
		method: cfg.ParsedMethod,
		data:   cfg.Data,
	}, nil
}

// Trace sends one request to rawURL and drains the response so its body is captured.
func (t *Tracer) Trace(ctx context.Context, rawURL string) error {
	ctx = logger.WithKV(ctx, "url", rawURL, "method", t.method.String())

	var payload io.Reader
	if t.data != "" {
		payload = strings.NewReader(t.data)
	}

	req, err := http.NewRequestWithContext(ctx, t.method.String(), rawURL, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck // Body is fully drained below.

	read, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	logger.DebugKV(ctx, "Request completed", "status", resp.StatusCode, "bytes", read)

	return nil
}

// SetProgressWriter enables a progress bar on w for multi-URL runs.
func (t *Tracer) SetProgressWriter(w io.Writer) {
	t.progress = w
}

// TraceAll traces every URL in order and returns how many of them failed.
func (t *Tracer) TraceAll(ctx context.Context, urls []string) int {
	var (
		failed int
		bar    *progressbar.ProgressBar
	)

	if t.progress != nil && len(urls) > 1 {
		bar = progressbar.NewOptions(len(urls),
			progressbar.OptionSetWriter(t.progress),
			progressbar.OptionSetDescription("Tracing"),
			progressbar.OptionShowCount())

		defer bar.Finish() //nolint:errcheck // Progress output is best effort.
	}

	for i, rawURL := range urls {
		if ctx.Err() != nil {
			skipped := len(urls) - i
			logger.Warnf(ctx, "Tracing interrupted, %d URL(s) skipped", skipped)

			return failed + skipped
		}

		if err := t.Trace(ctx, rawURL); err != nil {
			logger.Errorf(ctx, "Failed to trace '%s': %v", rawURL, err)

			failed++
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return failed
}

// ExpandURLs turns command arguments into URLs. An argument naming an existing file
// is read as a list of URLs, one per line, with '#' comments. URLs without a scheme get http://.
// Duplicates are dropped, keeping the first occurrence.
func ExpandURLs(args []string) ([]string, error) {
	var candidates []string

	for _, arg := range args {
		arg = strings.TrimSpace(arg)

		// Arguments that cannot be inspected as files are taken as URLs.
		isFile, err := utils.IsFileExist(arg)
		if err != nil || !isFile {
			candidates = append(candidates, arg)

			continue
		}

		lines, err := utils.ReadUniqueLinesFromFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read URLs from '%s': %w", arg, err)
		}

		candidates = append(candidates, lines...)
	}

	urls := make([]string, 0, len(candidates))

	for _, candidate := range utils.UniqueNonEmpty(candidates) {
		normalized, err := normalizeURL(candidate)
		if err != nil {
			return nil, err
		}

		urls = append(urls, normalized)
	}

	urls = utils.UniqueNonEmpty(urls)
	if len(urls) == 0 {
		return nil, ErrNoURLs
	}

	return urls, nil
}

func normalizeURL(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = defaultScheme + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidURL, raw)
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidURL, raw)
	}

	return parsed.String(), nil
}
