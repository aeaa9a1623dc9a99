package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/plinter/internal/config"
	"github.com/oshokin/plinter/internal/logger"
	"github.com/oshokin/plinter/internal/output"
	"github.com/oshokin/plinter/pkg/printer"
)

// NewPrinter builds the trace printer and its sink from a validated configuration.
// The returned closer releases the sink.
func NewPrinter(cfg *config.Config, stdout io.Writer) (*printer.Printer, io.Closer, error) {
	sink, closer, err := output.NewSink(cfg, stdout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace sink: %w", err)
	}

	printerConfig, err := printer.NewConfig(append(cfg.PrinterOptions(), printer.WithSink(sink))...)
	if err != nil {
		_ = closer.Close()

		return nil, nil, fmt.Errorf("failed to configure printer: %w", err)
	}

	return printer.New(printerConfig), closer, nil
}

// ExecuteRootCommand is the entry point for tracing.
// It expands the arguments into URLs, sends a request to each of them through
// the logging transport and reports how many exchanges failed.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) {
	failed, total, err := runTrace(ctx, cfg, args, stdout)
	if err != nil {
		logger.Fatalf(ctx, "%v", err)
	}

	if failed > 0 {
		logger.Warnf(ctx, "%d of %d request(s) failed", failed, total)
	}
}

// runTrace returns instead of exiting, so the sink is closed on every path.
func runTrace(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) (int, int, error) {
	urls, err := ExpandURLs(args)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to collect URLs: %w", err)
	}

	p, closer, err := NewPrinter(cfg, stdout)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to initialize printer: %w", err)
	}

	defer func() {
		if closeErr := closer.Close(); closeErr != nil {
			logger.Errorf(ctx, "Failed to close trace sink: %v", closeErr)
		}
	}()

	tracer, err := NewTracer(cfg, p, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to initialize HTTP client: %w", err)
	}

	// The console sink owns the terminal; other sinks leave it free for a progress bar.
	if cfg.Sink != config.SinkConsole && !logger.IsDebugLevel() {
		tracer.SetProgressWriter(os.Stderr)
	}

	logger.DebugKV(ctx, "Tracing URLs", "count", len(urls), "level", cfg.ParsedLevel.String())

	return tracer.TraceAll(ctx, urls), len(urls), nil
}
