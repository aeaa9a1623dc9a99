package output

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/plinter/internal/config"
	"github.com/oshokin/plinter/internal/logger"
	"github.com/oshokin/plinter/pkg/printer"
)

// ErrUnsupportedSink indicates a sink name NewSink cannot build.
var ErrUnsupportedSink = errors.New("unsupported sink")

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewSink builds the sink selected by cfg. Console output goes to stdout.
// The returned closer must be closed once tracing is done.
func NewSink(cfg *config.Config, stdout io.Writer) (printer.Sink, io.Closer, error) {
	switch cfg.Sink {
	case config.SinkConsole, "":
		return NewConsoleSink(stdout, ShouldColorize(cfg.Color, stdout)), nopCloser{}, nil
	case config.SinkFile:
		sink, err := NewFileSink(FileOptions{
			Path:       cfg.LogFile.Path,
			MaxSizeMB:  cfg.LogFile.MaxSizeMB,
			MaxBackups: cfg.LogFile.MaxBackups,
			MaxAgeDays: cfg.LogFile.MaxAgeDays,
			Compress:   cfg.LogFile.Compress,
		})
		if err != nil {
			return nil, nil, err
		}

		return sink, sink, nil
	case config.SinkLogger:
		return printer.NewZapSink(logger.Logger().Desugar(), zapcore.InfoLevel), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: '%s'", ErrUnsupportedSink, cfg.Sink)
	}
}
