package printer

//go:generate $MOCKGEN -source=sink.go -destination=mocks/sink_mock.go

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink consumes rendered lines, one call per line unless the printer is built with WithBlockSink.
// The printer never serializes calls, so a Sink shared between goroutines must do it itself.
type Sink interface {
	// Log receives one finished line, or a joined block, without a trailing newline.
	Log(line string)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(line string)

// Log calls f(line).
func (f SinkFunc) Log(line string) {
	f(line)
}

type discardSink struct{}

func (discardSink) Log(string) {}

// Discard returns a Sink that drops every line.
func Discard() Sink {
	return discardSink{}
}

type zapSink struct {
	logger *zap.Logger
	level  zapcore.Level
}

// NewZapSink returns a Sink that writes every line as a zap entry at the given level.
func NewZapSink(logger *zap.Logger, level zapcore.Level) Sink {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &zapSink{
		logger: logger,
		level:  level,
	}
}

func (s *zapSink) Log(line string) {
	if entry := s.logger.Check(s.level, line); entry != nil {
		entry.Write()
	}
}

type writerSink struct {
	w io.Writer
}

// NewWriterSink returns a Sink that writes every line followed by a newline to w.
// Write errors are dropped.
func NewWriterSink(w io.Writer) Sink {
	if w == nil {
		w = io.Discard
	}

	return &writerSink{w: w}
}

func (s *writerSink) Log(line string) {
	_, _ = io.WriteString(s.w, line+"\n")
}
