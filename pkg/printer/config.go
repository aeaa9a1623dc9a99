package printer

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/oshokin/plinter/pkg/body"
)

const (
	// DefaultMaxLineLength is the default total width of a rendered line.
	DefaultMaxLineLength = 110
	// MinMaxLineLength is the narrowest width that still fits a block title.
	MinMaxLineLength = 40
)

// Static error definitions for better error handling.
var (
	// ErrInvalidConfig is wrapped by every configuration validation error.
	ErrInvalidConfig = errors.New("invalid printer configuration")
	// ErrInvalidLevel indicates an unknown verbosity level.
	ErrInvalidLevel = fmt.Errorf("%w: unknown level", ErrInvalidConfig)
	// ErrInvalidOutput indicates an unknown output mode.
	ErrInvalidOutput = fmt.Errorf("%w: unknown output", ErrInvalidConfig)
	// ErrInvalidMaxLineLength indicates a line length that cannot fit a frame.
	ErrInvalidMaxLineLength = fmt.Errorf("%w: max line length is too small", ErrInvalidConfig)
	// ErrInvalidMaxBodySize indicates a non-positive body size ceiling.
	ErrInvalidMaxBodySize = fmt.Errorf("%w: max body size must be positive", ErrInvalidConfig)
	// ErrInvalidProbeWindow indicates a non-positive binary probe window.
	ErrInvalidProbeWindow = fmt.Errorf("%w: probe window must be positive", ErrInvalidConfig)
	// ErrNilSink indicates that a nil sink was supplied.
	ErrNilSink = fmt.Errorf("%w: sink must not be nil", ErrInvalidConfig)
)

// Config is an immutable printer configuration built by NewConfig.
type Config struct {
	// level is the verbosity level.
	level Level
	// output selects the rendered side of an exchange.
	output Output
	// maxLineLength is the total width of every framed line.
	maxLineLength int
	// maxBodySize is the body ceiling in bytes, zero when unset.
	maxBodySize int64
	// probeWindow is the binary detection window, zero when unset.
	probeWindow int
	// allowControlChars relaxes binary detection.
	allowControlChars bool
	// prettyPrint re-indents JSON, XML and form bodies.
	prettyPrint bool
	// headerFilter holds lower-cased names of redacted headers.
	headerFilter map[string]struct{}
	// sink receives rendered lines.
	sink Sink
	// blockSink sends a whole block to the sink as one joined entry.
	blockSink bool
}

// Option configures a Config under construction.
// Options only apply inside NewConfig, so a built Config never changes.
type Option interface {
	apply(c *Config) error
}

type optionFunc func(c *Config) error

func (f optionFunc) apply(c *Config) error {
	return f(c)
}

// NewConfig builds a validated configuration. Without options it renders
// BASIC summaries of both sides at DefaultMaxLineLength into Discard.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// DefaultConfig returns the configuration NewConfig produces without options.
func DefaultConfig() *Config {
	return &Config{
		level:         LevelBasic,
		output:        OutputBoth,
		maxLineLength: DefaultMaxLineLength,
		headerFilter:  make(map[string]struct{}),
		sink:          Discard(),
	}
}

// WithLevel sets the verbosity level.
func WithLevel(level Level) Option {
	return optionFunc(func(c *Config) error {
		if !level.valid() {
			return fmt.Errorf("%w: %s", ErrInvalidLevel, level)
		}

		c.level = level

		return nil
	})
}

// WithOutput selects which side of an exchange is rendered.
func WithOutput(output Output) Option {
	return optionFunc(func(c *Config) error {
		if !output.valid() {
			return fmt.Errorf("%w: %s", ErrInvalidOutput, output)
		}

		c.output = output

		return nil
	})
}

// WithMaxLineLength sets the total width of rendered lines, borders included.
func WithMaxLineLength(length int) Option {
	return optionFunc(func(c *Config) error {
		if length < MinMaxLineLength {
			return fmt.Errorf("%w: got %d, need at least %d", ErrInvalidMaxLineLength, length, MinMaxLineLength)
		}

		c.maxLineLength = length

		return nil
	})
}

// WithMaxBodySize sets the body size ceiling in bytes.
// Values above body.HardMaxBodySize are clamped to it.
func WithMaxBodySize(size int64) Option {
	return optionFunc(func(c *Config) error {
		if size <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidMaxBodySize, size)
		}

		c.maxBodySize = min(size, body.HardMaxBodySize)

		return nil
	})
}

// WithProbeWindow sets how many leading bytes binary detection inspects.
func WithProbeWindow(window int) Option {
	return optionFunc(func(c *Config) error {
		if window <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidProbeWindow, window)
		}

		c.probeWindow = window

		return nil
	})
}

// WithAllowControlChars lets bodies with non-whitespace control characters render as text.
func WithAllowControlChars(allow bool) Option {
	return optionFunc(func(c *Config) error {
		c.allowControlChars = allow

		return nil
	})
}

// WithPrettyPrint enables re-indentation of JSON, XML and form bodies.
func WithPrettyPrint(enabled bool) Option {
	return optionFunc(func(c *Config) error {
		c.prettyPrint = enabled

		return nil
	})
}

// WithHeaderFilter adds header names whose values are redacted.
// Names are matched case-insensitively; blank names are ignored.
func WithHeaderFilter(names ...string) Option {
	return optionFunc(func(c *Config) error {
		for _, name := range names {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}

			c.headerFilter[name] = struct{}{}
		}

		return nil
	})
}

// WithSink sets the destination of rendered lines.
func WithSink(sink Sink) Option {
	return optionFunc(func(c *Config) error {
		if sink == nil {
			return ErrNilSink
		}

		c.sink = sink

		return nil
	})
}

// WithBlockSink makes the printer call the sink once per block, with the
// lines joined by newlines, instead of once per line.
func WithBlockSink(enabled bool) Option {
	return optionFunc(func(c *Config) error {
		c.blockSink = enabled

		return nil
	})
}

// Level returns the verbosity level.
func (c *Config) Level() Level {
	return c.level
}

// Output returns the output mode.
func (c *Config) Output() Output {
	return c.output
}

// MaxLineLength returns the total line width.
func (c *Config) MaxLineLength() int {
	return c.maxLineLength
}

// MaxBodySize returns the effective body size ceiling.
func (c *Config) MaxBodySize() int64 {
	return c.BodyOptions().Limit()
}

// PrettyPrint reports whether structured bodies are re-indented.
func (c *Config) PrettyPrint() bool {
	return c.prettyPrint
}

// BlockSink reports whether whole blocks are sent to the sink as one entry.
func (c *Config) BlockSink() bool {
	return c.blockSink
}

// Sink returns the line destination.
func (c *Config) Sink() Sink {
	return c.sink
}

// HeaderFilter returns the redacted header names, lower-cased and sorted.
func (c *Config) HeaderFilter() []string {
	names := make([]string, 0, len(c.headerFilter))
	for name := range c.headerFilter {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// IsFiltered reports whether the value of the named header is redacted.
func (c *Config) IsFiltered(name string) bool {
	_, ok := c.headerFilter[strings.ToLower(name)]

	return ok
}

// LogsRequests reports whether requests are rendered at all.
func (c *Config) LogsRequests() bool {
	return c.level != LevelNone && c.output != OutputResponseOnly
}

// LogsResponses reports whether responses are rendered at all.
func (c *Config) LogsResponses() bool {
	return c.level != LevelNone && c.output != OutputRequestOnly
}

// LogsBodies reports whether bodies are rendered.
// Adapters use it to skip buffering bodies nobody will see.
func (c *Config) LogsBodies() bool {
	return c.level == LevelBody
}

// BodyOptions returns the classification options derived from this configuration.
func (c *Config) BodyOptions() body.Options {
	return body.Options{
		MaxBodySize:       c.maxBodySize,
		ProbeWindow:       c.probeWindow,
		AllowControlChars: c.allowControlChars,
	}
}
