package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/plinter/internal/constants"
	"github.com/oshokin/plinter/internal/logger"
	transport_http "github.com/oshokin/plinter/internal/transport/http"
	"github.com/oshokin/plinter/internal/utils"
	"github.com/oshokin/plinter/pkg/message"
	"github.com/oshokin/plinter/pkg/printer"
)

// LogFileConfig holds the settings of the rotated trace file.
type LogFileConfig struct {
	// Path is the trace file location.
	Path string `mapstructure:"path" yaml:"path"`
	// MaxSizeMB is the size in megabytes at which the file is rotated.
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is how many rotated files are kept. Zero keeps all of them.
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
	// MaxAgeDays is how many days rotated files are kept. Zero keeps them forever.
	MaxAgeDays int `mapstructure:"max_age_days" yaml:"max_age_days"`
	// Compress enables gzip compression of rotated files.
	Compress bool `mapstructure:"compress" yaml:"compress"`
}

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the verbosity of application diagnostics.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// Level is the trace verbosity: none, basic, headers or body.
	Level string `mapstructure:"level" yaml:"level"`
	// Output selects the traced side: both, request or response.
	Output string `mapstructure:"output" yaml:"output"`
	// MaxLineLength is the width of trace blocks.
	MaxLineLength int `mapstructure:"max_line_length" yaml:"max_line_length"`
	// MaxBodySize is the largest body rendered (e.g., "64 KB"). Empty or "0" means the built-in ceiling.
	MaxBodySize string `mapstructure:"max_body_size" yaml:"max_body_size"`
	// HeaderFilter lists headers whose values are redacted.
	HeaderFilter []string `mapstructure:"header_filter" yaml:"header_filter"`
	// PrettyPrint enables re-indentation of JSON, XML and form bodies.
	PrettyPrint bool `mapstructure:"pretty_print" yaml:"pretty_print"`
	// ProbeWindow is the number of leading bytes checked by binary detection. Zero means the default.
	ProbeWindow int `mapstructure:"probe_window" yaml:"probe_window"`
	// AllowControlChars lets bodies with control characters render as text.
	AllowControlChars bool `mapstructure:"allow_control_chars" yaml:"allow_control_chars"`
	// Sink is the trace destination: console, file or logger.
	Sink string `mapstructure:"sink" yaml:"sink"`
	// Color controls border coloring on the console: auto, always or never.
	Color string `mapstructure:"color" yaml:"color"`
	// LogFile configures the file sink.
	LogFile LogFileConfig `mapstructure:"log_file" yaml:"log_file"`
	// ExchangeIDs tags request and response blocks with a shared random ID.
	ExchangeIDs bool `mapstructure:"exchange_ids" yaml:"exchange_ids"`
	// BlockSink writes every rendered block as one sink entry instead of one entry per line.
	BlockSink bool `mapstructure:"block_sink" yaml:"block_sink"`
	// Timeout is the deadline of each request (e.g., "30s").
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
	// UserAgent is sent when no User-Agent header is given.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// Method is the HTTP method of traced requests (set from flags).
	Method string `yaml:"-"`
	// Data is the request body of traced requests (set from flags).
	Data string `yaml:"-"`
	// Headers are extra "Name: value" request headers (set from flags).
	Headers []string `yaml:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `yaml:"-"`
	// ParsedLevel is the parsed trace level.
	ParsedLevel printer.Level `yaml:"-"`
	// ParsedOutput is the parsed output mode.
	ParsedOutput printer.Output `yaml:"-"`
	// ParsedMaxBodySize is the parsed body ceiling in bytes, zero when unset.
	ParsedMaxBodySize int64 `yaml:"-"`
	// ParsedTimeout is the parsed request timeout.
	ParsedTimeout time.Duration `yaml:"-"`
	// ParsedMethod is the parsed request method.
	ParsedMethod message.Method `yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".plinter.yaml"

	// EnvPrefix prefixes environment variables overriding configuration keys (e.g., PLINTER_LEVEL).
	EnvPrefix = "PLINTER"

	// SinkConsole writes trace lines to stdout.
	SinkConsole = "console"
	// SinkFile writes trace lines to a rotated file.
	SinkFile = "file"
	// SinkLogger writes trace lines through the application logger.
	SinkLogger = "logger"

	// ColorAuto colors borders only when stdout is a terminal.
	ColorAuto = "auto"
	// ColorAlways always colors borders.
	ColorAlways = "always"
	// ColorNever never colors borders.
	ColorNever = "never"

	defaultLogFileMaxSizeMB = 10
	defaultLogFileBackups   = 3
	defaultLogFileMaxAge    = 28
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidMaxLineLength indicates a block width that is too small.
	ErrInvalidMaxLineLength = errors.New("max_line_length is too small")
	// ErrInvalidMaxBodySize indicates a negative or unparsable body ceiling.
	ErrInvalidMaxBodySize = errors.New("max_body_size must be positive")
	// ErrInvalidProbeWindow indicates a negative probe window.
	ErrInvalidProbeWindow = errors.New("probe_window cannot be negative")
	// ErrUnknownSink indicates that the sink is not recognized.
	ErrUnknownSink = errors.New("unknown sink")
	// ErrUnknownColorMode indicates that the color mode is not recognized.
	ErrUnknownColorMode = errors.New("unknown color mode")
	// ErrInvalidLogFile indicates negative rotation settings.
	ErrInvalidLogFile = errors.New("log_file rotation settings cannot be negative")
	// ErrInvalidTimeout indicates a non-positive request timeout.
	ErrInvalidTimeout = errors.New("timeout must be positive")
	// ErrConfigExists indicates that a configuration file would be overwritten.
	ErrConfigExists = errors.New("configuration file already exists")
)

// LoadConfig loads configuration settings from a YAML file, environment variables and defaults.
// A missing file is an error unless configFilename is empty and the default file is absent.
func LoadConfig(configFilename string) (*Config, error) {
	v := newViper()

	useDefaultFile := configFilename == ""
	if useDefaultFile {
		configFilename = DefaultConfigFilename
	}

	exists, err := utils.IsFileExist(configFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	if exists || !useDefaultFile {
		v.SetConfigFile(configFilename)

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	var cfg Config

	// Decoding defaults into the struct cannot fail.
	_ = newViper().Unmarshal(&cfg)

	return &cfg
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("level", printer.LevelBody.String())
	v.SetDefault("output", printer.OutputBoth.String())
	v.SetDefault("max_line_length", printer.DefaultMaxLineLength)
	v.SetDefault("max_body_size", "64 KB")
	v.SetDefault("header_filter", []string{"Authorization", "Cookie", "Set-Cookie"})
	v.SetDefault("pretty_print", false)
	v.SetDefault("probe_window", 0)
	v.SetDefault("allow_control_chars", false)
	v.SetDefault("sink", SinkConsole)
	v.SetDefault("color", ColorAuto)
	v.SetDefault("log_file.path", constants.DefaultTraceFilename)
	v.SetDefault("log_file.max_size_mb", defaultLogFileMaxSizeMB)
	v.SetDefault("log_file.max_backups", defaultLogFileBackups)
	v.SetDefault("log_file.max_age_days", defaultLogFileMaxAge)
	v.SetDefault("log_file.compress", false)
	v.SetDefault("exchange_ids", false)
	v.SetDefault("block_sink", false)
	v.SetDefault("timeout", transport_http.DefaultTimeout.String())
	v.SetDefault("user_agent", transport_http.DefaultUserAgent)

	return v
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,gocognit,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !(isLogLevelCorrect) {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.ParsedLevel, err = printer.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("failed to parse level: %w", err)
	}

	cfg.ParsedOutput, err = printer.ParseOutput(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to parse output: %w", err)
	}

	if cfg.MaxLineLength < printer.MinMaxLineLength {
		return fmt.Errorf("%w: must be at least %d", ErrInvalidMaxLineLength, printer.MinMaxLineLength)
	}

	maxBodySize := strings.TrimSpace(cfg.MaxBodySize)

	cfg.ParsedMaxBodySize = 0
	if maxBodySize != "" && maxBodySize != "0" {
		if strings.HasPrefix(maxBodySize, "-") {
			return fmt.Errorf("%w: '%s'", ErrInvalidMaxBodySize, cfg.MaxBodySize)
		}

		parsedMaxBodySize, parseErr := humanize.ParseBytes(maxBodySize)
		if parseErr != nil {
			return fmt.Errorf("failed to parse max body size: %w", parseErr)
		}

		// printer.WithMaxBodySize accepts only int64 so we transform it safely.
		cfg.ParsedMaxBodySize = utils.SafeUint64ToInt64(parsedMaxBodySize)
	}

	if cfg.ProbeWindow < 0 {
		return ErrInvalidProbeWindow
	}

	cfg.HeaderFilter = utils.UniqueNonEmpty(utils.Map(cfg.HeaderFilter, strings.TrimSpace))

	cfg.Sink = strings.ToLower(strings.TrimSpace(cfg.Sink))
	switch cfg.Sink {
	case SinkConsole, SinkFile, SinkLogger:
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownSink, cfg.Sink)
	}

	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownColorMode, cfg.Color)
	}

	if cfg.LogFile.MaxSizeMB < 0 || cfg.LogFile.MaxBackups < 0 || cfg.LogFile.MaxAgeDays < 0 {
		return ErrInvalidLogFile
	}

	if strings.TrimSpace(cfg.LogFile.Path) == "" {
		cfg.LogFile.Path = constants.DefaultTraceFilename
	}

	cfg.ParsedTimeout = transport_http.DefaultTimeout
	if timeout := strings.TrimSpace(cfg.Timeout); timeout != "" {
		cfg.ParsedTimeout, err = time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("failed to parse timeout: %w", err)
		}

		if cfg.ParsedTimeout <= 0 {
			return ErrInvalidTimeout
		}
	}

	cfg.ParsedMethod = message.MethodGet
	if strings.TrimSpace(cfg.Method) != "" {
		cfg.ParsedMethod, err = message.ParseMethod(cfg.Method)
		if err != nil {
			return fmt.Errorf("failed to parse method: %w", err)
		}
	}

	return nil
}

// PrinterOptions converts a validated configuration into printer options.
// The sink is not included; it depends on the process environment.
func (c *Config) PrinterOptions() []printer.Option {
	opts := []printer.Option{
		printer.WithLevel(c.ParsedLevel),
		printer.WithOutput(c.ParsedOutput),
		printer.WithMaxLineLength(c.MaxLineLength),
		printer.WithHeaderFilter(c.HeaderFilter...),
		printer.WithPrettyPrint(c.PrettyPrint),
		printer.WithAllowControlChars(c.AllowControlChars),
		printer.WithBlockSink(c.BlockSink),
	}

	if c.ParsedMaxBodySize > 0 {
		opts = append(opts, printer.WithMaxBodySize(c.ParsedMaxBodySize))
	}

	if c.ProbeWindow > 0 {
		opts = append(opts, printer.WithProbeWindow(c.ProbeWindow))
	}

	return opts
}

// Marshal renders the persisted part of the configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return content, nil
}

// SaveConfig writes the configuration to path as YAML. An existing file is
// replaced only when overwrite is set.
func SaveConfig(cfg *Config, path string, overwrite bool) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	exists, err := utils.IsFileExist(path)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if exists && !overwrite {
		return fmt.Errorf("%w: '%s'", ErrConfigExists, path)
	}

	content, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err = os.WriteFile(path, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
