package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/plinter/internal/app"
	"github.com/oshokin/plinter/internal/config"
	"github.com/oshokin/plinter/internal/logger"
	"github.com/oshokin/plinter/internal/version"
	"github.com/oshokin/plinter/pkg/printer"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "plinter [flags] {urls}",
		Short: "Send HTTP requests and print a readable trace of every exchange.",
		Long: `Plinter sends a request to each given URL and prints the request and the response
as framed, width-limited text blocks.

Arguments are URLs or files with one URL per line. The trace shows:
- The request line and the status line with the execution time
- Headers, with sensitive values redacted
- Bodies, decoded and decompressed, or a short note when they cannot be shown

Verbosity, block width, body size limits and the trace destination are configurable.`,
		Args:              cobra.MinimumNArgs(1),
		PersistentPreRun:  initConfig,
		Version:           version.Full(),
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		Run: func(cmd *cobra.Command, args []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			logger.SetLevel(appConfig.ParsedLogLevel)

			app.ExecuteRootCommand(cmd.Context(), appConfig, args, os.Stdout)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	addTraceFlags(rootCmd.PersistentFlags())

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"method",
		"X",
		"",
		"HTTP method of the requests (default GET, or POST when --data is given).")

	rootCmdFlags.StringP(
		"data",
		"d",
		"",
		"request body to send.")

	rootCmdFlags.StringArrayP(
		"header",
		"H",
		nil,
		"extra request header as 'Name: value', can be repeated.")
}

// addTraceFlags registers the flags shaping the trace. They are shared with subcommands
// so that 'plinter config' shows their effect.
func addTraceFlags(flags *pflag.FlagSet) {
	flags.StringP(
		"level",
		"l",
		"",
		"trace level: none, basic, headers or body.")

	flags.StringP(
		"output",
		"o",
		"",
		"traced side: both, request or response.")

	flags.IntP(
		"max-line-length",
		"w",
		0,
		fmt.Sprintf("width of trace blocks, at least %d.", printer.MinMaxLineLength))

	flags.StringP(
		"max-body-size",
		"b",
		"",
		"largest body to print, for example: 16 KB, 1 MB.")

	flags.StringArrayP(
		"filter",
		"f",
		nil,
		"header whose value is redacted, can be repeated (replaces the configured list).")

	flags.BoolP(
		"pretty",
		"p",
		false,
		"re-indent JSON, XML and form bodies.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if parsedLogLevel, ok := logger.ParseLogLevel(appConfig.LogLevel); ok {
		logger.SetLevel(parsedLogLevel)
	}
}

//nolint:cyclop // Each flag is checked on its own.
func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("level"); flag != nil && flag.Changed {
		cfg.Level, _ = flags.GetString("level")
	}

	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.Output, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("max-line-length"); flag != nil && flag.Changed {
		cfg.MaxLineLength, _ = flags.GetInt("max-line-length")
	}

	if flag := flags.Lookup("max-body-size"); flag != nil && flag.Changed {
		cfg.MaxBodySize, _ = flags.GetString("max-body-size")
	}

	if flag := flags.Lookup("filter"); flag != nil && flag.Changed {
		cfg.HeaderFilter, _ = flags.GetStringArray("filter")
	}

	if flag := flags.Lookup("pretty"); flag != nil && flag.Changed {
		cfg.PrettyPrint, _ = flags.GetBool("pretty")
	}

	if flag := flags.Lookup("method"); flag != nil && flag.Changed {
		cfg.Method, _ = flags.GetString("method")
	}

	if flag := flags.Lookup("data"); flag != nil && flag.Changed {
		cfg.Data, _ = flags.GetString("data")
	}

	if flag := flags.Lookup("header"); flag != nil && flag.Changed {
		cfg.Headers, _ = flags.GetStringArray("header")
	}

	if cfg.Data != "" && cfg.Method == "" {
		cfg.Method = http.MethodPost
	}

	return config.ValidateConfig(cfg)
}
