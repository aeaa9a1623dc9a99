package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/plinter/internal/app"
	"github.com/oshokin/plinter/internal/logger"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration that a trace would use, as YAML.

The result merges, in order of priority:
1. Command-line flags
2. PLINTER_* environment variables (e.g., PLINTER_LEVEL=headers)
3. The configuration file
4. Built-in defaults

Use --init to save it as a starting configuration file.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			initFile, _ := cmd.Flags().GetBool("init")
			if !initFile {
				app.ExecuteConfigCommand(cmd.Context(), appConfig, os.Stdout)

				return
			}

			force, _ := cmd.Flags().GetBool("force")
			app.ExecuteConfigInitCommand(cmd.Context(), appConfig, configFilenameFromFlag, force)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configCmd.Flags().Bool("init", false, "write the configuration to the --config path or the default file.")
	configCmd.Flags().Bool("force", false, "overwrite an existing file when used with --init.")

	rootCmd.AddCommand(configCmd)
}
