package app

import (
	"context"
	"io"

	"github.com/oshokin/plinter/internal/config"
	"github.com/oshokin/plinter/internal/logger"
)

// ExecuteConfigCommand writes the effective configuration to w as YAML.
func ExecuteConfigCommand(ctx context.Context, cfg *config.Config, w io.Writer) {
	content, err := config.Marshal(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to render configuration: %v", err)
	}

	if _, err = w.Write(content); err != nil {
		logger.Fatalf(ctx, "Failed to print configuration: %v", err)
	}
}

// ExecuteConfigInitCommand saves the effective configuration to path so it can be edited.
func ExecuteConfigInitCommand(ctx context.Context, cfg *config.Config, path string, overwrite bool) {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if err := config.SaveConfig(cfg, path, overwrite); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
	}

	logger.Infof(ctx, "Configuration written to '%s'", path)
	logger.Info(ctx, "Try tracing a request:")
	logger.Info(ctx, "plinter --level headers https://example.com")
}
