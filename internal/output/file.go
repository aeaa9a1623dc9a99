package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/oshokin/plinter/internal/constants"
)

// FileOptions configures a FileSink.
type FileOptions struct {
	// Path is the trace file location.
	Path string
	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is how many rotated files are kept.
	MaxBackups int
	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int
	// Compress gzips rotated files.
	Compress bool
}

// FileSink appends trace lines to a size-rotated file.
type FileSink struct {
	mu     sync.Mutex
	writer *lumberjack.Logger
}

// NewFileSink creates the parent folder of the trace file and returns a sink appending to it.
func NewFileSink(opts FileOptions) (*FileSink, error) {
	path := opts.Path
	if path == "" {
		path = constants.DefaultTraceFilename
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return nil, fmt.Errorf("failed to create trace folder '%s': %w", dir, err)
		}
	}

	return &FileSink{
		writer: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		},
	}, nil
}

// Log appends line and a newline. Write errors are dropped.
func (s *FileSink) Log(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write([]byte(line + "\n"))
}

// Close closes the current file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("failed to close trace file: %w", err)
	}

	return nil
}
