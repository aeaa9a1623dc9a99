package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// commentPrefix starts a line ignored by ReadUniqueLinesFromFile.
const commentPrefix = "#"

// SafeUint64ToInt64 converts val to int64, saturating at math.MaxInt64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// IsFileExist reports whether path names an existing regular file or symlink to one.
// Directories report false. A missing path is not an error.
func IsFileExist(path string) (bool, error) {
	stat, err := os.Stat(path)

	switch {
	case err == nil:
		return !stat.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat '%s': %w", path, err)
	}
}

// ReadUniqueLinesFromFile returns the unique non-empty lines of a text file in file order.
// Lines starting with '#' are comments.
func ReadUniqueLinesFromFile(path string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open '%s': %w", path, err)
	}

	defer file.Close() //nolint:errcheck // Read-only file.

	var lines []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); !strings.HasPrefix(line, commentPrefix) {
			lines = append(lines, line)
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}

	return UniqueNonEmpty(lines), nil
}

// UniqueNonEmpty trims values and drops empty ones and repeats, keeping first-seen order.
func UniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, value := range values {
		value = strings.TrimSpace(value)
		if _, exists := seen[value]; exists || value == "" {
			continue
		}

		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}

// Map returns a new slice holding transform applied to every element of values.
func Map[E, S any](values []E, transform func(E) S) []S {
	result := make([]S, 0, len(values))
	for _, value := range values {
		result = append(result, transform(value))
	}

	return result
}
