package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/plinter/internal/config"
	"github.com/oshokin/plinter/internal/constants"
	"github.com/oshokin/plinter/pkg/printer"
)

type lineCollector struct {
	mu    sync.Mutex
	lines []string
}

func (c *lineCollector) Log(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = append(c.lines, line)
}

func (c *lineCollector) text() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return strings.Join(c.lines, "\n")
}

func newTestTracer(t *testing.T, mutate func(*config.Config)) (*Tracer, *lineCollector) {
	t.Helper()

	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}

	require.NoError(t, config.ValidateConfig(cfg))

	collector := &lineCollector{}

	printerConfig, err := printer.NewConfig(append(cfg.PrinterOptions(), printer.WithSink(collector))...)
	require.NoError(t, err)

	tracer, err := NewTracer(cfg, printer.New(printerConfig), nil)
	require.NoError(t, err)

	return tracer, collector
}

// TestTracerTrace tests that a traced GET prints both blocks with injected headers.
func TestTracerTrace(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "plinter", r.Header.Get("User-Agent"))
		assert.Equal(t, "yes", r.Header.Get("X-Trace"))

		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "pong")
	}))
	t.Cleanup(server.Close)

	tracer, collector := newTestTracer(t, func(cfg *config.Config) {
		cfg.Headers = []string{"X-Trace: yes"}
	})

	require.NoError(t, tracer.Trace(context.Background(), server.URL+"/ping"))

	trace := collector.text()
	assert.Contains(t, trace, "--> GET "+server.URL+"/ping HTTP/1.1")
	assert.Contains(t, trace, "User-Agent: plinter")
	assert.Contains(t, trace, "X-Trace: yes")
	assert.Contains(t, trace, "<-- 200 OK HTTP/1.1 "+server.URL+"/ping")
	assert.Contains(t, trace, "pong")
}

// TestTracerTracePost tests that request data is sent and traced.
func TestTracerTracePost(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		received, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"name":"plinter"}`, string(received))

		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	tracer, collector := newTestTracer(t, func(cfg *config.Config) {
		cfg.Method = "post"
		cfg.Data = `{"name":"plinter"}`
		cfg.Headers = []string{"Content-Type: application/json"}
	})

	require.NoError(t, tracer.Trace(context.Background(), server.URL))

	trace := collector.text()
	assert.Contains(t, trace, "--> POST "+server.URL)
	assert.Contains(t, trace, `{"name":"plinter"}`)
	assert.Contains(t, trace, "<-- 201 Created")
}

// TestTracerTraceAll tests that failures are counted and traced.
func TestTracerTraceAll(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	tracer, collector := newTestTracer(t, func(cfg *config.Config) {
		cfg.Level = "basic"
	})

	failed := tracer.TraceAll(context.Background(), []string{server.URL, closedURL})
	assert.Equal(t, 1, failed)

	trace := collector.text()
	assert.Contains(t, trace, "<-- 204 No Content HTTP/1.1 "+server.URL)
	assert.Contains(t, trace, "<-- HTTP FAILED: GET "+closedURL)
}

// TestTracerTraceAllCanceled tests that a canceled context skips the remaining URLs.
func TestTracerTraceAllCanceled(t *testing.T) {
	t.Parallel()

	tracer, collector := newTestTracer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, 2, tracer.TraceAll(ctx, []string{"http://localhost/a", "http://localhost/b"}))
	assert.Empty(t, collector.text())
}

// TestNewTracerInvalidHeader tests that malformed header flags are rejected.
func TestNewTracerInvalidHeader(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Headers = []string{"no separator"}
	require.NoError(t, config.ValidateConfig(cfg))

	_, err := NewTracer(cfg, printer.New(nil), nil)
	require.Error(t, err)
}

// TestExpandURLs tests the ExpandURLs function.
func TestExpandURLs(t *testing.T) {
	t.Parallel()

	listPath := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(listPath, []byte(
		"# staging\nhttps://example.com/a\n\nexample.com/b\nhttps://example.com/a\n",
	), constants.DefaultFilePermissions))

	tests := []struct {
		name     string
		args     []string
		expected []string
		err      error
	}{
		{
			name:     "plain URLs",
			args:     []string{"https://example.com", "http://localhost:8080/status"},
			expected: []string{"https://example.com", "http://localhost:8080/status"},
		},
		{
			name:     "missing scheme",
			args:     []string{"localhost:8080/status"},
			expected: []string{"http://localhost:8080/status"},
		},
		{
			name:     "file with duplicates",
			args:     []string{listPath, "https://example.com/a"},
			expected: []string{"https://example.com/a", "http://example.com/b"},
		},
		{
			name: "unsupported scheme",
			args: []string{"ftp://example.com"},
			err:  ErrInvalidURL,
		},
		{
			name: "nothing",
			args: []string{" ", ""},
			err:  ErrNoURLs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			urls, err := ExpandURLs(tt.args)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, urls)
		})
	}
}

// TestNewPrinter tests that the console sink writes to the given stdout.
func TestNewPrinter(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Color = config.ColorNever
	cfg.Level = "basic"
	require.NoError(t, config.ValidateConfig(cfg))

	var stdout bytes.Buffer

	p, closer, err := NewPrinter(cfg, &stdout)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	tracer, err := NewTracer(cfg, p, nil)
	require.NoError(t, err)
	require.NoError(t, tracer.Trace(context.Background(), server.URL))
	require.NoError(t, closer.Close())

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "--> GET "+server.URL+" HTTP/1.1", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "<-- 200 OK HTTP/1.1 "+server.URL+" ("))
}

// TestExecuteConfigCommand tests that the effective configuration is printed as YAML.
func TestExecuteConfigCommand(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	var out bytes.Buffer

	ExecuteConfigCommand(context.Background(), cfg, &out)

	assert.Contains(t, out.String(), "level: body")
	assert.Contains(t, out.String(), "max_body_size: 64 KB")
	assert.NotContains(t, out.String(), "parsed")
}

// TestExecuteConfigInitCommand tests that the configuration file is written.
func TestExecuteConfigInitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plinter.yaml")

	ExecuteConfigInitCommand(context.Background(), config.DefaultConfig(), path, false)

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "body", loaded.Level)
}

// TestTracerExchangeIDs tests that enabled exchange IDs pair request and response lines.
func TestTracerExchangeIDs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	tracer, collector := newTestTracer(t, func(cfg *config.Config) {
		cfg.Level = "basic"
		cfg.ExchangeIDs = true
	})

	require.NoError(t, tracer.Trace(context.Background(), server.URL))

	lines := strings.Split(collector.text(), "\n")
	require.Len(t, lines, 2)

	requestID := regexp.MustCompile(`^--> \[([0-9a-f-]{8})\] GET `).FindStringSubmatch(lines[0])
	require.Len(t, requestID, 2, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "<-- ["+requestID[1]+"] 200 OK"), lines[1])
}

// TestTracerTraceAllProgress tests that a progress bar is drawn for several URLs.
func TestTracerTraceAllProgress(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	tracer, _ := newTestTracer(t, func(cfg *config.Config) {
		cfg.Level = "none"
	})

	var progress bytes.Buffer

	tracer.SetProgressWriter(&progress)

	assert.Zero(t, tracer.TraceAll(context.Background(), []string{server.URL + "/a", server.URL + "/b"}))
	assert.Contains(t, progress.String(), "Tracing")
	assert.Contains(t, progress.String(), "2/2")
}

// TestRunTrace tests that tracing reports setup errors instead of exiting.
func TestRunTrace(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	newFileConfig := func(t *testing.T, headers ...string) *config.Config {
		t.Helper()

		cfg := config.DefaultConfig()
		cfg.Level = "basic"
		cfg.Sink = config.SinkFile
		cfg.LogFile.Path = filepath.Join(t.TempDir(), "trace.log")
		cfg.Headers = headers
		require.NoError(t, config.ValidateConfig(cfg))

		return cfg
	}

	t.Run("traces into the file sink", func(t *testing.T) {
		t.Parallel()

		cfg := newFileConfig(t)

		failed, total, err := runTrace(context.Background(), cfg, []string{server.URL}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, 0, failed)
		assert.Equal(t, 1, total)

		content, err := os.ReadFile(cfg.LogFile.Path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "--> GET "+server.URL)
	})

	t.Run("invalid header after the sink is open", func(t *testing.T) {
		t.Parallel()

		cfg := newFileConfig(t, "no separator")

		_, _, err := runTrace(context.Background(), cfg, []string{server.URL}, io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize HTTP client")
	})

	t.Run("no URLs", func(t *testing.T) {
		t.Parallel()

		_, _, err := runTrace(context.Background(), newFileConfig(t), nil, io.Discard)
		require.ErrorIs(t, err, ErrNoURLs)
	})
}
