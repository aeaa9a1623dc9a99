package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/oshokin/plinter/internal/config"
	"github.com/oshokin/plinter/pkg/printer"
)

const (
	colorBorder   = lipgloss.Color("#6272A4")
	colorArrow    = lipgloss.Color("#50FA7B")
	colorExchange = lipgloss.Color("#8BE9FD")
	colorRedacted = lipgloss.Color("#FFB86C")
	colorFailure  = lipgloss.Color("#FF5555")
)

const (
	frameVertical = "│"
	failurePrefix = "[plinter]"
	redactedValue = ": " + printer.RedactionMarker
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	// summaryPattern captures the arrow, the optional exchange ID and the failure tag of a BASIC line.
	summaryPattern = regexp.MustCompile(`^(-->|<--)( \[[0-9A-Za-z_-]+\])?( HTTP FAILED:)?`)
	// ruleTokenPattern matches border runs and the exchange ID in a block title.
	ruleTokenPattern = regexp.MustCompile(`[─┌┐└┘├┤]+|\[[0-9A-Za-z_-]+\]`)
	// headerTagPattern matches the corner tag that opens a header row.
	headerTagPattern = regexp.MustCompile(`^ [┌├└] `)
)

// ConsoleSink writes trace lines to a writer, one per call.
// Concurrent calls never interleave within a line.
type ConsoleSink struct {
	mu       sync.Mutex
	w        io.Writer
	colorize bool
	styles   consoleStyles
}

type consoleStyles struct {
	border   lipgloss.Style
	arrow    lipgloss.Style
	exchange lipgloss.Style
	redacted lipgloss.Style
	failure  lipgloss.Style
}

// NewConsoleSink creates a sink writing to w. When colorize is set, borders,
// arrows, exchange IDs, redaction markers and failures are colored with ANSI escapes.
func NewConsoleSink(w io.Writer, colorize bool) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}

	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI256)

	return &ConsoleSink{
		w:        w,
		colorize: colorize,
		styles: consoleStyles{
			border:   renderer.NewStyle().Foreground(colorBorder),
			arrow:    renderer.NewStyle().Foreground(colorArrow).Bold(true),
			exchange: renderer.NewStyle().Foreground(colorExchange).Bold(true),
			redacted: renderer.NewStyle().Foreground(colorRedacted),
			failure:  renderer.NewStyle().Foreground(colorFailure).Bold(true),
		},
	}
}

// Log writes line followed by a newline.
func (s *ConsoleSink) Log(line string) {
	if s.colorize {
		line = s.highlight(line)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintln(s.w, line)
}

// highlight colors only the frame and the summary parts of a line, so body
// text that happens to contain box-drawing characters stays untouched.
func (s *ConsoleSink) highlight(line string) string {
	if strings.Contains(line, "\n") {
		lines := strings.Split(line, "\n")
		for i := range lines {
			lines[i] = s.highlightLine(lines[i])
		}

		return strings.Join(lines, "\n")
	}

	return s.highlightLine(line)
}

func (s *ConsoleSink) highlightLine(line string) string {
	switch {
	case strings.HasPrefix(line, failurePrefix):
		return s.styles.failure.Render(failurePrefix) + line[len(failurePrefix):]
	case summaryPattern.MatchString(line):
		return s.highlightSummary(line)
	case isRule(line):
		return ruleTokenPattern.ReplaceAllStringFunc(line, func(token string) string {
			if strings.HasPrefix(token, "[") {
				return s.styles.exchange.Render(token)
			}

			return s.styles.border.Render(token)
		})
	case len(line) > 2*len(frameVertical) &&
		strings.HasPrefix(line, frameVertical) && strings.HasSuffix(line, frameVertical):
		return s.highlightRow(line)
	default:
		return line
	}
}

func (s *ConsoleSink) highlightSummary(line string) string {
	match := summaryPattern.FindStringSubmatchIndex(line)

	var builder strings.Builder

	builder.WriteString(s.styles.arrow.Render(line[match[2]:match[3]]))

	if match[4] >= 0 {
		builder.WriteString(" " + s.styles.exchange.Render(line[match[4]+1:match[5]]))
	}

	if match[6] >= 0 {
		builder.WriteString(" " + s.styles.failure.Render(line[match[6]+1:match[7]]))
	}

	builder.WriteString(line[match[1]:])

	return builder.String()
}

// highlightRow colors the side borders, a leading header tag and a trailing redacted value.
func (s *ConsoleSink) highlightRow(line string) string {
	content := line[len(frameVertical) : len(line)-len(frameVertical)]

	var tag string
	if loc := headerTagPattern.FindStringIndex(content); loc != nil {
		tag = " " + s.styles.border.Render(strings.TrimSpace(content[:loc[1]])) + " "
		content = content[loc[1]:]
	}

	trimmed := strings.TrimRight(content, " ")
	if strings.HasSuffix(trimmed, redactedValue) {
		cut := len(trimmed) - len(printer.RedactionMarker)
		content = trimmed[:cut] + s.styles.redacted.Render(printer.RedactionMarker) + content[len(trimmed):]
	}

	border := s.styles.border.Render(frameVertical)

	return border + tag + content + border
}

// isRule reports whether line is a top, separator or bottom border of a block.
func isRule(line string) bool {
	first, _ := utf8.DecodeRuneInString(line)
	last, _ := utf8.DecodeLastRuneInString(line)

	return strings.ContainsRune("┌├└", first) && strings.ContainsRune("┐┤┘", last)
}

// ShouldColorize resolves a color mode ("auto", "always" or "never") for w.
// In auto mode only terminals are colored and the NO_COLOR variable disables coloring.
func ShouldColorize(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
