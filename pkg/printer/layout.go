package printer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Box-drawing pieces of a framed block.
const (
	borderHorizontal  = "─"
	borderVertical    = "│"
	cornerTopLeft     = "┌"
	cornerTopRight    = "┐"
	cornerBottomLeft  = "└"
	cornerBottomRight = "┘"
	teeLeft           = "├"
	teeRight          = "┤"
	titleLead         = "──────"

	// frameOverhead is the width taken by "│ " and " │".
	frameOverhead = 4
	tabWidth      = 4
	ellipsis      = "…"
)

// cells measures display width independently of the locale, so box-drawing
// characters always count as one cell.
//
//nolint:gochecknoglobals // Immutable width table settings.
var cells = &runewidth.Condition{
	EastAsianWidth:     false,
	StrictEmojiNeutral: true,
}

// frame accumulates the lines of one bordered block.
// Every line it produces has a display width of exactly width cells.
type frame struct {
	width    int
	lines    []string
	sections int
}

func newFrame(width int, title string) *frame {
	head := cornerTopLeft + titleLead + " " + title + " "
	if cells.StringWidth(head) > width-1 {
		head = cells.Truncate(head, width-1, "")
	}

	top := head + strings.Repeat(borderHorizontal, width-1-cells.StringWidth(head)) + cornerTopRight

	return &frame{
		width: width,
		lines: []string{top},
	}
}

// contentWidth is the number of cells available between the borders.
func (f *frame) contentWidth() int {
	return f.width - frameOverhead
}

// addSection appends rows separated from the previous section by a rule.
// Each row is wrapped; continuation lines start with indent.
func (f *frame) addSection(rows []row) {
	if len(rows) == 0 {
		return
	}

	if f.sections > 0 {
		f.lines = append(f.lines, teeLeft+strings.Repeat(borderHorizontal, f.width-2)+teeRight)
	}

	f.sections++

	for _, r := range rows {
		if r.single {
			f.addLine(f.fitMarker(r))

			continue
		}

		for _, piece := range wrapLine(sanitize(r.text), f.contentWidth(), r.indent) {
			f.addLine(piece)
		}
	}
}

// fitMarker picks the first variant of a marker that fits and truncates the last one otherwise.
func (f *frame) fitMarker(r row) string {
	text := sanitize(r.text)

	for _, variant := range r.fallbacks {
		if cells.StringWidth(text) <= f.contentWidth() {
			break
		}

		text = sanitize(variant)
	}

	return cells.Truncate(text, f.contentWidth(), ellipsis)
}

func (f *frame) addLine(piece string) {
	f.lines = append(f.lines, borderVertical+" "+cells.FillRight(piece, f.contentWidth())+" "+borderVertical)
}

func (f *frame) close() []string {
	return append(f.lines,
		cornerBottomLeft+strings.Repeat(borderHorizontal, f.width-2)+cornerBottomRight)
}

// row is one logical line of content before wrapping.
type row struct {
	text   string
	indent string
	// single rows are truncated instead of wrapped.
	single bool
	// fallbacks are tried in order when a single row does not fit.
	fallbacks []string
}

func plainRows(lines ...string) []row {
	rows := make([]row, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, row{text: line})
	}

	return rows
}

// markerRows holds a one-row marker that never wraps. On narrow lines the
// size note goes first, then the detail is reduced to the compact form.
func markerRows(text, sizeNote, compact string) []row {
	return []row{{
		text:      text + " (" + sizeNote + ")",
		fallbacks: []string{text, compact},
		single:    true,
	}}
}

// splitLines breaks text into sanitized lines and drops trailing blank lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = sanitize(line)
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// sanitize expands tabs, replaces control characters with U+FFFD and strips
// trailing whitespace, so that the display width of the result is predictable.
func sanitize(line string) string {
	var builder strings.Builder

	builder.Grow(len(line))

	for _, r := range line {
		switch {
		case r == '\t':
			builder.WriteString(strings.Repeat(" ", tabWidth))
		case r == '\r':
		case unicode.IsControl(r):
			builder.WriteRune(utf8.RuneError)
		default:
			builder.WriteRune(r)
		}
	}

	return strings.TrimRightFunc(builder.String(), unicode.IsSpace)
}

// wrapLine splits line into pieces no wider than width cells, breaking at the
// last space that fits and splitting words that are too long on their own.
func wrapLine(line string, width int, indent string) []string {
	if cells.StringWidth(line) <= width {
		return []string{line}
	}

	var (
		result []string
		rest   = line
		prefix string
	)

	for rest != "" {
		available := width - cells.StringWidth(prefix)
		if available < 1 {
			prefix, available = "", width
		}

		if cells.StringWidth(rest) <= available {
			result = append(result, prefix+rest)

			break
		}

		head, tail := splitAt(rest, available)
		rest = strings.TrimLeft(tail, " ")

		// A run of spaces wider than the line yields nothing worth a row.
		if strings.TrimSpace(head) == "" {
			continue
		}

		result = append(result, prefix+head)
		prefix = indent
	}

	if len(result) == 0 {
		return []string{""}
	}

	return result
}

// splitAt cuts s so that the head fits into available cells.
func splitAt(s string, available int) (string, string) {
	var (
		width     int
		cut       = len(s)
		lastSpace = -1
	)

	for i, r := range s {
		runeWidth := cells.RuneWidth(r)
		if width+runeWidth > available {
			cut = i

			break
		}

		if r == ' ' {
			lastSpace = i
		}

		width += runeWidth
	}

	if cut < len(s) && s[cut] == ' ' {
		return strings.TrimRight(s[:cut], " "), s[cut:]
	}

	if lastSpace > 0 && strings.TrimSpace(s[:lastSpace]) != "" {
		return strings.TrimRight(s[:lastSpace], " "), s[lastSpace:]
	}

	if cut == 0 {
		_, size := utf8.DecodeRuneInString(s)
		cut = size
	}

	return s[:cut], s[cut:]
}
