package body

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"unicode"
	"unicode/utf8"

	"github.com/oshokin/plinter/pkg/message"
)

const (
	// HardMaxBodySize caps buffering and decompression regardless of configuration.
	HardMaxBodySize int64 = 64 * 1024 * 1024 // 64 MB

	// DefaultProbeWindow is the number of leading bytes inspected by binary detection.
	DefaultProbeWindow = 512
)

// Options tunes classification.
type Options struct {
	// MaxBodySize is the size ceiling in bytes. Non-positive values and values
	// above HardMaxBodySize are replaced by HardMaxBodySize.
	MaxBodySize int64
	// ProbeWindow is how many leading bytes are checked for invalid sequences
	// and control characters. Defaults to DefaultProbeWindow and never exceeds MaxBodySize.
	ProbeWindow int
	// AllowControlChars disables the control character rule of binary detection.
	// A null byte is always treated as binary.
	AllowControlChars bool
}

// Limit returns the effective size ceiling.
func (o Options) Limit() int64 {
	if o.MaxBodySize <= 0 || o.MaxBodySize > HardMaxBodySize {
		return HardMaxBodySize
	}

	return o.MaxBodySize
}

func (o Options) probeWindow() int {
	window := o.ProbeWindow
	if window <= 0 {
		window = DefaultProbeWindow
	}

	if limit := o.Limit(); int64(window) > limit {
		window = int(limit)
	}

	return window
}

// ClassifyBody classifies a message body. A nil body is Empty; a truncated
// body is always too large, since only a prefix of it is known.
func ClassifyBody(b *message.Body, opts Options) Plan {
	if b == nil || (b.Len() == 0 && !b.Truncated()) {
		return Empty()
	}

	if b.Truncated() {
		return Omitted(ReasonTooLarge, b.Size())
	}

	return Classify(b.Bytes(), b.MediaType(), b.ContentEncoding(), opts)
}

// Classify decides how a body should be rendered.
//
// The size ceiling is checked before anything else and again after
// decompression, so an oversized body is reported as too large even when it
// is also binary. A null byte anywhere in the decoded payload makes it binary.
func Classify(data []byte, mediaType message.MediaType, contentEncoding string, opts Options) Plan {
	if len(data) == 0 {
		return Empty()
	}

	var (
		limit   = opts.Limit()
		rawSize = int64(len(data))
	)

	if rawSize > limit {
		return Omitted(ReasonTooLarge, rawSize)
	}

	decoded, err := Decode(data, contentEncoding, limit)
	if err != nil {
		if errors.Is(err, ErrDecodedTooLarge) {
			return Omitted(ReasonTooLarge, -1)
		}

		return Omitted(ReasonUnsupportedEncoding, rawSize)
	}

	size := int64(len(decoded))
	if size == 0 {
		return Empty()
	}

	if mediaType.IsMultipart() {
		return Multipart(countParts(decoded, mediaType.Boundary()), mediaType.Boundary(), size)
	}

	if bytes.IndexByte(decoded, 0) >= 0 {
		return Omitted(ReasonBinary, size)
	}

	decoder, err := resolveCharset(mediaType.Charset())
	if err != nil {
		return Omitted(ReasonUnknownCharset, size)
	}

	window := opts.probeWindow()

	if decoder.isUTF8() && !probeUTF8(decoded, window, opts.AllowControlChars) {
		return Omitted(ReasonBinary, size)
	}

	text, err := decoder.decode(decoded)
	if err != nil {
		return Omitted(ReasonBinary, size)
	}

	if !decoder.isUTF8() && !probeUTF8([]byte(text), window, opts.AllowControlChars) {
		return Omitted(ReasonBinary, size)
	}

	return Text(text, DetectFormat(mediaType, text))
}

// probeUTF8 checks the first window bytes for invalid UTF-8 and, unless
// allowed, for control characters that are not whitespace. A multi-byte
// sequence cut by the window edge is not treated as invalid.
func probeUTF8(data []byte, window int, allowControlChars bool) bool {
	if window > len(data) {
		window = len(data)
	}

	probe := data[:window]

	for i := 0; i < len(probe); {
		r, size := utf8.DecodeRune(probe[i:])
		if r == utf8.RuneError && size <= 1 {
			if window < len(data) && !utf8.FullRune(probe[i:]) {
				return true
			}

			return false
		}

		if !allowControlChars && isBinaryControl(r) {
			return false
		}

		i += size
	}

	return true
}

// isBinaryControl reports whether r is a control character that does not
// normally occur in text.
func isBinaryControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r', '\f', '\v':
		return false
	}

	return unicode.IsControl(r)
}

// countParts counts the parts of a multipart entity, stopping at the first
// malformed part.
func countParts(data []byte, boundary string) int {
	if boundary == "" {
		return 0
	}

	var (
		reader = multipart.NewReader(bytes.NewReader(data), boundary)
		parts  int
	)

	for {
		part, err := reader.NextPart()
		if err != nil {
			return parts
		}

		_, _ = io.Copy(io.Discard, part)
		_ = part.Close()

		parts++
	}
}
