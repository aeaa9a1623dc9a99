package body

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// Content-Encoding tokens.
const (
	EncodingIdentity = "identity"
	EncodingGzip     = "gzip"
	EncodingXGzip    = "x-gzip"
	EncodingDeflate  = "deflate"
	EncodingBrotli   = "br"
)

// Static error definitions for better error handling.
var (
	// ErrUnsupportedEncoding indicates a Content-Encoding token that cannot be decoded.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")
	// ErrDecodedTooLarge indicates that decoding produced more bytes than allowed.
	ErrDecodedTooLarge = errors.New("decoded body exceeds size limit")
)

// Decode undoes the codings listed in contentEncoding. Codings are applied by
// the sender in the listed order, so they are removed in reverse. Every
// intermediate result is capped at limit bytes.
func Decode(data []byte, contentEncoding string, limit int64) ([]byte, error) {
	codings := parseEncodings(contentEncoding)

	for i := len(codings) - 1; i >= 0; i-- {
		decoded, err := decodeOne(data, codings[i], limit)
		if err != nil {
			return nil, err
		}

		data = decoded
	}

	return data, nil
}

// parseEncodings splits a Content-Encoding value into normalized codings,
// dropping identity entries.
func parseEncodings(contentEncoding string) []string {
	var codings []string

	for token := range strings.SplitSeq(contentEncoding, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" || token == EncodingIdentity {
			continue
		}

		codings = append(codings, token)
	}

	return codings
}

func decodeOne(data []byte, coding string, limit int64) ([]byte, error) {
	switch coding {
	case EncodingGzip, EncodingXGzip:
		return decompressGzip(data, limit)
	case EncodingDeflate:
		return decompressDeflate(data, limit)
	case EncodingBrotli:
		return readLimited(brotli.NewReader(bytes.NewReader(data)), limit)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedEncoding, coding)
	}
}

func decompressGzip(data []byte, limit int64) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}

	defer reader.Close() //nolint:errcheck // Reader over an in-memory buffer.

	return readLimited(reader, limit)
}

// decompressDeflate handles both zlib-wrapped streams, which is what the
// deflate coding is defined as, and raw DEFLATE sent by some servers.
func decompressDeflate(data []byte, limit int64) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err == nil {
		defer reader.Close() //nolint:errcheck // Reader over an in-memory buffer.

		return readLimited(reader, limit)
	}

	raw := flate.NewReader(bytes.NewReader(data))
	defer raw.Close() //nolint:errcheck // Reader over an in-memory buffer.

	return readLimited(raw, limit)
}

func readLimited(reader io.Reader, limit int64) ([]byte, error) {
	result, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress body: %w", err)
	}

	if int64(len(result)) > limit {
		return nil, ErrDecodedTooLarge
	}

	return result, nil
}
