package body

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset is assumed when a media type declares no charset.
const DefaultCharset = "utf-8"

// charsetCacheSize bounds the resolved labels kept in memory.
const charsetCacheSize = 64

// ErrUnknownCharset indicates a charset label that cannot be resolved.
var ErrUnknownCharset = errors.New("unknown charset")

//nolint:gochecknoglobals // Immutable byte-order mark.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// charsetCache holds successful lookups only, so unknown labels cannot evict known ones.
// lru.New fails only for a non-positive size.
//
//nolint:gochecknoglobals // Shared by all classifications, safe for concurrent use.
var charsetCache, _ = lru.New[string, charsetDecoder](charsetCacheSize)

// charsetDecoder turns bytes in some charset into UTF-8 text.
type charsetDecoder struct {
	// name is the normalized charset label.
	name string
	// enc is nil for UTF-8, which needs no transcoding.
	enc encoding.Encoding
}

// resolveCharset looks the label up in the WHATWG encoding index.
// Labels compatible with UTF-8 are served without transcoding.
func resolveCharset(label string) (charsetDecoder, error) {
	name := strings.ToLower(strings.Trim(strings.TrimSpace(label), `"'`))
	if name == "" {
		name = DefaultCharset
	}

	switch name {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return charsetDecoder{name: DefaultCharset}, nil
	}

	if cached, ok := charsetCache.Get(name); ok {
		return cached, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return charsetDecoder{}, fmt.Errorf("%w: '%s'", ErrUnknownCharset, label)
	}

	decoder := charsetDecoder{name: name, enc: enc}
	if canonical, nameErr := htmlindex.Name(enc); nameErr == nil && canonical == DefaultCharset {
		decoder = charsetDecoder{name: DefaultCharset}
	}

	charsetCache.Add(name, decoder)

	return decoder, nil
}

// isUTF8 reports whether the decoder works on the bytes as they are.
func (d charsetDecoder) isUTF8() bool {
	return d.enc == nil
}

// decode converts data to a UTF-8 string. Invalid UTF-8 input sequences are
// replaced with U+FFFD.
func (d charsetDecoder) decode(data []byte) (string, error) {
	if d.isUTF8() {
		return strings.ToValidUTF8(string(bytes.TrimPrefix(data, utf8BOM)), string(utf8.RuneError)), nil
	}

	decoded, err := d.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s body: %w", d.name, err)
	}

	return string(decoded), nil
}
