package body

import (
	"encoding/json"
	"strings"

	"github.com/oshokin/plinter/pkg/message"
)

// DetectFormat picks the text format from the media type. When the media type
// is absent or generic, the first non-space character of the text decides.
func DetectFormat(mediaType message.MediaType, text string) Format {
	subtype := mediaType.Subtype()

	switch {
	case subtype == "json" || strings.HasSuffix(subtype, "+json"):
		return FormatJSON
	case subtype == "html" || subtype == "xhtml+xml":
		return FormatHTML
	case subtype == "xml" || strings.HasSuffix(subtype, "+xml"):
		return FormatXML
	case mediaType.Essence() == "application/x-www-form-urlencoded":
		return FormatForm
	}

	if !mediaType.IsZero() && mediaType.Essence() != "text/plain" &&
		mediaType.Essence() != "application/octet-stream" {
		return FormatPlain
	}

	return sniffFormat(text)
}

func sniffFormat(text string) Format {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return FormatPlain
	}

	switch trimmed[0] {
	case '{', '[':
		if json.Valid([]byte(trimmed)) {
			return FormatJSON
		}
	case '<':
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
			return FormatHTML
		}

		return FormatXML
	}

	return FormatPlain
}
