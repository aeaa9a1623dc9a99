package message

import (
	"mime"
	"strings"
)

// MediaType is a parsed Content-Type value.
// The zero value means the media type is absent or could not be parsed.
type MediaType struct {
	// raw is the original header value.
	raw string
	// kind is the lower-cased top-level type, e.g. "text".
	kind string
	// subtype is the lower-cased subtype, e.g. "plain" or "vnd.api+json".
	subtype string
	// charset is the charset parameter, if declared.
	charset string
	// boundary is the multipart boundary parameter, if declared.
	boundary string
}

// ParseMediaType parses a Content-Type header value.
// Malformed values yield a MediaType that only remembers the raw string.
func ParseMediaType(contentType string) MediaType {
	raw := strings.TrimSpace(contentType)
	if raw == "" {
		return MediaType{}
	}

	parsed, params, err := mime.ParseMediaType(raw)
	if err != nil {
		return MediaType{raw: raw}
	}

	kind, subtype, found := strings.Cut(parsed, "/")
	if !found {
		return MediaType{raw: raw}
	}

	return MediaType{
		raw:      raw,
		kind:     kind,
		subtype:  subtype,
		charset:  strings.TrimSpace(params["charset"]),
		boundary: params["boundary"],
	}
}

// IsZero reports whether no usable media type is known.
func (m MediaType) IsZero() bool {
	return m.kind == ""
}

// Type returns the top-level type, such as "application".
func (m MediaType) Type() string {
	return m.kind
}

// Subtype returns the subtype, such as "json".
func (m MediaType) Subtype() string {
	return m.subtype
}

// Essence returns "type/subtype" without parameters.
func (m MediaType) Essence() string {
	if m.IsZero() {
		return ""
	}

	return m.kind + "/" + m.subtype
}

// Charset returns the declared charset, or an empty string.
func (m MediaType) Charset() string {
	return m.charset
}

// Boundary returns the multipart boundary, or an empty string.
func (m MediaType) Boundary() string {
	return m.boundary
}

// IsMultipart reports whether the top-level type is multipart.
func (m MediaType) IsMultipart() bool {
	return m.kind == "multipart"
}

// String returns the original Content-Type value.
func (m MediaType) String() string {
	return m.raw
}
