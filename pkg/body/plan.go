package body

// Kind identifies the variant of a Plan.
type Kind int

// Plan variants.
const (
	// KindEmpty means there is no body to render.
	KindEmpty Kind = iota
	// KindText means the body decoded to printable text.
	KindText
	// KindOmitted means the body must not be printed; see Reason.
	KindOmitted
	// KindMultipart means the body is a multipart entity summarized by part count.
	KindMultipart
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindOmitted:
		return "omitted"
	case KindMultipart:
		return "multipart"
	default:
		return "unknown"
	}
}

// Reason explains why a body was omitted.
type Reason int

// Omission reasons.
const (
	// ReasonNone is the zero value used by non-omitted plans.
	ReasonNone Reason = iota
	// ReasonTooLarge means the body exceeds the configured size ceiling.
	ReasonTooLarge
	// ReasonUnsupportedEncoding means the Content-Encoding is unknown or decompression failed.
	ReasonUnsupportedEncoding
	// ReasonBinary means the content looks binary.
	ReasonBinary
	// ReasonUnknownCharset means the declared charset cannot be decoded.
	ReasonUnknownCharset
)

// String returns a human-readable description of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTooLarge:
		return "too large"
	case ReasonUnsupportedEncoding:
		return "unsupported encoding"
	case ReasonBinary:
		return "binary content"
	case ReasonUnknownCharset:
		return "unknown charset"
	default:
		return "unknown"
	}
}

// Format is the textual format detected for a text body.
type Format int

// Text formats.
const (
	FormatPlain Format = iota
	FormatJSON
	FormatXML
	FormatHTML
	FormatForm
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	case FormatHTML:
		return "html"
	case FormatForm:
		return "form"
	default:
		return "plain"
	}
}

// Plan is the outcome of classifying a body. It is a closed set of variants
// distinguished by Kind; only the accessors relevant to the variant carry data.
type Plan struct {
	kind     Kind
	text     string
	format   Format
	reason   Reason
	size     int64
	parts    int
	boundary string
}

// Empty returns the plan for an absent or zero-length body.
func Empty() Plan {
	return Plan{kind: KindEmpty}
}

// Text returns the plan for a decoded text body.
func Text(text string, format Format) Plan {
	return Plan{kind: KindText, text: text, format: format, size: int64(len(text))}
}

// Omitted returns the plan for a body that is not rendered.
// size is the entity size in bytes, or a negative value when unknown.
func Omitted(reason Reason, size int64) Plan {
	return Plan{kind: KindOmitted, reason: reason, size: size}
}

// Multipart returns the summary plan for a multipart body.
func Multipart(parts int, boundary string, size int64) Plan {
	return Plan{kind: KindMultipart, parts: parts, boundary: boundary, size: size}
}

// Kind returns the plan variant.
func (p Plan) Kind() Kind {
	return p.kind
}

// Text returns the decoded text of a KindText plan.
func (p Plan) Text() string {
	return p.text
}

// Format returns the detected format of a KindText plan.
func (p Plan) Format() Format {
	return p.format
}

// Reason returns the omission reason of a KindOmitted plan.
func (p Plan) Reason() Reason {
	return p.reason
}

// Size returns the entity size in bytes, or a negative value when unknown.
func (p Plan) Size() int64 {
	return p.size
}

// Parts returns the part count of a KindMultipart plan.
func (p Plan) Parts() int {
	return p.parts
}

// Boundary returns the boundary of a KindMultipart plan.
func (p Plan) Boundary() string {
	return p.boundary
}
