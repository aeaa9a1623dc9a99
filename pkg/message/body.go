package message

// UnknownSize marks a truncated body whose total length is not known.
const UnknownSize int64 = -1

// Body is an owned, buffered message entity.
// A nil *Body means the message carries no entity.
type Body struct {
	// data holds the buffered bytes, possibly only a prefix of the entity.
	data []byte
	// mediaType is the declared media type.
	mediaType MediaType
	// encoding is the declared Content-Encoding.
	encoding string
	// size is the total entity size, or UnknownSize.
	size int64
	// truncated reports whether data is only a prefix of the entity.
	truncated bool
}

// NewBody creates a fully buffered body. The data slice is copied.
func NewBody(data []byte, contentType, contentEncoding string) *Body {
	return &Body{
		data:      cloneBytes(data),
		mediaType: ParseMediaType(contentType),
		encoding:  contentEncoding,
		size:      int64(len(data)),
	}
}

// NewTruncatedBody creates a body from the first bytes of a larger entity.
// totalSize is the full entity length when known, or UnknownSize.
func NewTruncatedBody(prefix []byte, totalSize int64, contentType, contentEncoding string) *Body {
	if totalSize >= 0 && totalSize < int64(len(prefix)) {
		totalSize = int64(len(prefix))
	}

	return &Body{
		data:      cloneBytes(prefix),
		mediaType: ParseMediaType(contentType),
		encoding:  contentEncoding,
		size:      totalSize,
		truncated: true,
	}
}

// Bytes returns a copy of the buffered bytes.
func (b *Body) Bytes() []byte {
	if b == nil {
		return nil
	}

	return cloneBytes(b.data)
}

// Len returns the number of buffered bytes.
func (b *Body) Len() int {
	if b == nil {
		return 0
	}

	return len(b.data)
}

// Size returns the total entity size. For truncated bodies of unknown
// length it returns UnknownSize.
func (b *Body) Size() int64 {
	if b == nil {
		return 0
	}

	return b.size
}

// Truncated reports whether only a prefix of the entity was buffered.
func (b *Body) Truncated() bool {
	return b != nil && b.truncated
}

// MediaType returns the declared media type.
func (b *Body) MediaType() MediaType {
	if b == nil {
		return MediaType{}
	}

	return b.mediaType
}

// ContentEncoding returns the declared Content-Encoding.
func (b *Body) ContentEncoding() string {
	if b == nil {
		return ""
	}

	return b.encoding
}

func cloneBytes(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	result := make([]byte, len(data))
	copy(result, data)

	return result
}
