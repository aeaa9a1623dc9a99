package httpadapter

import (
	"bytes"
	"io"
	"net/http"

	"github.com/oshokin/plinter/pkg/message"
)

// replayBody yields the buffered prefix followed by the rest of the original stream.
type replayBody struct {
	io.Reader

	closer io.Closer
}

func (b *replayBody) Close() error {
	return b.closer.Close()
}

// failingReader returns the error the original stream failed with once the prefix is drained.
type failingReader struct {
	err error
}

func (r failingReader) Read([]byte) (int, error) {
	return 0, r.err
}

func hasBody(rc io.ReadCloser) bool {
	return rc != nil && rc != http.NoBody
}

// captureBody buffers at most limit+1 bytes of rc. It returns the canonical
// body and a replacement stream that yields exactly the bytes rc would have.
// A read fault is kept for the replacement stream; the canonical body holds
// what was read before it.
func captureBody(
	rc io.ReadCloser,
	limit int64,
	contentLength int64,
	header http.Header,
) (*message.Body, io.ReadCloser) {
	contentType, contentEncoding := contentHeaders(header)

	prefix, err := io.ReadAll(io.LimitReader(rc, limit+1))

	rest := io.Reader(rc)
	if err != nil {
		rest = failingReader{err: err}
	}

	restored := &replayBody{
		Reader: io.MultiReader(bytes.NewReader(prefix), rest),
		closer: rc,
	}

	if err == nil && int64(len(prefix)) > limit {
		totalSize := message.UnknownSize
		if contentLength >= 0 {
			totalSize = contentLength
		}

		return message.NewTruncatedBody(prefix, totalSize, contentType, contentEncoding), restored
	}

	return message.NewBody(prefix, contentType, contentEncoding), restored
}
