package message

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseMethod tests the ParseMethod function.
func TestParseMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expected    Method
		expectError bool
	}{
		{name: "upper case", input: "GET", expected: MethodGet},
		{name: "lower case", input: "post", expected: MethodPost},
		{name: "with spaces", input: " patch ", expected: MethodPatch},
		{name: "connect", input: "Connect", expected: MethodConnect},
		{name: "unknown verb", input: "BREW", expectError: true},
		{name: "empty string", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			method, err := ParseMethod(tt.input)
			if tt.expectError {
				require.ErrorIs(t, err, ErrUnknownMethod)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, method)
		})
	}
}

// TestParseProtocol tests the ParseProtocol and ProtocolFromVersion functions.
func TestParseProtocol(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ProtocolHTTP10, ParseProtocol("HTTP/1.0"))
	assert.Equal(t, ProtocolHTTP11, ParseProtocol("http/1.1"))
	assert.Equal(t, ProtocolHTTP2, ParseProtocol("HTTP/2.0"))
	assert.Equal(t, ProtocolHTTP2, ParseProtocol("h2c"))
	assert.Equal(t, ProtocolHTTP3, ParseProtocol("h3"))
	assert.Equal(t, ProtocolUnknown, ParseProtocol("spdy/3"))

	assert.Equal(t, ProtocolHTTP11, ProtocolFromVersion(1, 1))
	assert.Equal(t, ProtocolHTTP2, ProtocolFromVersion(2, 0))
	assert.Equal(t, ProtocolUnknown, ProtocolFromVersion(0, 9))

	assert.Equal(t, "HTTP/2", ProtocolHTTP2.String())
	assert.Equal(t, "UNKNOWN", ProtocolUnknown.String())
}

// TestHeaders tests ordered, case-insensitive header access.
func TestHeaders(t *testing.T) {
	t.Parallel()

	fields := []Header{
		{Name: "Set-Cookie", Value: "a=1"},
		{Name: "Content-Type", Value: "text/plain"},
		{Name: "set-cookie", Value: "b=2"},
	}

	headers := NewHeaders(fields...)

	// Mutating the source slice must not affect the snapshot.
	fields[0].Value = "changed"

	assert.Equal(t, 3, headers.Len())
	assert.Equal(t, "a=1", headers.At(0).Value)
	assert.Equal(t, "set-cookie", headers.At(2).Name)

	value, ok := headers.Get("content-type")
	assert.True(t, ok)
	assert.Equal(t, "text/plain", value)

	_, ok = headers.Get("Accept")
	assert.False(t, ok)

	assert.Equal(t, []string{"a=1", "b=2"}, headers.Values("SET-COOKIE"))

	var names []string
	for header := range headers.All() {
		names = append(names, header.Name)
	}

	assert.Equal(t, []string{"Set-Cookie", "Content-Type", "set-cookie"}, names)

	copied := headers.Slice()
	copied[0].Value = "mutated"
	assert.Equal(t, "a=1", headers.At(0).Value)
}

// TestParseMediaType tests the ParseMediaType function.
func TestParseMediaType(t *testing.T) {
	t.Parallel()

	mediaType := ParseMediaType("Application/JSON; charset=\"UTF-8\"")
	assert.False(t, mediaType.IsZero())
	assert.Equal(t, "application", mediaType.Type())
	assert.Equal(t, "json", mediaType.Subtype())
	assert.Equal(t, "application/json", mediaType.Essence())
	assert.Equal(t, "UTF-8", mediaType.Charset())
	assert.Equal(t, "Application/JSON; charset=\"UTF-8\"", mediaType.String())

	multipart := ParseMediaType("multipart/form-data; boundary=xyz")
	assert.True(t, multipart.IsMultipart())
	assert.Equal(t, "xyz", multipart.Boundary())

	assert.True(t, ParseMediaType("").IsZero())
	assert.True(t, ParseMediaType("not a media type").IsZero())
	assert.Equal(t, "not a media type", ParseMediaType("not a media type").String())
}

// TestBody tests body construction and copying semantics.
func TestBody(t *testing.T) {
	t.Parallel()

	data := []byte("hello")
	body := NewBody(data, "text/plain", "")

	data[0] = 'j'

	assert.Equal(t, []byte("hello"), body.Bytes())
	assert.Equal(t, 5, body.Len())
	assert.Equal(t, int64(5), body.Size())
	assert.False(t, body.Truncated())
	assert.Equal(t, "plain", body.MediaType().Subtype())

	truncated := NewTruncatedBody([]byte("hel"), UnknownSize, "text/plain", "gzip")
	assert.True(t, truncated.Truncated())
	assert.Equal(t, UnknownSize, truncated.Size())
	assert.Equal(t, "gzip", truncated.ContentEncoding())

	// A declared size smaller than the prefix is corrected.
	corrected := NewTruncatedBody([]byte("hello"), 2, "", "")
	assert.Equal(t, int64(5), corrected.Size())

	var absent *Body
	assert.Nil(t, absent.Bytes())
	assert.Zero(t, absent.Len())
	assert.True(t, absent.MediaType().IsZero())
}

// TestNewResponse tests response construction defaults.
func TestNewResponse(t *testing.T) {
	t.Parallel()

	response := NewResponse(ResponseParams{
		URL:        "https://example.com/api/v1/users?page=2",
		Protocol:   ProtocolHTTP11,
		StatusCode: 404,
		Elapsed:    15 * time.Millisecond,
	})

	assert.Equal(t, "Not Found", response.StatusMessage())
	assert.False(t, response.IsSuccessful())
	assert.Equal(t, []string{"api", "v1", "users"}, response.PathSegments())
	assert.Equal(t, 15*time.Millisecond, response.Elapsed())
	assert.Nil(t, response.Body())

	ok := NewResponse(ResponseParams{StatusCode: 204, StatusMessage: " Nothing "})
	assert.True(t, ok.IsSuccessful())
	assert.Equal(t, "Nothing", ok.StatusMessage())
	assert.Empty(t, ok.PathSegments())
}

// TestNewRequest tests that requests keep their own header snapshot.
func TestNewRequest(t *testing.T) {
	t.Parallel()

	request := NewRequest(RequestParams{
		ExchangeID: "abc",
		Method:     MethodGet,
		URL:        "http://localhost/status",
		Protocol:   ProtocolHTTP11,
		Headers:    NewHeaders(Header{Name: "Accept", Value: "*/*"}),
	})

	assert.Equal(t, "abc", request.ExchangeID())
	assert.Equal(t, MethodGet, request.Method())
	assert.Equal(t, "http://localhost/status", request.URL())
	assert.Equal(t, ProtocolHTTP11, request.Protocol())
	assert.Equal(t, 1, request.Headers().Len())
	assert.Nil(t, request.Body())
}
