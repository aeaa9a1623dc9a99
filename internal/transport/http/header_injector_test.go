package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_http "github.com/oshokin/plinter/internal/transport/http/mocks"
)

// TestNewHeaderInjector tests the NewHeaderInjector function.
func TestNewHeaderInjector(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_http.NewMockHeaderProvider(ctrl)

	injector := NewHeaderInjector(nil, mockProvider)

	assert.NotNil(t, injector)
	assert.Implements(t, (*http.RoundTripper)(nil), injector)
}

// TestHeaderInjector_RoundTrip_WithExistingHeader tests RoundTrip when the header already exists.
func TestHeaderInjector_RoundTrip_WithExistingHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_http.NewMockHeaderProvider(ctrl)
	mockProvider.EXPECT().Headers().Return(http.Header{"User-Agent": {"TestAgent/1.0"}}).Times(1)

	// Create a test server.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ExistingAgent/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider)

	// Create request with existing User-Agent header.
	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)
	req.Header.Set("User-Agent", "ExistingAgent/1.0")

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestHeaderInjector_RoundTrip_WithoutHeader tests RoundTrip when headers are missing.
func TestHeaderInjector_RoundTrip_WithoutHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_http.NewMockHeaderProvider(ctrl)
	mockProvider.EXPECT().Headers().Return(http.Header{
		"User-Agent": {"TestAgent/1.0"},
		"X-Trace":    {"a", "b"},
	}).Times(1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TestAgent/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, []string{"a", "b"}, r.Header.Values("X-Trace"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The caller's request is left untouched.
	assert.Empty(t, req.Header.Get("X-Trace"))
}

// TestHeaderInjector_RoundTrip_ErrorHandling tests error handling in RoundTrip.
func TestHeaderInjector_RoundTrip_ErrorHandling(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_http.NewMockHeaderProvider(ctrl)
	mockProvider.EXPECT().Headers().Return(http.Header{}).AnyTimes()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider)

	// Create request with invalid URL that will definitely fail.
	req, err := http.NewRequest(http.MethodGet, "http://[::1]:0", nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.Error(t, err)
	assert.Nil(t, resp)
}

// TestHeaderInjector_IntegrationWithStaticHeaderProvider tests integration with StaticHeaderProvider.
func TestHeaderInjector_IntegrationWithStaticHeaderProvider(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	headers, err := ParseHeaders([]string{"Accept: application/json"})
	require.NoError(t, err)

	injector := NewHeaderInjector(http.DefaultTransport, NewStaticHeaderProvider("", headers))

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestNewStaticHeaderProvider tests the User-Agent selection of NewStaticHeaderProvider.
func TestNewStaticHeaderProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		userAgent string
		headers   http.Header
		expected  string
	}{
		{
			name:     "default user agent",
			expected: DefaultUserAgent,
		},
		{
			name:      "configured user agent",
			userAgent: " Custom/2.0 ",
			expected:  "Custom/2.0",
		},
		{
			name:      "header flag wins",
			userAgent: "Custom/2.0",
			headers:   http.Header{"User-Agent": {"Flag/3.0"}},
			expected:  "Flag/3.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := NewStaticHeaderProvider(tt.userAgent, tt.headers)
			assert.Equal(t, tt.expected, provider.Headers().Get("User-Agent"))
		})
	}
}

// TestParseHeaders tests the ParseHeaders function.
func TestParseHeaders(t *testing.T) {
	t.Parallel()

	headers, err := ParseHeaders([]string{"accept: text/html", "X-Id:1", "X-Id: 2", "X-Empty:"})
	require.NoError(t, err)

	assert.Equal(t, "text/html", headers.Get("Accept"))
	assert.Equal(t, []string{"1", "2"}, headers.Values("X-Id"))
	assert.Equal(t, []string{""}, headers.Values("X-Empty"))

	for _, invalid := range []string{"no colon", ": value", "Bad Name: x"} {
		_, err = ParseHeaders([]string{invalid})
		require.ErrorIs(t, err, ErrInvalidHeader, invalid)
	}
}
