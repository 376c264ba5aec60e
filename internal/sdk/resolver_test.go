package sdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestResolveExplicitVersion ensures dotted versions never touch the network.
func TestResolveExplicitVersion(t *testing.T) {
	t.Parallel()

	// No server configured: a network call would fail loudly.
	resolver := NewResolver(WithBaseURL("http://127.0.0.1:0"))

	spec, err := resolver.Resolve(context.Background(), "25.1")
	require.NoError(t, err)
	require.Equal(t, "25.1", spec.Version)
	require.Equal(t, "wasi-sdk-25.1", spec.Tag)
}

// TestResolveLatest checks the releases API path, including the auth header.
func TestResolveLatest(t *testing.T) {
	t.Parallel()

	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, latestReleasePath, r.URL.Path)

		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name": "wasi-sdk-25"}`))
	}))
	defer server.Close()

	resolver := NewResolver(
		WithBaseURL(server.URL),
		WithToken("test-token"),
		WithHTTPClient(server.Client()),
	)

	spec, err := resolver.Resolve(context.Background(), LatestVersion)
	require.NoError(t, err)
	require.Equal(t, "25.0", spec.Version)
	require.Equal(t, "wasi-sdk-25", spec.Tag)
	require.Equal(t, "Bearer test-token", gotAuth)
}

// TestResolveLatestBadStatus surfaces non-200 responses as errors.
func TestResolveLatestBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer server.Close()

	resolver := NewResolver(WithBaseURL(server.URL))

	_, err := resolver.Resolve(context.Background(), LatestVersion)
	require.ErrorIs(t, err, errBadHTTPStatus)
}

// TestResolveLatestEmptyTag rejects responses without a tag name.
func TestResolveLatestEmptyTag(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	resolver := NewResolver(WithBaseURL(server.URL))

	_, err := resolver.Resolve(context.Background(), LatestVersion)
	require.ErrorIs(t, err, errEmptyTag)
}
