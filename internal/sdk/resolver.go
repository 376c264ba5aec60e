package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// DefaultAPIBaseURL is the releases API endpoint used to look up the latest tag.
const DefaultAPIBaseURL = "https://api.github.com"

// latestReleasePath is the API route for the newest published release.
const latestReleasePath = "/repos/WebAssembly/wasi-sdk/releases/latest"

var (
	errBadHTTPStatus = errors.New("unexpected http status")
	errEmptyTag      = errors.New("release has no tag name")
)

// Resolver turns a user-supplied version token into a concrete VersionSpec,
// asking the releases API when the token is "latest".
type Resolver struct {
	client  *http.Client
	baseURL string
	token   string
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithBaseURL points the resolver at a different API endpoint (mirrors, tests).
func WithBaseURL(baseURL string) Option {
	return func(r *Resolver) {
		if baseURL != "" {
			r.baseURL = baseURL
		}
	}
}

// WithToken authenticates API requests. Unauthenticated lookups work but are
// rate-limited much harder by GitHub.
func WithToken(token string) Option {
	return func(r *Resolver) {
		r.token = token
	}
}

// WithHTTPClient replaces the HTTP client used for API requests.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.client = client
		}
	}
}

// NewResolver creates a resolver against the default API endpoint.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		client:  http.DefaultClient,
		baseURL: DefaultAPIBaseURL,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve maps a version token ("latest" or a dotted number) to a VersionSpec.
// Only the "latest" path touches the network.
func (r *Resolver) Resolve(ctx context.Context, version string) (VersionSpec, error) {
	if version != LatestVersion {
		return Normalize(version), nil
	}

	tag, err := r.latestTag(ctx)
	if err != nil {
		return VersionSpec{}, fmt.Errorf("resolve latest release: %w", err)
	}

	return FromTag(tag), nil
}

// latestTag fetches the tag of the most recent release from the API.
func (r *Resolver) latestTag(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+latestReleasePath, http.NoBody)
	if err != nil {
		return "", err
	}

	req.Header.Set("Accept", "application/vnd.github+json")

	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	response, err := r.client.Do(req)
	if err != nil {
		return "", err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s, %s: %w", req.URL, response.Status, errBadHTTPStatus)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err = json.NewDecoder(response.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decode release: %w", err)
	}

	if release.TagName == "" {
		return "", errEmptyTag
	}

	return release.TagName, nil
}
