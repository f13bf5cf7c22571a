package gcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/WandLZhang/schare-project-onboarder/internal/config"
)

// Endpoints holds the base URLs of the Google APIs the client talks to.
// Overridable for tests.
type Endpoints struct {
	ResourceManager string // Cloud Resource Manager v1
	ServiceUsage    string // Service Usage v1
	Billing         string // Cloud Billing v1
	IAM             string // IAM v1
}

// DefaultEndpoints returns the production API base URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		ResourceManager: "https://cloudresourcemanager.googleapis.com/v1",
		ServiceUsage:    "https://serviceusage.googleapis.com/v1",
		Billing:         "https://cloudbilling.googleapis.com/v1",
		IAM:             "https://iam.googleapis.com/v1",
	}
}

// RealClient implements CloudManager against the live Google Cloud APIs.
type RealClient struct {
	httpClient *http.Client
	endpoints  Endpoints
	timeouts   *config.Timeouts
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithHTTPClient sets a custom HTTP client. The caller is responsible for
// any authentication transport when this option is used.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithEndpoints overrides the API base URLs (useful for testing).
func WithEndpoints(e Endpoints) ClientOption {
	return func(c *RealClient) {
		c.endpoints = e
	}
}

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// NewRealClient creates a client that authenticates every request with a
// bearer token drawn from the given source.
func NewRealClient(tokens oauth2.TokenSource, opts ...ClientOption) *RealClient {
	c := &RealClient{
		endpoints: DefaultEndpoints(),
		timeouts:  config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		// A caller-supplied client keeps its own timeout; only the
		// client built here gets the configured default.
		c.httpClient = &http.Client{
			Transport: &oauth2.Transport{Source: tokens},
			Timeout:   c.timeouts.HTTPRequest,
		}
	}
	return c
}

var _ CloudManager = (*RealClient)(nil)

// do performs one JSON request. A nil in body sends no payload; a nil out
// discards the response body. Non-2xx responses are decoded into *APIError.
func (c *RealClient) do(ctx context.Context, method, url string, in, out any) error {
	var payload io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, body)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
