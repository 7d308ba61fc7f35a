package pool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPDoer describes the HTTP client used by the collector client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client publishes demand against a single factory pool on behalf of one
// frontend identity.
type Client struct {
	baseURL  string
	frontend string
	client   HTTPDoer
}

// NewClient constructs a collector client. A zero timeout falls back to 30s;
// collaborator calls are otherwise synchronous and unbounded by the caller.
func NewClient(baseURL, frontend string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		frontend: strings.TrimSpace(frontend),
		client:   &http.Client{Timeout: timeout},
	}
}

// NewClientWithDoer constructs a collector client with a caller-supplied HTTP
// implementation (used in tests).
func NewClientWithDoer(baseURL, frontend string, doer HTTPDoer) *Client {
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		frontend: strings.TrimSpace(frontend),
		client:   doer,
	}
}

// Frontend returns the identity requests are namespaced under.
func (c *Client) Frontend() string {
	return c.frontend
}

// Discover fetches the current glidein catalog from the pool.
func (c *Client) Discover(ctx context.Context) ([]Glidein, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/glideins", nil)
	if err != nil {
		return nil, fmt.Errorf("build discover request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discover glideins: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("pool discover returned %d", resp.StatusCode)
	}

	var glideins []Glidein
	if err := json.NewDecoder(resp.Body).Decode(&glideins); err != nil {
		return nil, fmt.Errorf("decode glidein catalog: %w", err)
	}
	return glideins, nil
}

// Advertise publishes one demand request, replacing any previous record the
// same frontend published under the same request name.
func (c *Client) Advertise(ctx context.Context, request Request) error {
	if strings.TrimSpace(request.Name) == "" {
		return fmt.Errorf("advertise: request name is required")
	}
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode demand request: %w", err)
	}

	target := fmt.Sprintf("%s/requests/%s/%s",
		c.baseURL, url.PathEscape(c.frontend), url.PathEscape(request.Name))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build advertise request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("advertise %s: %w", request.Name, err)
	}
	defer drainAndClose(resp.Body)
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("advertise %s returned %d", request.Name, resp.StatusCode)
	}
	return nil
}

// RetractAll removes every demand record this frontend has published on the
// pool. Records belonging to other frontend identities are untouched.
func (c *Client) RetractAll(ctx context.Context) error {
	target := fmt.Sprintf("%s/requests/%s", c.baseURL, url.PathEscape(c.frontend))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("build retract request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("retract requests: %w", err)
	}
	defer drainAndClose(resp.Body)
	if resp.StatusCode >= http.StatusMultipleChoices && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("retract requests returned %d", resp.StatusCode)
	}
	return nil
}

// ListRequests fetches the demand records currently published under this
// frontend identity. Used by the operator CLI, not by the iteration loop.
func (c *Client) ListRequests(ctx context.Context) ([]Request, error) {
	target := fmt.Sprintf("%s/requests/%s", c.baseURL, url.PathEscape(c.frontend))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("list requests returned %d", resp.StatusCode)
	}

	var requests []Request
	if err := json.NewDecoder(resp.Body).Decode(&requests); err != nil {
		return nil, fmt.Errorf("decode request list: %w", err)
	}
	return requests, nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
