// Package api implements the remote mutation client for the taskdeck
// HTTP API. It is the only component that touches the network; the
// stores consume it through the domain ports.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shwilliamson/taskdeck/internal/domain"
)

const (
	defaultUserAgent = "taskdeck/0.1"
	defaultTimeout   = 10 * time.Second
)

// Client talks to the taskdeck HTTP API. All failures come back as
// *domain.RemoteError so the stores can classify them uniformly.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

// NewClient builds a Client for the given base URL. The token, when
// non-empty, is sent as a bearer credential on every request.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		token:     token,
		userAgent: defaultUserAgent,
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Tasks returns the task-scope view of the API.
func (c *Client) Tasks() *TaskAPI {
	return &TaskAPI{client: c}
}

// Lists returns the list-scope view of the API.
func (c *Client) Lists() *ListAPI {
	return &ListAPI{client: c}
}

// do issues one request and decodes the JSON response into dest (when
// non-nil). op names the logical operation for error reports.
func (c *Client) do(ctx context.Context, op, method, path string, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var payload *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		payload = bytes.NewReader(encoded)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RemoteError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &domain.RemoteError{Op: op, StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &domain.RemoteError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api base URL is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
