package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"flowboard/internal/shared/errors"
	"flowboard/internal/shared/logger"
)

// Client talks to a Supabase-style backend: PostgREST under /rest/v1 and
// GoTrue under /auth/v1. Requests carry the project anon key; once signed
// in, the session access token replaces it as the bearer.
type Client struct {
	baseURL    string
	anonKey    string
	adminEmail string
	httpClient *http.Client
	logger     logger.Interface

	mu      sync.RWMutex
	session *Session
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithAdminEmail sets the email address that marks a session as admin.
func WithAdminEmail(email string) Option {
	return func(client *Client) {
		client.adminEmail = email
	}
}

// NewClient creates a new backend client.
//
// Parameters:
//   - baseURL: The project base URL (e.g., "https://xyz.supabase.co")
//   - anonKey: The project anon API key
func NewClient(baseURL, anonKey string, log logger.Interface, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		logger:  log.Named("supabase"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) bearerToken() string {
	if s := c.CurrentSession(); s != nil {
		return s.AccessToken
	}
	return c.anonKey
}

// doRequest performs an HTTP request and decodes the response. Every
// failure comes back as an AppError; callers never retry.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, result any, headers map[string]string) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewInternalError(fmt.Sprintf("marshal request: %v", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return errors.NewInternalError(fmt.Sprintf("create request: %v", err))
	}

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearerToken())
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewNetworkError(fmt.Sprintf("send request: %v", err), 0)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(fmt.Sprintf("read response: %v", err), resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errors.NewUnauthorizedError("backend rejected credentials", string(respBody))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewNetworkError(
			fmt.Sprintf("backend error: status=%d", resp.StatusCode),
			resp.StatusCode,
			string(respBody),
		)
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return errors.NewInternalError(fmt.Sprintf("unmarshal response: %v", err))
	}

	return nil
}
