// Package apiclient is the single HTTP gateway between the console and the
// banking REST API.
package apiclient

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

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 10 * time.Second
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client attaches the bearer token, logs every failure once and hands the
// failure back unchanged. It does not retry or cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *zap.Logger
	now        func() time.Time
}

func NewClient(cfg Config, tokens TokenSource, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if tokens == nil {
		tokens = NewMemoryTokenStore("")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     tokens,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.authorize(ctx, req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		observe(method, 0, elapsed)
		c.logger.Error("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	observe(method, resp.StatusCode, elapsed)
	if err != nil {
		c.logger.Error("API response read failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: respBody}
		c.logger.Error("API request returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", elapsed),
			zap.ByteString("body", respBody),
		)
		return apiErr
	}

	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", elapsed),
	)

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Error("API response decode failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// authorize attaches the bearer token when one is stored. A token that cannot
// be read is logged and the request proceeds anonymously.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn("token lookup failed", zap.Error(err))
		return
	}
	if token == "" {
		return
	}
	if tokenExpired(token, c.now()) {
		c.logger.Warn("bearer token has expired", zap.String("path", req.URL.Path))
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
