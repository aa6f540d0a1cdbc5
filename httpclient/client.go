package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/resilience"
)

// Client talks to one sidecar.
type Client struct {
	service    string
	httpClient *http.Client
	config     Config
}

// New creates a client for the named sidecar.
func New(service string, cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		service:    service,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}, nil
}

// Service returns the sidecar name used in errors.
func (c *Client) Service() string { return c.service }

// Do executes req, retrying transient failures. Non-2xx responses and
// transport failures are returned as application errors.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	return resilience.Retry(ctx, c.config.Retry, func() (*Response, error) {
		return c.doOnce(ctx, req)
	})
}

// DoJSON executes req and decodes a successful response body into out.
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		appErr := errors.ExternalServiceError(c.service, fmt.Errorf("decode response: %w", err))
		appErr.Retryable = false
		return appErr
	}
	return nil
}

// Healthy reports whether GET /health answers 200. It is not retried.
func (c *Client) Healthy(ctx context.Context) bool {
	resp, err := c.doOnce(ctx, Request{Method: http.MethodGet, Path: "/health"})
	return err == nil && resp.StatusCode == http.StatusOK
}

func (c *Client) doOnce(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(c.service, err, ctx.Err())
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(c.service, fmt.Errorf("read response body: %w", err), ctx.Err())
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}
	if appErr := classifyStatus(c.service, resp.StatusCode, body); appErr != nil {
		return result, appErr
	}
	return result, nil
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := req.Path
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, errors.InvalidInput("body", err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, errors.InvalidInput("url", err.Error())
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

// encodeBody is evaluated on every attempt so retries resend the full body.
func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case *MultipartBody:
		return v.encode()
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
