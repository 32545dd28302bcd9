// Package transport is the single point of outbound HTTP traffic. It injects
// the stored bearer token and tenant id, enforces the request timeout and
// maps every failure into the fixed error taxonomy before handing it back.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tetoca/tetoca-go/internal/storage"
)

const (
	DefaultTimeout = 10 * time.Second

	tenantPlaceholder = "{tenantId}"
	requestIDHeader   = "X-Request-Id"
)

type Client struct {
	baseURL string
	http    *http.Client
	storage storage.Store
	logger  zerolog.Logger
}

type Options struct {
	Timeout time.Duration
	// Tracing wraps the underlying transport with otelhttp.
	Tracing bool
}

func New(baseURL string, store storage.Store, logger zerolog.Logger, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var rt http.RoundTripper = http.DefaultTransport
	if opts.Tracing {
		rt = otelhttp.NewTransport(rt)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: rt},
		storage: store,
		logger:  logger.With().Str("component", "transport").Logger(),
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	path, err := c.resolvePath(path)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("request setup failed")
		return nil, err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, configError("encode request body: " + err.Error())
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("request setup failed")
		return nil, configError(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	token, _ := c.storage.Get(storage.KeyAuthToken)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug().Str("method", method).Str("url", endpoint).Msg("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("no response received")
		return nil, networkError(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError("read response: " + err.Error())
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug().Int("status", resp.StatusCode).Str("url", endpoint).Msg("api response")
		return raw, nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Expired or invalid token. No refresh flow: the next action forces
		// a fresh login.
		_ = c.storage.Delete(storage.KeyAuthToken)
	}

	apiErr := NewAPIError(resp.StatusCode, errorMessage(raw, resp.Status))
	c.logger.Error().Int("status", resp.StatusCode).Str("code", apiErr.Code).Str("url", endpoint).Msg(apiErr.Message)
	return nil, apiErr
}

// resolvePath substitutes the stored tenant id into tenant-scoped routes.
func (c *Client) resolvePath(path string) (string, error) {
	if !strings.Contains(path, tenantPlaceholder) {
		return path, nil
	}
	tenantID, _ := c.storage.Get(storage.KeyTenantID)
	if tenantID == "" {
		return path, configError("tenant-scoped route requires a current tenant id")
	}
	return strings.ReplaceAll(path, tenantPlaceholder, url.PathEscape(tenantID)), nil
}

// errorMessage extracts a human message from either error body shape the
// backend emits: {"error":{"code","message"}} or {"error":"..."}.
func errorMessage(raw []byte, fallback string) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}
	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &flat); err == nil && flat.Error != "" {
		return flat.Error
	}
	return fallback
}
