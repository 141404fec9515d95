// Package supabase is a small client for a hosted auth (GoTrue) and table
// (PostgREST) API. A Client is safe for concurrent use; WithToken derives a
// per-request copy that acts as a signed-in user.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"classroom/internal/apperr"
)

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 4 << 20
)

// Config controls how the client reaches the provider.
type Config struct {
	URL       string
	AnonKey   string
	Timeout   time.Duration
	Transport http.RoundTripper
}

type Client struct {
	baseURL *url.URL
	anonKey string
	token   string
	http    *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("supabase url is required")
	}
	if cfg.AnonKey == "" {
		return nil, errors.New("supabase anon key is required")
	}
	base, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse supabase url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("supabase url %q must be http or https", cfg.URL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL: base,
		anonKey: cfg.AnonKey,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
	}, nil
}

// WithToken returns a copy of the client that authenticates as the holder of
// accessToken. The receiver is not modified.
func (c *Client) WithToken(accessToken string) *Client {
	clone := *c
	clone.token = accessToken
	return &clone
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, header http.Header, dest any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperr.Upstream(fmt.Errorf("marshal %s body: %w", path, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return apperr.Upstream(fmt.Errorf("build %s %s: %w", method, path, err))
	}

	bearer := c.token
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Upstream(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperr.Upstream(fmt.Errorf("read %s response: %w", path, err))
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return classify(decodeError(resp.StatusCode, raw))
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return apperr.Upstream(fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}
