// Package availability fetches parking availability from the detection backend.
package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/parkwatch/internal/domain"
)

const (
	// AvailabilityPath is the backend endpoint serving the detector's latest counts.
	AvailabilityPath = "/api/parking/availability"

	defaultTimeout = 30 * time.Second
	maxBodySize    = 64 << 10
)

// Options configures a Client. Zero durations fall back to 30s.
type Options struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	UserAgent      string
}

// Client fetches availability snapshots. It never retries; the caller polls.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	connect := opts.ConnectTimeout
	if connect <= 0 {
		connect = defaultTimeout
	}
	read := opts.ReadTimeout
	if read <= 0 {
		read = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connect,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ResponseHeaderTimeout: read,
		MaxIdleConns:          2,
		IdleConnTimeout:       90 * time.Second,
	}

	return &Client{
		endpoint:  strings.TrimRight(baseURL, "/") + AvailabilityPath,
		userAgent: opts.UserAgent,
		httpClient: &http.Client{
			Transport: transport,
			// Upper bound for connect + headers + body.
			Timeout: connect + read,
		},
		logger: logger,
	}
}

// Endpoint returns the full URL polled by the client.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch performs one GET against the availability endpoint.
func (c *Client) Fetch(ctx context.Context) (domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return domain.Snapshot{}, c.networkError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("availability request", "url", c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Snapshot{}, c.networkError(unwrapURLError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return domain.Snapshot{}, c.networkError(fmt.Errorf("failed to read response: %w", unwrapURLError(err)))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Snapshot{}, &domain.NetworkError{
			Op:         http.MethodGet,
			URL:        c.endpoint,
			StatusCode: resp.StatusCode,
			Message:    backendMessage(body),
		}
	}

	if len(body) > maxBodySize {
		return domain.Snapshot{}, &domain.DecodeError{Err: fmt.Errorf("response body exceeds %d bytes", maxBodySize)}
	}

	return Decode(body)
}

func (c *Client) networkError(err error) *domain.NetworkError {
	return &domain.NetworkError{Op: http.MethodGet, URL: c.endpoint, Err: err}
}

// unwrapURLError strips the *url.Error wrapper; NetworkError already carries the method and URL.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

// backendMessage extracts the {"error": "..."} text the backend sends with failure statuses.
func backendMessage(body []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Detail
}
