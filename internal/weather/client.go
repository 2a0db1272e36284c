package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/weatherpi/internal/observability"
)

// Fetcher retrieves the current weather document. *Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context) (*Document, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Options configure a Client.
type Options struct {
	BaseURL  string
	Location string
	APIKey   string
	Include  string
	// Timeout bounds a whole fetch; zero leaves it to the transport.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client talks to the Visual Crossing timeline API.
type Client struct {
	opts      Options
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

const (
	defaultUserAgent = "weatherpi/0.1"
	maxErrorBody     = 4 << 10
)

// NewClient builds a Client. Invalid options are not reported here; Fetch
// returns a *ConfigError for them so the caller sees them on first use.
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		opts:      opts,
		http:      &http.Client{Timeout: opts.Timeout},
		userAgent: defaultUserAgent,
		logger:    logger,
	}
}

// RequestURL builds the timeline URL for the configured location.
func (c *Client) RequestURL() (string, error) {
	base := strings.TrimSpace(c.opts.BaseURL)
	if base == "" {
		return "", &ConfigError{Err: errors.New("base url is empty")}
	}
	location := strings.TrimSpace(c.opts.Location)
	if location == "" {
		return "", &ConfigError{Err: errors.New("location is empty")}
	}
	if strings.TrimSpace(c.opts.APIKey) == "" {
		return "", &ConfigError{Err: errors.New("api key is empty")}
	}
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", &ConfigError{Err: fmt.Errorf("parse base url %q: %w", base, err)}
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &ConfigError{Err: fmt.Errorf("base url %q needs a scheme and host", base)}
	}

	u = u.JoinPath(location)
	values := url.Values{}
	if include := strings.TrimSpace(c.opts.Include); include != "" {
		values.Set("include", include)
	}
	values.Set("key", strings.TrimSpace(c.opts.APIKey))
	values.Set("options", "beta")
	values.Set("contentType", "json")
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// Fetch performs one GET and returns the validated document. There is no
// retry; the caller's policy decides what a failure means.
func (c *Client) Fetch(ctx context.Context) (*Document, error) {
	if c == nil {
		return nil, &ConfigError{Err: errors.New("client is nil")}
	}
	start := time.Now()
	requestID := uuid.NewString()

	doc, outcome, err := c.fetch(ctx, requestID)

	elapsed := time.Since(start)
	observability.WeatherFetchesTotal.WithLabelValues(outcome).Inc()
	observability.WeatherFetchDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("location", c.opts.Location),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		c.logger.Warn("weather fetch failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	c.logger.Debug("weather fetched", fields...)
	return doc, nil
}

func (c *Client) fetch(ctx context.Context, requestID string) (*Document, string, error) {
	reqURL, err := c.RequestURL()
	if err != nil {
		return nil, "config_error", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "config_error", &ConfigError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "transport_error", &NetworkError{Err: redact(err, c.opts.APIKey)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, "http_error", &NetworkError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, "malformed", &MalformedResponseError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if _, err := doc.Reading(); err != nil {
		return nil, "malformed", err
	}
	return &doc, "success", nil
}

// redact keeps the API key out of error strings; *url.Error embeds the
// full request URL.
func redact(err error, key string) error {
	key = strings.TrimSpace(key)
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{
			Op:  urlErr.Op,
			URL: strings.ReplaceAll(urlErr.URL, url.QueryEscape(key), "REDACTED"),
			Err: urlErr.Err,
		}
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
