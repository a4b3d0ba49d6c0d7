package veo

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client is the Veo API client.
//
// A Client holds no mutable state and is safe for concurrent use as long as
// the underlying *http.Client is.
type Client struct {
	config Config
	http   *httpClient
	logger *slog.Logger
}

// clientConfig holds the transport settings.
type clientConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets a timeout on the default HTTP client. It has no effect
// when WithHTTPClient is also given. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// NewClient creates a new Veo client for cfg.
//
// Example:
//
//	client := veo.NewClient(cfg)
//	client := veo.NewClient(cfg, veo.WithTimeout(5*time.Minute))
func NewClient(cfg Config, opts ...Option) *Client {
	cc := &clientConfig{}
	for _, opt := range opts {
		opt(cc)
	}
	if cc.httpClient == nil {
		cc.httpClient = &http.Client{Timeout: cc.timeout}
	}
	if cc.logger == nil {
		cc.logger = slog.Default()
	}

	return &Client{
		config: cfg,
		http:   &httpClient{client: cc.httpClient},
		logger: cc.logger,
	}
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// Endpoint returns the predict URL for a model name or identifier.
func (c *Client) Endpoint(model string) string {
	return c.endpoint(c.config.ModelID(model), url.QueryEscape(c.config.APIKey))
}

// MaskedEndpoint is Endpoint with the API key hidden, for logs.
func (c *Client) MaskedEndpoint(model string) string {
	return c.endpoint(c.config.ModelID(model), maskedKey)
}

// maskedKey replaces the API key in logged URLs.
const maskedKey = "***"

// endpoint builds the predict URL. key must already be query-escaped.
func (c *Client) endpoint(modelID, key string) string {
	return fmt.Sprintf("%s/%s/locations/%s/publishers/google/models/%s:predict?key=%s",
		c.config.baseURL(),
		c.config.ProjectID,
		c.config.Location,
		modelID,
		key,
	)
}
