/*
Package wordpress is a client for the WordPress REST API covering the
endpoints a publish run needs: slug lookup, tag resolution, media upload
and post creation.
*/
package wordpress

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
)

const (
	// DefaultPostsPath is the REST route for posts.
	DefaultPostsPath = "/wp-json/wp/v2/posts"

	// DefaultMediaPath is the REST route for media.
	DefaultMediaPath = "/wp-json/wp/v2/media"

	// DefaultTagsPath is the REST route for tags.
	DefaultTagsPath = "/wp-json/wp/v2/tags"

	// DefaultQueryTimeout is the HTTP timeout for lookups and tag writes.
	DefaultQueryTimeout = 20 * time.Second

	// DefaultPublishTimeout is the HTTP timeout for media uploads and post
	// creation, which carry the full image and article bodies.
	DefaultPublishTimeout = 60 * time.Second

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 300
)

// Client is a WordPress REST API client authenticated with an application
// password.
type Client struct {
	baseURL       string
	postsPath     string
	mediaPath     string
	tagsPath      string
	username      string
	appPassword   string
	queryClient   *http.Client
	publishClient *http.Client
	logger        arbor.ILogger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithPostsPath overrides the posts route.
func WithPostsPath(path string) ClientOption {
	return func(c *Client) {
		c.postsPath = path
	}
}

// WithMediaPath overrides the media route.
func WithMediaPath(path string) ClientOption {
	return func(c *Client) {
		c.mediaPath = path
	}
}

// WithTagsPath overrides the tags route.
func WithTagsPath(path string) ClientOption {
	return func(c *Client) {
		c.tagsPath = path
	}
}

// WithQueryClient sets the HTTP client for lookups and tag writes.
func WithQueryClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.queryClient = httpClient
	}
}

// WithPublishClient sets the HTTP client for media uploads and post creation.
func WithPublishClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.publishClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the site at baseURL.
func NewClient(baseURL, username, appPassword string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		postsPath:   DefaultPostsPath,
		mediaPath:   DefaultMediaPath,
		tagsPath:    DefaultTagsPath,
		username:    username,
		appPassword: appPassword,
		queryClient: &http.Client{
			Timeout: DefaultQueryTimeout,
		},
		publishClient: &http.Client{
			Timeout: DefaultPublishTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.username, c.appPassword)

	return req, nil
}

// APIError represents an error response from the CMS.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wordpress API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

func newAPIError(resp *http.Response, path string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
		Endpoint:   path,
	}
}
