package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the default backend endpoint.
	DefaultBaseURL = "http://localhost:8000"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"
	headerUserAgent     = "User-Agent"
	contentTypeJSON     = "application/json"
	contentTypeForm     = "application/x-www-form-urlencoded"
	clientUserAgent     = "foodtrack/1.0.0"
)

// TokenSource supplies the current bearer token. An empty string means no
// token; the client then sends no Authorization header at all.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource holding a fixed token. Useful for scripts and
// tests; interactive use goes through the session manager instead.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client is the typed gateway to every backend endpoint the commands need.
//
// Use NewClient to create one:
//
//	client := api.NewClient(api.WithBaseURL("http://localhost:8000"))
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	onAuthFail func()
	logger     *slog.Logger

	// Services
	Auth *AuthService
	Food *FoodService
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom backend base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithTokenSource sets the source consulted for the bearer token on every
// outgoing request. The source is read at call time, so a token change is
// picked up by the next request without reconfiguring the client.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithAuthFailureHandler registers a hook invoked exactly once per response
// that carries an authentication-failure status, before the caller sees the
// normalized error. The session manager uses this to purge the session.
func WithAuthFailureHandler(fn func()) Option {
	return func(c *Client) {
		c.onAuthFail = fn
	}
}

// WithLogger sets a structured logger for request debugging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new backend API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.Food = &FoodService{client: c}

	return c
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request and normalizes every failure into an
// *Error. body may be nil; contentType is ignored when it is.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, result interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headerUserAgent, clientUserAgent)
	req.Header.Set(headerRequestID, uuid.NewString())
	if body != nil && contentType != "" {
		req.Header.Set(headerContentType, contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(headerAuthorization, "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "err", err)
		return transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(fmt.Errorf("failed to read response body: %w", err))
	}

	c.logger.Debug("request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode == http.StatusUnauthorized && c.onAuthFail != nil {
		// Once per offending response, independent of the caller's own
		// handling of the returned error.
		c.onAuthFail()
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, query, "", nil, result)
}

// post performs a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.doRequest(ctx, http.MethodPost, path, nil, contentTypeJSON, reader, result)
}

// put performs a PUT request with a JSON body.
func (c *Client) put(ctx context.Context, path string, body interface{}, result interface{}) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.doRequest(ctx, http.MethodPut, path, nil, contentTypeJSON, reader, result)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path string, result interface{}) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, "", nil, result)
}

// postForm performs a POST request with a form-encoded body. The backend's
// login endpoint is the one consumer.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, nil, contentTypeForm, strings.NewReader(form.Encode()), result)
}

// postMultipart performs a POST request with a multipart body containing one
// file part plus plain fields.
func (c *Client) postMultipart(ctx context.Context, path, fileField, filename string, file io.Reader, fields map[string]string, result interface{}) error {
	var buf strings.Builder
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to build multipart body: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}

	return c.doRequest(ctx, http.MethodPost, path, nil, w.FormDataContentType(), strings.NewReader(buf.String()), result)
}

func jsonBody(body interface{}) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return strings.NewReader(string(data)), nil
}
