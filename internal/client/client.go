package client

import (
	"bytes"
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

	embedded "github.com/jonathan/resume-matcher/schemas"

	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/request"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultBaseURL is where the scoring service listens in local development.
const DefaultBaseURL = "http://127.0.0.1:8000"

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "resume-matcher/1.0"

// RequestIDHeader carries a fresh UUID on every submission.
const RequestIDHeader = "X-Request-ID"

// Options configures the client.
type Options struct {
	// Timeout bounds a whole exchange. Zero waits indefinitely.
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// HTTPClient overrides the underlying client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// DefaultOptions returns defaults: no timeout.
func DefaultOptions() *Options {
	return &Options{
		UserAgent: DefaultUserAgent,
	}
}

// Client submits upload requests to one service base URL.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	headers   map[string]string
}

// New creates a client for baseURL.
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		userAgent: userAgent,
		headers:   opts.Headers,
	}, nil
}

// BaseURL returns the service base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit sends one request and waits for the outcome. It never retries.
//
// Errors are a *request.BuildError if the body cannot be encoded, a
// *TransportError for network, status and body problems, or a
// *flow.ApplicationError when the service reports a failure in a 2xx body.
func (c *Client) Submit(ctx context.Context, req *request.UploadRequest, f flow.Strategy) (*types.MatchResponse, error) {
	return c.submit(ctx, req, f, uuid.New())
}

func (c *Client) submit(ctx context.Context, req *request.UploadRequest, f flow.Strategy, requestID uuid.UUID) (*types.MatchResponse, error) {
	endpoint := c.baseURL + f.Path()

	body, contentType, err := req.Encode()
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Kind: KindNetwork, URL: endpoint, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID.String())
	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Kind: KindNetwork, URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Kind: KindNetwork, URL: endpoint, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Kind:       KindServer,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Message:    statusMessage(resp.StatusCode, respBody),
		}
	}

	result, err := f.Decode(respBody)
	if err != nil {
		var appErr *flow.ApplicationError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, &TransportError{Kind: KindMalformed, URL: endpoint, Message: "unexpected response body", Cause: err}
	}
	return result, nil
}

// statusMessage prefers the service's "detail" or "error" text over the bare status.
func statusMessage(status int, body []byte) string {
	var payload struct {
		Detail any    `json:"detail"`
		Error  string `json:"error"`
	}
	msg := fmt.Sprintf("HTTP status %d", status)
	if err := json.Unmarshal(body, &payload); err != nil {
		return msg
	}
	switch detail := payload.Detail.(type) {
	case string:
		if detail != "" {
			return fmt.Sprintf("%s: %s", msg, detail)
		}
	case nil:
	default:
		// validation errors arrive as a list of objects
		if encoded, err := json.Marshal(detail); err == nil {
			return fmt.Sprintf("%s: %s", msg, encoded)
		}
	}
	if payload.Error != "" {
		return fmt.Sprintf("%s: %s", msg, payload.Error)
	}
	return msg
}

// HistoryPath lists the service's stored uploads.
const HistoryPath = "/resume-history/"

// Health calls GET / and returns the service's banner message.
func (c *Client) Health(ctx context.Context) (string, error) {
	body, endpoint, err := c.get(ctx, "/")
	if err != nil {
		return "", err
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &TransportError{Kind: KindMalformed, URL: endpoint, Message: "health body is not JSON", Cause: err}
	}
	return payload.Message, nil
}

// History lists the uploads the service has stored, newest first.
func (c *Client) History(ctx context.Context) ([]types.HistoryEntry, error) {
	body, endpoint, err := c.get(ctx, HistoryPath)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateBytes(embedded.HistoryResponse, body); err != nil {
		return nil, &TransportError{Kind: KindMalformed, URL: endpoint, Message: "unexpected history body", Cause: err}
	}

	var payload types.HistoryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &TransportError{Kind: KindMalformed, URL: endpoint, Message: "history body is not JSON", Cause: err}
	}
	return payload.History, nil
}

// get fetches path and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, path string) ([]byte, string, error) {
	endpoint := c.baseURL + path

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, endpoint, &TransportError{Kind: KindNetwork, URL: endpoint, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, endpoint, &TransportError{Kind: KindNetwork, URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, endpoint, &TransportError{Kind: KindNetwork, URL: endpoint, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, endpoint, &TransportError{Kind: KindServer, URL: endpoint, StatusCode: resp.StatusCode, Message: statusMessage(resp.StatusCode, body)}
	}
	return body, endpoint, nil
}
