// Package http is the single authenticated gateway to the Minds API. Every
// network call goes through Client.Do, which classifies failures into the
// minds error taxonomy.
package http

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

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/minds/internal/auth"
	"github.com/fivetwenty-io/minds/internal/constants"
	"github.com/fivetwenty-io/minds/pkg/minds"
)

// Messages of the unknown errors raised by the gateway.
const (
	noResponseMessage       = "no response received from the API."
	unexpectedErrorPrefix   = "unexpected error: "
	unexpectedStatusMessage = "unexpected response status: %d"
)

// Logger is the logging interface used by the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes a call to the API. Path is appended to the base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a received HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Empty reports whether the response carried no body.
func (r *Response) Empty() bool {
	return len(bytes.TrimSpace(r.Body)) == 0
}

// Decode unmarshals the JSON body into v. A body that is not valid JSON is
// reported as an unknown error.
func (r *Response) Decode(v interface{}) error {
	if r.Empty() {
		return minds.NewError(minds.KindUnknown, unexpectedErrorPrefix+"empty response body")
	}

	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return minds.WrapError(minds.KindUnknown, unexpectedErrorPrefix+"parsing response: "+err.Error(), err)
	}

	return nil
}

// Client is the HTTP gateway. Its base URL and credentials are fixed at
// construction and it holds no per-call state, so it is safe for concurrent use.
type Client struct {
	baseURL     string
	credentials auth.Credentials
	userAgent   string
	logger      Logger
	debug       bool
	timeout     time.Duration
	httpClient  *http.Client

	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	// single never retries; retrying is only used for idempotent verbs.
	single   *retryablehttp.Client
	retrying *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Without one the client is silent.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRetryConfig enables retries of transient failures for GET and DELETE.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// NewClient creates a gateway for baseURL. credentials may be nil, in which
// case requests are sent without an Authorization header.
func NewClient(baseURL string, credentials auth.Credentials, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		credentials:  credentials,
		userAgent:    constants.DefaultUserAgent,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.single = client.newTransport(0)
	client.retrying = client.newTransport(client.retryMax)

	return client
}

func (c *Client) newTransport(retryMax int) *retryablehttp.Client {
	transport := retryablehttp.NewClient()

	if c.httpClient != nil {
		httpClient := *c.httpClient
		transport.HTTPClient = &httpClient
	}

	if c.timeout > 0 {
		transport.HTTPClient.Timeout = c.timeout
	}

	transport.RetryMax = retryMax
	transport.RetryWaitMin = c.retryWaitMin
	transport.RetryWaitMax = c.retryWaitMax

	// Hand every received response back, whatever its status, so it can be
	// classified here instead of being turned into a generic give-up error.
	transport.ErrorHandler = retryablehttp.PassthroughErrorHandler

	transport.Logger = nil
	if c.logger != nil && c.debug {
		transport.Logger = &leveledLogger{logger: c.logger}
	}

	return transport
}

func (c *Client) transportFor(method string) *retryablehttp.Client {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return c.retrying
	default:
		return c.single
	}
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends the request and returns the response.
//
// A 2xx response is returned with a nil error. A response with status 400 or
// above is returned together with the typed error for its status. Any other
// status, a transport failure, or a failure building the request yields an
// unknown error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, minds.WrapError(minds.KindUnknown, unexpectedErrorPrefix+err.Error(), err)
	}

	c.logRequest(req)

	httpResp, err := c.transportFor(req.Method).Do(httpReq)
	if err != nil {
		c.logFailure(req, err)

		return nil, minds.WrapError(minds.KindUnknown, noResponseMessage, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.logFailure(req, err)

		return nil, minds.WrapError(minds.KindUnknown, noResponseMessage, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	c.logResponse(req, resp)

	return resp, checkResponse(resp)
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	if req == nil {
		return nil, errNilRequest
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		body = encoded
	}

	var payload interface{}
	if body != nil {
		payload = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, payload)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.credentials != nil {
		c.credentials.Apply(httpReq.Request)
	}

	return httpReq, nil
}

// checkResponse classifies a received response.
func checkResponse(resp *Response) error {
	switch {
	case resp.StatusCode >= constants.HTTPStatusOK && resp.StatusCode < constants.HTTPStatusMultipleChoices:
		return nil
	case resp.StatusCode >= constants.HTTPStatusBadRequest:
		return minds.ErrorFromStatus(resp.StatusCode, errorMessage(resp))
	default:
		return minds.NewError(minds.KindUnknown, fmt.Sprintf(unexpectedStatusMessage, resp.StatusCode))
	}
}

// errorMessage prefers the message field of a JSON error body and falls back
// to the status text.
func errorMessage(resp *Response) string {
	var payload struct {
		Message string `json:"message"`
	}

	if !resp.Empty() && json.Unmarshal(resp.Body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}

	return http.StatusText(resp.StatusCode)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

func (c *Client) logRequest(req *Request) {
	if c.logger == nil || !c.debug {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"path":   req.Path,
	})
}

func (c *Client) logResponse(req *Request, resp *Response) {
	if c.logger == nil || !c.debug {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"path":        req.Path,
		"status_code": resp.StatusCode,
	})
}

func (c *Client) logFailure(req *Request, err error) {
	if c.logger == nil || !c.debug {
		return
	}

	c.logger.Error("HTTP Request Failed", map[string]interface{}{
		"method": req.Method,
		"path":   req.Path,
		"error":  err.Error(),
	})
}
