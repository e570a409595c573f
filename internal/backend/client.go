// Package backend talks to the food-ordering REST API.
package backend

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

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apperrors "foodcart/internal/errors"
)

// APIError is a non-2xx response or a transport failure.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

var _ apperrors.BackendError = (*APIError)(nil)

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("backend request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is makes 404 responses match apperrors.ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == apperrors.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Status returns the HTTP status, 0 for transport failures.
func (e *APIError) Status() int {
	return e.StatusCode
}

// BackendMessage returns the message or error field of the response body.
func (e *APIError) BackendMessage() string {
	return e.Message
}

// Client is a stateless wrapper around the backend base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a client with an instrumented transport. A zero timeout leaves
// the transport default in place.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}, log)
}

// NewWithHTTPClient creates a client around hc.
func NewWithHTTPClient(baseURL string, hc *http.Client, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log.With().Str("component", "backend").Logger(),
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	token  string
}

// do sends req and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn().Err(err).Str("method", req.method).Str("path", req.path).Msg("backend unreachable")
		return &APIError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
		c.log.Warn().
			Str("method", req.method).
			Str("path", req.path).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("backend error")
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}

// extractMessage pulls a human-readable message out of an error body.
func extractMessage(raw []byte) string {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// withFallback runs primary and, if it fails, alternate. The alternate error is
// returned when both fail.
func withFallback(primary, alternate func() error) error {
	if err := primary(); err == nil {
		return nil
	}
	return alternate()
}

func path(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return "/" + strings.Join(escaped, "/")
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
