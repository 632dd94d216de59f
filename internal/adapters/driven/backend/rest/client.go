// Package rest provides the HTTP adapter for the annotation backend.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driven"
	"github.com/knaw-huc/entity-annotator/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 4 << 10

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds configuration for the REST client.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api.
	BaseURL string

	// Timeout bounds every request (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests; 0 disables throttling.
	RequestsPerSecond float64

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient Doer
}

// ConfigFromSettings builds a client configuration from application settings.
func ConfigFromSettings(s domain.BackendSettings) Config {
	return Config{
		BaseURL:           s.URL,
		Timeout:           s.Timeout,
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

// Client talks to the annotation backend over HTTP.
type Client struct {
	http    Doer
	base    string
	limiter *RateLimiter
}

// NewClient creates a new REST client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBackendURL
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: %w", cfg.BaseURL, domain.ErrInvalidInput)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		http:    client,
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.base
}

// Statistics returns aggregate done/todo counts.
func (c *Client) Statistics(ctx context.Context) (domain.Summary, error) {
	var resp statisticsResponse
	if err := c.getJSON(ctx, "/statistics", &resp); err != nil {
		return domain.Summary{}, err
	}
	return domain.Summary{Done: resp.Done, Todo: resp.Todo}, nil
}

// RandomIndex returns the index of a backend-chosen mention. The body is a
// bare integer, optionally JSON-encoded.
func (c *Client) RandomIndex(ctx context.Context) (int, error) {
	body, err := c.getBody(ctx, "/randomindex")
	if err != nil {
		return 0, err
	}
	index, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return 0, fmt.Errorf("decode random index %q: %w", body, err)
	}
	return index, nil
}

// Item returns the mention at index as stored.
func (c *Client) Item(ctx context.Context, index int) (*domain.Mention, error) {
	var m domain.Mention
	if err := c.getJSON(ctx, itemPath(index), &m); err != nil {
		return nil, err
	}
	m.Index = index
	return &m, nil
}

// PutAnswer stores candidateID for the mention at index.
func (c *Client) PutAnswer(ctx context.Context, index int, candidateID string) error {
	resp, err := c.do(ctx, http.MethodPut, itemPath(index), strings.NewReader(candidateID), "text/plain; charset=utf-8")
	if err != nil {
		return err
	}
	defer drain(resp.Body)
	return nil
}

// Terms returns a page of terms by descending frequency.
func (c *Client) Terms(ctx context.Context, from, size int) (domain.Page[domain.TermFrequency], error) {
	var resp termsResponse
	if err := c.getJSON(ctx, "/terms"+window(from, size), &resp); err != nil {
		return domain.Page[domain.TermFrequency]{}, err
	}
	return domain.Page[domain.TermFrequency]{
		Offset: from,
		Size:   size,
		Total:  resp.Total,
		Items:  resp.Frequencies,
	}, nil
}

// TermOccurrences returns a page of the mentions grouped under term.
func (c *Client) TermOccurrences(
	ctx context.Context, term string, from, size int,
) (domain.Page[domain.Occurrence], error) {
	var resp occurrencesResponse
	if err := c.getJSON(ctx, "/terms/"+url.PathEscape(term)+window(from, size), &resp); err != nil {
		return domain.Page[domain.Occurrence]{}, err
	}
	return domain.Page[domain.Occurrence]{
		Offset: from,
		Size:   size,
		Total:  resp.Total,
		Items:  resp.Occurrences,
	}, nil
}

// Dump opens the export document. The caller must close it.
func (c *Client) Dump(ctx context.Context) (io.ReadCloser, error) {
	resp, err := c.do(ctx, http.MethodGet, "/dump", nil, "")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Save asks the backend to persist its state to disk.
func (c *Client) Save(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/save", nil, "")
	if err != nil {
		return err
	}
	defer drain(resp.Body)
	return nil
}

func (c *Client) getBody(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	defer drain(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.getBody(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// do sends a request and returns the response of a 2xx reply. Other
// replies are closed and returned as *StatusError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	logger.Debug("%s %s", method, req.URL)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			c.limiter.RecordRateLimitError(retryAfter(resp.Header))
		}
		statusErr := &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(text)),
		}
		logger.Warn("%v", statusErr)
		return nil, statusErr
	}
	return resp, nil
}

func itemPath(index int) string {
	return "/items/" + strconv.Itoa(index)
}

func window(from, size int) string {
	q := url.Values{}
	q.Set("from", strconv.Itoa(from))
	q.Set("size", strconv.Itoa(size))
	return "?" + q.Encode()
}

func retryAfter(h http.Header) int {
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil {
		return 0
	}
	return secs
}

func drain(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
