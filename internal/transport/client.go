package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simp-lee/forumclient/internal/domain"
)

const (
	apiPrefix      = "/api"
	defaultTimeout = 30 * time.Second
)

// TokenSource provides the bearer token injected into outgoing requests.
// The session store implements it.
type TokenSource interface {
	// Token returns the current access token, or "" when anonymous.
	Token() string
	// Clear drops the stored token. Called on HTTP 401.
	Clear()
}

// RequestOptions carries optional per-request settings.
type RequestOptions struct {
	Headers map[string]string
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Tokens    TokenSource
	Logger    *slog.Logger
}

// Client is the single HTTP transport all resource services share. It injects
// the bearer token when one is stored, sends cookies (credentials included),
// normalizes every failure mode into an APIError, and supports per-request
// and bulk cancellation keyed by method, endpoint and query.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	tokens    TokenSource
	logger    *slog.Logger

	mu       sync.Mutex
	nextID   uint64
	inflight map[string]inflightEntry
}

// inflightEntry ties a cancellable request to a unique id so a completed
// request only removes its own registry entry, not a superseding one.
type inflightEntry struct {
	id     uint64
	cancel context.CancelFunc
}

// New creates a Client. Tokens may be nil for an anonymous client.
// Panics if baseURL is empty.
func New(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		panic("transport.New: base URL must not be empty")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	// Cookie jar errors only occur with a non-nil PublicSuffixList.
	jar, _ := cookiejar.New(nil)

	return &Client{
		baseURL:   base,
		userAgent: opts.UserAgent,
		http:      &http.Client{Timeout: timeout, Jar: jar},
		tokens:    opts.Tokens,
		logger:    log,
		inflight:  make(map[string]inflightEntry),
	}
}

// Get performs a GET request. Empty query values are omitted.
func (c *Client) Get(ctx context.Context, endpoint string, query map[string]string, opts *RequestOptions) Result[json.RawMessage] {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, opts)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any, opts *RequestOptions) Result[json.RawMessage] {
	return c.do(ctx, http.MethodPost, endpoint, nil, body, opts)
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any, opts *RequestOptions) Result[json.RawMessage] {
	return c.do(ctx, http.MethodPut, endpoint, nil, body, opts)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, opts *RequestOptions) Result[json.RawMessage] {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, opts)
}

// Cancel aborts every in-flight request to the given method and endpoint,
// whatever its query. The aborted calls resolve to REQUEST_ABORTED results.
func (c *Client) Cancel(method, endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	base := requestKey(method, endpoint, nil)
	for key, entry := range c.inflight {
		if key == base || strings.HasPrefix(key, base+"?") {
			entry.cancel()
			delete(c.inflight, key)
		}
	}
}

// CancelAll aborts every in-flight request.
func (c *Client) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.inflight {
		entry.cancel()
		delete(c.inflight, key)
	}
}

func (c *Client) do(ctx context.Context, method, endpoint string, query map[string]string, body any, opts *RequestOptions) Result[json.RawMessage] {
	reqURL, err := c.buildURL(endpoint, query)
	if err != nil {
		return Fail[json.RawMessage](domain.NewAPIError(domain.CodeUnknown, "invalid endpoint: "+err.Error()))
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return Fail[json.RawMessage](domain.NewAPIError(domain.CodeUnknown, "encode request body: "+err.Error()))
		}
		reqBody = bytes.NewReader(encoded)
	}

	// A new request supersedes any in-flight request with the same key:
	// the old one is cancelled so a stale response can never win the race.
	ctx, cancel := context.WithCancel(ctx)
	key := requestKey(method, endpoint, query)
	c.mu.Lock()
	if prev, ok := c.inflight[key]; ok {
		prev.cancel()
	}
	c.nextID++
	reqID := c.nextID
	c.inflight[key] = inflightEntry{id: reqID, cancel: cancel}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		// Only remove our own entry; a superseding request may have
		// replaced it already.
		if current, ok := c.inflight[key]; ok && current.id == reqID {
			delete(c.inflight, key)
		}
		c.mu.Unlock()
		cancel()
	}()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return Fail[json.RawMessage](domain.NewAPIError(domain.CodeUnknown, "build request: "+err.Error()))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if opts != nil {
		for k, v := range opts.Headers {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			c.logger.Debug("request aborted",
				slog.String("method", method), slog.String("endpoint", endpoint))
			return Fail[json.RawMessage](domain.NewAPIError(domain.CodeAborted, "request was cancelled"))
		}
		c.logger.Warn("request failed",
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.Any("error", err))
		return Fail[json.RawMessage](domain.NewAPIError(domain.CodeNetworkError, "network error: "+err.Error()))
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return Fail[json.RawMessage](domain.NewAPIError(domain.CodeNetworkError, "read response: "+readErr.Error()))
	}
	if !json.Valid(raw) {
		// Non-JSON bodies are dropped; services only consume JSON.
		raw = nil
	}

	c.logger.Debug("request completed",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration))

	// 401 forces logout semantics: the stored token is cleared and callers
	// get a uniform UNAUTHORIZED error instead of the raw HTTP failure.
	if resp.StatusCode == http.StatusUnauthorized {
		if c.tokens != nil {
			c.tokens.Clear()
		}
		return Fail[json.RawMessage](&domain.APIError{
			Code:    domain.CodeUnauthorized,
			Message: domain.MessageFromBody(raw, "authentication required, please log in again"),
			Details: raw,
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Fail[json.RawMessage](domain.HTTPError(resp.StatusCode, raw))
	}

	return OK(json.RawMessage(raw))
}

// buildURL joins the base URL, the /api prefix, the endpoint, and the
// non-empty query values.
func (c *Client) buildURL(endpoint string, query map[string]string) (string, error) {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	u, err := url.Parse(c.baseURL + apiPrefix + endpoint)
	if err != nil {
		return "", err
	}

	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			if v == "" {
				continue
			}
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// requestKey identifies a request by method, endpoint and its canonical
// query string. Including the query keeps concurrent listings of the same
// endpoint with different filters from superseding each other.
func requestKey(method, endpoint string, query map[string]string) string {
	key := method + ":" + endpoint
	if len(query) > 0 {
		v := url.Values{}
		for k, val := range query {
			if val != "" {
				v.Set(k, val)
			}
		}
		if enc := v.Encode(); enc != "" {
			key += "?" + enc
		}
	}
	return key
}
