package graphqlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultCacheName is the cache used when a caching strategy does not name one.
const DefaultCacheName = "default"

// Client executes GraphQL requests over HTTP and layers response caching,
// in-flight request de-duplication, metrics and debug logging on top of the
// standard net/http Client. It is safe for concurrent use.
type Client struct {
	httpClient      *http.Client
	endpoint        string
	endpointLabel   string
	defaultMethod   HTTPMethod
	caches          map[string]Cache
	cacheTTL        time.Duration
	metrics         *MetricsCollector
	debug           *DebugConfig
	logger          Logger
	deduplication   *DeduplicationTracker
	validationError error
}

// New constructs a Client for the given GraphQL endpoint using the provided
// functional options. A best effort validation is performed; call IsValid /
// ValidationError for errors.
func New(endpoint string, options ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoint:      endpoint,
		defaultMethod: MethodPost,
		caches:        make(map[string]Cache),
		cacheTTL:      5 * time.Minute,
		debug:         DefaultDebugConfig(),
	}

	for _, option := range options {
		option(client)
	}

	client.endpointLabel = endpointLabel(endpoint)

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	return client
}

// ExecuteQuery executes a bare query with default options.
func (c *Client) ExecuteQuery(ctx context.Context, query string) (*Response, error) {
	return c.Execute(ctx, NewRequest(query), nil)
}

// Execute sends a GraphQL request and returns the decoded response
// envelope. opts may be nil. GraphQL errors returned by the server are
// carried inside the Response; only transport, HTTP and decode failures
// surface as Go errors.
func (c *Client) Execute(ctx context.Context, req *Request, opts *RequestOptions) (*Response, error) {
	start := time.Now()
	method := c.resolveMethod(opts)

	var requestID string
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	if req == nil || req.Query() == "" {
		c.metrics.RecordError(ErrorTypeValidation, string(method), c.endpointLabel)
		return nil, c.createClientError(ErrorTypeValidation, "request has no query", ErrEmptyQuery, requestID, method, 0, time.Since(start))
	}

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("Starting request", "requestID", requestID, "method", method, "operation", req.OperationName(), "endpoint", c.endpointLabel)
	}

	c.metrics.RecordRequestStart(string(method), c.endpointLabel)
	defer c.metrics.RecordRequestEnd(string(method), c.endpointLabel)

	key := NewRequestKey(req, opts)

	if c.deduplication != nil {
		entry, owner := c.deduplication.GetOrCreateEntry(key)
		if !owner {
			if c.debug != nil && c.debug.Enabled && c.debug.LogDeduplication && c.logger != nil {
				c.logger.Debug("Deduplication hit", "requestID", requestID, "endpoint", c.endpointLabel)
			}
			c.metrics.RecordDeduplicationHit(string(method), c.endpointLabel)
			return entry.Wait(ctx)
		}

		resp, err := c.executeOnce(ctx, key, method, requestID, start)
		c.deduplication.Complete(key, resp, err)
		return resp, err
	}

	return c.executeOnce(ctx, key, method, requestID, start)
}

// executeOnce runs the cache lookup, the network round trip and the cache
// store for a single owning caller.
func (c *Client) executeOnce(ctx context.Context, key *RequestKey, method HTTPMethod, requestID string, start time.Time) (*Response, error) {
	req := key.Request()
	opts := key.Options()

	cache, cacheName := c.cacheForStrategy(optionsOrDefault(opts).CachingStrategy())

	if cache != nil {
		if entry, found := cache.Get(key); found {
			resp, err := decodeResponse(entry.Body, opts)
			if err == nil {
				if c.debug != nil && c.debug.Enabled && c.debug.LogCache && c.logger != nil {
					c.logger.Debug("Cache hit", "requestID", requestID, "cache", cacheName)
				}
				c.metrics.RecordCacheHit(string(method), cacheName)
				c.metrics.RecordRequest(string(method), c.endpointLabel, http.StatusOK, time.Since(start))
				resp.header = entry.Header
				return resp, nil
			}
			// a custom unmarshaler rejected the stored body, fall through
			// to the network
		}
		c.metrics.RecordCacheMiss(string(method), cacheName)
		if c.debug != nil && c.debug.Enabled && c.debug.LogCache && c.logger != nil {
			c.logger.Debug("Cache miss", "requestID", requestID, "cache", cacheName)
		}
	}

	httpReq, err := c.buildHTTPRequest(ctx, req, opts, method)
	if err != nil {
		c.metrics.RecordError(ErrorTypeValidation, string(method), c.endpointLabel)
		return nil, c.createClientError(ErrorTypeValidation, "building HTTP request failed", err, requestID, method, 0, time.Since(start))
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.RecordError(ErrorTypeNetwork, string(method), c.endpointLabel)
		return nil, c.createClientError(ErrorTypeNetwork, "network request failed", err, requestID, method, 0, time.Since(start))
	}

	body, err := io.ReadAll(httpResp.Body)
	_ = httpResp.Body.Close()
	if err != nil {
		c.metrics.RecordError(ErrorTypeNetwork, string(method), c.endpointLabel)
		return nil, c.createClientError(ErrorTypeNetwork, "reading response body failed", err, requestID, method, httpResp.StatusCode, time.Since(start))
	}

	duration := time.Since(start)
	c.metrics.RecordRequest(string(method), c.endpointLabel, httpResp.StatusCode, duration)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.metrics.RecordError(ErrorTypeHTTP, string(method), c.endpointLabel)
		return nil, c.createClientError(ErrorTypeHTTP, "unexpected HTTP status", nil, requestID, method, httpResp.StatusCode, duration)
	}

	resp, err := decodeResponse(body, opts)
	if err != nil {
		c.metrics.RecordError(ErrorTypeDecode, string(method), c.endpointLabel)
		return nil, c.createClientError(ErrorTypeDecode, "decoding response failed", err, requestID, method, httpResp.StatusCode, duration)
	}
	resp.header = httpResp.Header

	if cache != nil && !resp.HasErrors() {
		cache.Set(key, &CacheEntry{Body: body, Header: httpResp.Header.Clone()}, c.cacheTTL)

		if inMemoryCache, ok := cache.(*InMemoryCache); ok {
			c.metrics.RecordCacheSize(cacheName, inMemoryCache.Len())
		}

		if c.debug != nil && c.debug.Enabled && c.debug.LogCache && c.logger != nil {
			c.logger.Debug("Response cached", "requestID", requestID, "cache", cacheName, "ttl", c.cacheTTL)
		}
	}

	return resp, nil
}

// cacheForStrategy resolves the cache a strategy points at. A nil strategy
// or a NetworkOnly policy disables caching for the request.
func (c *Client) cacheForStrategy(strategy *CachingStrategy) (Cache, string) {
	if strategy == nil || strategy.DataFetchingPolicy() != CacheFirst {
		return nil, ""
	}
	name := strategy.CacheName()
	if name == "" {
		name = DefaultCacheName
	}
	return c.caches[name], name
}

func (c *Client) resolveMethod(opts *RequestOptions) HTTPMethod {
	if m := optionsOrDefault(opts).HTTPMethod(); m != "" {
		return m
	}
	return c.defaultMethod
}

type requestPayload struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// buildHTTPRequest shapes the transport call: POST carries a JSON body, GET
// URL-encodes the query, operation name and variables as query parameters.
func (c *Client) buildHTTPRequest(ctx context.Context, req *Request, opts *RequestOptions, method HTTPMethod) (*http.Request, error) {
	var httpReq *http.Request

	switch method {
	case MethodGet:
		u, err := url.Parse(c.endpoint)
		if err != nil {
			return nil, err
		}
		q := u.Query()
		q.Set("query", req.Query())
		if req.OperationName() != "" {
			q.Set("operationName", req.OperationName())
		}
		if len(req.Variables()) > 0 {
			variables, err := json.Marshal(req.Variables())
			if err != nil {
				return nil, err
			}
			q.Set("variables", string(variables))
		}
		u.RawQuery = q.Encode()

		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}

	default:
		body, err := json.Marshal(requestPayload{
			Query:         req.Query(),
			OperationName: req.OperationName(),
			Variables:     req.Variables(),
		})
		if err != nil {
			return nil, err
		}

		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpReq.Header.Set("Accept", "application/json")
	for _, h := range optionsOrDefault(opts).Headers() {
		httpReq.Header.Add(h.Name, h.Value)
	}

	return httpReq, nil
}

func (c *Client) createClientError(errorType, message string, cause error, requestID string, method HTTPMethod, statusCode int, duration time.Duration) *ClientError {
	return &ClientError{
		Type:       errorType,
		Message:    message,
		Cause:      cause,
		RequestID:  requestID,
		Method:     string(method),
		Endpoint:   c.endpointLabel,
		StatusCode: statusCode,
		Timestamp:  time.Now(),
		Duration:   duration,
	}
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

// Endpoint returns the configured GraphQL endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// endpointLabel reduces an endpoint URL to a low-cardinality host/path
// label for metrics and logs.
func endpointLabel(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "unknown"
	}

	var builder strings.Builder
	builder.WriteString(u.Host)

	if u.Path != "" && u.Path != "/" {
		builder.WriteString(u.Path)
	} else {
		builder.WriteByte('/')
	}

	return builder.String()
}
