package graphqlclient

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if c.httpClient != nil {
			c.httpClient.Timeout = d
		}
	}
}

// WithDefaultHTTPMethod sets the method used when RequestOptions carry none.
func WithDefaultHTTPMethod(method HTTPMethod) Option {
	return func(c *Client) {
		c.defaultMethod = method
	}
}

// WithCache enables response caching on the default cache with the given TTL.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		c.caches[DefaultCacheName] = NewInMemoryCache()
		c.cacheTTL = ttl
	}
}

// WithCustomCache installs a custom Cache implementation as the default cache.
func WithCustomCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.caches[DefaultCacheName] = cache
		c.cacheTTL = ttl
	}
}

// WithNamedCache installs a cache addressable by CachingStrategy.WithCacheName.
func WithNamedCache(name string, cache Cache) Option {
	return func(c *Client) {
		c.caches[name] = cache
	}
}

// WithCacheTTL sets the TTL applied when storing responses.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// WithDeduplication enables coalescing of identical in-flight requests.
func WithDeduplication() Option {
	return func(c *Client) {
		c.deduplication = NewDeduplicationTracker()
	}
}

// WithMetrics enables Prometheus metrics collection.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration.
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration.
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithLogger sets a custom logger for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a simple console logger.
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// ValidateConfiguration validates the client configuration and returns an error if invalid.
func (c *Client) ValidateConfiguration() error {
	endpointErrors := c.validateEndpointConfig()

	errors := endpointErrors
	errors = append(errors, c.validateHTTPClientConfig()...)
	errors = append(errors, c.validateMethodConfig()...)
	errors = append(errors, c.validateCacheConfig()...)
	errors = append(errors, c.validateDebugConfig()...)

	if len(errors) > 0 {
		cause := fmt.Errorf("validation errors: %v", errors)
		if len(endpointErrors) > 0 {
			cause = fmt.Errorf("%w: %v", ErrInvalidEndpoint, errors)
		}
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   cause,
		}
	}

	return nil
}

// validateEndpointConfig validates the endpoint URL.
func (c *Client) validateEndpointConfig() []string {
	var errors []string

	if c.endpoint == "" {
		errors = append(errors, "endpoint must not be empty")
		return errors
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		errors = append(errors, fmt.Sprintf("endpoint is not a valid URL: %v", err))
		return errors
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, "endpoint scheme must be http or https")
	}
	if u.Host == "" {
		errors = append(errors, "endpoint must have a host")
	}

	return errors
}

// validateHTTPClientConfig validates HTTP client configuration.
func (c *Client) validateHTTPClientConfig() []string {
	var errors []string

	if c.httpClient == nil {
		errors = append(errors, "HTTP client cannot be nil")
	} else if c.httpClient.Timeout < 0 {
		errors = append(errors, "HTTP client timeout must be non-negative")
	}

	return errors
}

// validateMethodConfig validates the default HTTP method.
func (c *Client) validateMethodConfig() []string {
	var errors []string

	if c.defaultMethod != MethodGet && c.defaultMethod != MethodPost {
		errors = append(errors, "default HTTP method must be GET or POST")
	}

	return errors
}

// validateCacheConfig validates cache configuration.
func (c *Client) validateCacheConfig() []string {
	var errors []string

	for name, cache := range c.caches {
		if cache == nil {
			errors = append(errors, fmt.Sprintf("cache %q cannot be nil", name))
		}
	}
	if len(c.caches) > 0 && c.cacheTTL <= 0 {
		errors = append(errors, "cacheTTL must be positive when caching is enabled")
	}
	if c.cacheTTL > 24*time.Hour {
		errors = append(errors, "cacheTTL > 24h may cause stale data issues")
	}

	return errors
}

// validateDebugConfig validates debug configuration.
func (c *Client) validateDebugConfig() []string {
	var errors []string

	if c.debug != nil && c.debug.Enabled {
		if c.debug.RequestIDGen == nil {
			errors = append(errors, "debug RequestIDGen must be set when debug is enabled")
		}
		if c.logger == nil {
			errors = append(errors, "logger must be set when debug is enabled")
		}
	}

	return errors
}
