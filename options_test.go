package graphqlclient

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

const testEndpoint = "https://api.example.com/graphql"

func TestNewDefaults(t *testing.T) {
	client := New(testEndpoint)

	if !client.IsValid() {
		t.Fatalf("Expected valid default configuration, got %v", client.ValidationError())
	}
	if client.defaultMethod != MethodPost {
		t.Errorf("Expected POST default method, got %s", client.defaultMethod)
	}
	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("Expected 30s default timeout, got %v", client.httpClient.Timeout)
	}
	if client.cacheTTL != 5*time.Minute {
		t.Errorf("Expected 5m default cache TTL, got %v", client.cacheTTL)
	}
	if len(client.caches) != 0 {
		t.Error("Expected no caches by default")
	}
	if client.Endpoint() != testEndpoint {
		t.Errorf("Expected endpoint to round-trip, got %q", client.Endpoint())
	}
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: 3 * time.Second}
	client := New(testEndpoint, WithHTTPClient(custom))

	if client.httpClient != custom {
		t.Error("Expected custom HTTP client to be set")
	}
}

func TestWithTimeout(t *testing.T) {
	client := New(testEndpoint, WithTimeout(7*time.Second))

	if client.httpClient.Timeout != 7*time.Second {
		t.Errorf("Expected timeout=7s, got %v", client.httpClient.Timeout)
	}
}

func TestWithDefaultHTTPMethod(t *testing.T) {
	client := New(testEndpoint, WithDefaultHTTPMethod(MethodGet))

	if client.defaultMethod != MethodGet {
		t.Errorf("Expected GET default method, got %s", client.defaultMethod)
	}
}

func TestWithCache(t *testing.T) {
	ttl := 10 * time.Minute
	client := New(testEndpoint, WithCache(ttl))

	if client.caches[DefaultCacheName] == nil {
		t.Fatal("Expected default cache to be set")
	}
	if client.cacheTTL != ttl {
		t.Errorf("Expected cacheTTL=%v, got %v", ttl, client.cacheTTL)
	}
}

func TestWithCustomCache(t *testing.T) {
	cache := NewInMemoryCache()
	client := New(testEndpoint, WithCustomCache(cache, time.Minute))

	if client.caches[DefaultCacheName] != Cache(cache) {
		t.Error("Expected custom cache to be installed as default")
	}
}

func TestWithNamedCache(t *testing.T) {
	cache := NewInMemoryCache()
	client := New(testEndpoint, WithNamedCache("catalog", cache))

	if client.caches["catalog"] != Cache(cache) {
		t.Error("Expected named cache to be installed")
	}
}

func TestWithDeduplication(t *testing.T) {
	client := New(testEndpoint, WithDeduplication())

	if client.deduplication == nil {
		t.Error("Expected deduplication tracker to be set")
	}
}

func TestWithLoggerAndDebug(t *testing.T) {
	logger := NewSimpleLogger()
	client := New(testEndpoint, WithDebug(), WithLogger(logger))

	if client.logger != Logger(logger) {
		t.Error("Expected logger to be set")
	}
	if client.debug == nil || !client.debug.Enabled {
		t.Error("Expected debug to be enabled")
	}
	if !client.IsValid() {
		t.Errorf("Expected valid configuration, got %v", client.ValidationError())
	}
}

func TestWithSimpleLogger(t *testing.T) {
	client := New(testEndpoint, WithSimpleLogger())

	if client.logger == nil {
		t.Error("Expected simple logger to be set")
	}
	if client.debug == nil || !client.debug.Enabled {
		t.Error("Expected debug to be enabled")
	}
}

func TestWithRequestIDGenerator(t *testing.T) {
	gen := func() string { return "fixed-id" }
	client := New(testEndpoint, WithRequestIDGenerator(gen))

	if client.debug.RequestIDGen() != "fixed-id" {
		t.Error("Expected custom request ID generator")
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		client  *Client
		wantErr string
	}{
		{"empty endpoint", New(""), "endpoint must not be empty"},
		{"bad scheme", New("ftp://example.com/graphql"), "scheme must be http or https"},
		{"no host", New("https:///graphql"), "must have a host"},
		{"nil http client", New(testEndpoint, WithHTTPClient(nil)), "HTTP client cannot be nil"},
		{"bad method", New(testEndpoint, WithDefaultHTTPMethod("PUT")), "must be GET or POST"},
		{"nil named cache", New(testEndpoint, WithNamedCache("x", nil)), "cannot be nil"},
		{"zero ttl with cache", New(testEndpoint, WithCache(0)), "cacheTTL must be positive"},
		{"excessive ttl", New(testEndpoint, WithCache(48 * time.Hour)), "stale data"},
		{"debug without logger", New(testEndpoint, WithDebug()), "logger must be set"},
	}

	for _, test := range tests {
		if test.client.IsValid() {
			t.Errorf("%s: expected invalid configuration", test.name)
			continue
		}
		if got := test.client.ValidationError().Error(); !strings.Contains(got, test.wantErr) {
			t.Errorf("%s: error %q does not mention %q", test.name, got, test.wantErr)
		}
	}
}

func TestValidationErrorWrapsInvalidEndpoint(t *testing.T) {
	client := New("ftp://example.com/graphql")
	if client.IsValid() {
		t.Fatal("Expected invalid configuration")
	}
	if !errors.Is(client.ValidationError(), ErrInvalidEndpoint) {
		t.Error("Expected endpoint failures to wrap ErrInvalidEndpoint")
	}

	other := New(testEndpoint, WithHTTPClient(nil))
	if other.IsValid() {
		t.Fatal("Expected invalid configuration")
	}
	if errors.Is(other.ValidationError(), ErrInvalidEndpoint) {
		t.Error("Expected non-endpoint failures not to wrap ErrInvalidEndpoint")
	}
}
