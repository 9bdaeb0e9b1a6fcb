package graphqlclient

import (
	"net/http"
	"time"
)

// HTTPMethod selects the transport shape of a GraphQL request.
// Only GET and POST are supported by GraphQL endpoints.
type HTTPMethod string

const (
	// MethodGet sends the query, operation name and variables URL-encoded.
	MethodGet HTTPMethod = "GET"
	// MethodPost sends the request as a JSON body. This is the default.
	MethodPost HTTPMethod = "POST"
)

// Header is a single HTTP header name/value pair. Duplicate names are
// allowed; header order carries no meaning for request identity.
type Header struct {
	Name  string
	Value string
}

// Unmarshaler decodes a raw JSON response body. Provide one via
// RequestOptions.WithUnmarshaler when the default encoding/json behavior
// is not sufficient.
type Unmarshaler func(data []byte, v any) error

// CacheEntry is a cached GraphQL response body.
type CacheEntry struct {
	Body      []byte
	Header    http.Header
	ExpiresAt time.Time
}

// Cache stores responses keyed by request fingerprint. Implementations
// must treat keys that compare equal via RequestKey.Equal as the same
// entry regardless of pointer identity.
type Cache interface {
	Get(key *RequestKey) (*CacheEntry, bool)
	Set(key *RequestKey, entry *CacheEntry, ttl time.Duration)
	Delete(key *RequestKey)
	Clear()
}

// Option represents a client configuration option.
type Option func(*Client)
