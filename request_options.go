package graphqlclient

import (
	"hash/fnv"
	"sort"
	"sync"
)

// RequestOptions carries per-request execution options: a custom response
// unmarshaler, HTTP headers, the HTTP method and a caching strategy.
//
// Two RequestOptions with the same method and the same multiset of header
// pairs are interchangeable as cache keys: Equal ignores header order, the
// unmarshaler and the caching strategy. Those last two are execution policy,
// not request identity, so requests that differ only there collapse to the
// same cached entry.
//
// The hash is memoized on first use. Configure an instance fully before
// handing it to the client or a cache; it is frozen from that point on.
type RequestOptions struct {
	unmarshaler     Unmarshaler
	headers         []Header
	httpMethod      HTTPMethod
	cachingStrategy *CachingStrategy

	hashOnce sync.Once
	hash     uint64
}

// shared stand-in for nil options when composing cache keys
var noOptions = &RequestOptions{}

// NewRequestOptions returns an empty options bag ready for fluent
// configuration.
func NewRequestOptions() *RequestOptions {
	return &RequestOptions{}
}

// WithUnmarshaler sets a custom unmarshaler for the JSON response. Only
// needed when the response cannot be decoded by encoding/json as-is.
func (o *RequestOptions) WithUnmarshaler(u Unmarshaler) *RequestOptions {
	o.unmarshaler = u
	return o
}

// WithHeaders sets the HTTP headers sent with the request. Duplicates are
// kept, nothing is deduplicated.
func (o *RequestOptions) WithHeaders(headers []Header) *RequestOptions {
	o.headers = headers
	return o
}

// WithHeader appends a single header pair.
func (o *RequestOptions) WithHeader(name, value string) *RequestOptions {
	o.headers = append(o.headers, Header{Name: name, Value: value})
	return o
}

// WithHTTPMethod sets the HTTP method, either MethodGet or MethodPost.
// With MethodGet the client URL-encodes the query, operation name and
// variables instead of sending a body.
func (o *RequestOptions) WithHTTPMethod(method HTTPMethod) *RequestOptions {
	o.httpMethod = method
	return o
}

// WithCachingStrategy sets the caching directive consumed by the cache
// layer. It does not participate in request identity.
func (o *RequestOptions) WithCachingStrategy(strategy *CachingStrategy) *RequestOptions {
	o.cachingStrategy = strategy
	return o
}

// Unmarshaler returns the custom unmarshaler, or nil for the default.
func (o *RequestOptions) Unmarshaler() Unmarshaler { return o.unmarshaler }

// Headers returns the configured header pairs in insertion order.
func (o *RequestOptions) Headers() []Header { return o.headers }

// HTTPMethod returns the configured method, or the empty string when unset.
func (o *RequestOptions) HTTPMethod() HTTPMethod { return o.httpMethod }

// CachingStrategy returns the caching directive, or nil when unset.
func (o *RequestOptions) CachingStrategy() *CachingStrategy { return o.cachingStrategy }

// Equal reports whether other carries the same request identity: the same
// method and the same multiset of header pairs. Nil and empty header sets
// are the same thing. The unmarshaler and caching strategy are never
// compared.
func (o *RequestOptions) Equal(other *RequestOptions) bool {
	if o == other {
		return true
	}
	if o == nil || other == nil {
		return false
	}
	if o.httpMethod != other.httpMethod {
		return false
	}
	if len(o.headers) == 0 && len(other.headers) == 0 {
		return true
	}
	if len(o.headers) == 0 || len(other.headers) == 0 {
		return false
	}
	if len(o.headers) != len(other.headers) {
		return false
	}
	a := sortedHeaders(o.headers)
	b := sortedHeaders(other.headers)
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

// Hash returns a fingerprint consistent with Equal: equal options hash
// alike no matter how their headers were ordered. The value is computed
// once and reused, which keeps repeated cache lookups cheap and makes
// concurrent first calls safe.
func (o *RequestOptions) Hash() uint64 {
	o.hashOnce.Do(func() {
		h := fnv.New64a()
		h.Write([]byte(o.httpMethod))
		h.Write([]byte{0})
		// nil and empty header sets fold identically: no contribution.
		for _, hdr := range sortedHeaders(o.headers) {
			h.Write([]byte(hdr.Name))
			h.Write([]byte{0})
			h.Write([]byte(hdr.Value))
			h.Write([]byte{0})
		}
		o.hash = h.Sum64()
	})
	return o.hash
}

// sortedHeaders returns a copy ordered by name then value, the total order
// both Equal and Hash rely on.
func sortedHeaders(headers []Header) []Header {
	if len(headers) == 0 {
		return nil
	}
	sorted := make([]Header, len(headers))
	copy(sorted, headers)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Value < sorted[j].Value
	})
	return sorted
}

func optionsOrDefault(o *RequestOptions) *RequestOptions {
	if o == nil {
		return noOptions
	}
	return o
}
