package graphqlclient

// DataFetchingPolicy decides how the client consults the response cache
// for a request.
type DataFetchingPolicy int

const (
	// CacheFirst serves a cached response when one exists and falls back
	// to the network otherwise.
	CacheFirst DataFetchingPolicy = iota
	// NetworkOnly always goes to the network and never reads or writes
	// the cache.
	NetworkOnly
)

func (p DataFetchingPolicy) String() string {
	switch p {
	case CacheFirst:
		return "CACHE_FIRST"
	case NetworkOnly:
		return "NETWORK_ONLY"
	default:
		return "UNKNOWN"
	}
}

// CachingStrategy names the cache a request should use and how to use it.
// It is read by the cache layer only and deliberately excluded from
// request identity: it changes whether a cached entry is used, not what
// entry the request maps to.
type CachingStrategy struct {
	cacheName string
	policy    DataFetchingPolicy
}

// NewCachingStrategy returns a strategy targeting the default cache with
// the CacheFirst policy.
func NewCachingStrategy() *CachingStrategy {
	return &CachingStrategy{}
}

// WithCacheName selects the named cache this request should use.
func (s *CachingStrategy) WithCacheName(name string) *CachingStrategy {
	s.cacheName = name
	return s
}

// WithDataFetchingPolicy sets the fetch policy.
func (s *CachingStrategy) WithDataFetchingPolicy(policy DataFetchingPolicy) *CachingStrategy {
	s.policy = policy
	return s
}

// CacheName returns the target cache name, empty meaning the default cache.
func (s *CachingStrategy) CacheName() string { return s.cacheName }

// DataFetchingPolicy returns the fetch policy.
func (s *CachingStrategy) DataFetchingPolicy() DataFetchingPolicy { return s.policy }
