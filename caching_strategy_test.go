package graphqlclient

import "testing"

func TestCachingStrategyDefaults(t *testing.T) {
	s := NewCachingStrategy()

	if s.CacheName() != "" {
		t.Errorf("Expected empty cache name, got %q", s.CacheName())
	}
	if s.DataFetchingPolicy() != CacheFirst {
		t.Errorf("Expected CacheFirst default, got %v", s.DataFetchingPolicy())
	}
}

func TestCachingStrategyFluentConfiguration(t *testing.T) {
	s := NewCachingStrategy().
		WithCacheName("catalog").
		WithDataFetchingPolicy(NetworkOnly)

	if s.CacheName() != "catalog" {
		t.Errorf("Expected cache name 'catalog', got %q", s.CacheName())
	}
	if s.DataFetchingPolicy() != NetworkOnly {
		t.Errorf("Expected NetworkOnly, got %v", s.DataFetchingPolicy())
	}
}

func TestDataFetchingPolicyString(t *testing.T) {
	tests := []struct {
		policy DataFetchingPolicy
		want   string
	}{
		{CacheFirst, "CACHE_FIRST"},
		{NetworkOnly, "NETWORK_ONLY"},
		{DataFetchingPolicy(99), "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.policy.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}
