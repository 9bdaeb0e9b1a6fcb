package graphqlclient

import (
	"fmt"
	"testing"
	"time"
)

func testKey(sku string, headers ...Header) *RequestKey {
	req := NewRequest(productQuery).WithVariables(map[string]any{"sku": sku})
	opts := NewRequestOptions().WithHTTPMethod(MethodGet).WithHeaders(headers)
	return NewRequestKey(req, opts)
}

func TestNewInMemoryCache(t *testing.T) {
	cache := NewInMemoryCache()

	if cache == nil {
		t.Fatal("NewInMemoryCache() returned nil")
	}
	if len(cache.shards) != cache.numShards {
		t.Errorf("Expected %d shards, got %d", cache.numShards, len(cache.shards))
	}
}

func TestInMemoryCacheGetSet(t *testing.T) {
	cache := NewInMemoryCache()
	key := testKey("24-MB01", Header{Name: "Store", Value: "default"})

	if _, found := cache.Get(key); found {
		t.Error("Expected miss for empty cache")
	}

	cache.Set(key, &CacheEntry{Body: []byte(`{"data":{}}`)}, time.Hour)

	entry, found := cache.Get(key)
	if !found {
		t.Fatal("Expected hit for stored key")
	}
	if string(entry.Body) != `{"data":{}}` {
		t.Errorf("Unexpected body %q", entry.Body)
	}
}

func TestInMemoryCacheEqualKeysShareEntry(t *testing.T) {
	cache := NewInMemoryCache()

	stored := testKey("24-MB01",
		Header{Name: "Store", Value: "default"},
		Header{Name: "Accept", Value: "application/json"})
	lookup := testKey("24-MB01",
		Header{Name: "Accept", Value: "application/json"},
		Header{Name: "Store", Value: "default"})

	cache.Set(stored, &CacheEntry{Body: []byte("cached")}, time.Hour)

	entry, found := cache.Get(lookup)
	if !found {
		t.Fatal("Expected a key with reordered headers to hit the same entry")
	}
	if string(entry.Body) != "cached" {
		t.Errorf("Unexpected body %q", entry.Body)
	}
}

func TestInMemoryCacheDistinctKeys(t *testing.T) {
	cache := NewInMemoryCache()

	get := testKey("24-MB01")
	post := NewRequestKey(get.Request(), NewRequestOptions().WithHTTPMethod(MethodPost))

	cache.Set(get, &CacheEntry{Body: []byte("get")}, time.Hour)

	if _, found := cache.Get(post); found {
		t.Error("Expected different method to miss")
	}
}

func TestInMemoryCacheReplace(t *testing.T) {
	cache := NewInMemoryCache()
	key := testKey("24-MB01")

	cache.Set(key, &CacheEntry{Body: []byte("old")}, time.Hour)
	cache.Set(testKey("24-MB01"), &CacheEntry{Body: []byte("new")}, time.Hour)

	entry, found := cache.Get(key)
	if !found {
		t.Fatal("Expected hit")
	}
	if string(entry.Body) != "new" {
		t.Errorf("Expected replaced entry, got %q", entry.Body)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected a single entry after replace, got %d", cache.Len())
	}
}

func TestInMemoryCacheExpiry(t *testing.T) {
	cache := NewInMemoryCache()
	key := testKey("24-MB01")

	cache.Set(key, &CacheEntry{Body: []byte("stale")}, -time.Second)

	if _, found := cache.Get(key); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestInMemoryCacheDelete(t *testing.T) {
	cache := NewInMemoryCache()
	key := testKey("24-MB01")

	cache.Set(key, &CacheEntry{Body: []byte("x")}, time.Hour)
	cache.Delete(testKey("24-MB01"))

	if _, found := cache.Get(key); found {
		t.Error("Expected miss after delete")
	}

	// deleting a missing key is a no-op
	cache.Delete(testKey("not-there"))
}

func TestInMemoryCacheClear(t *testing.T) {
	cache := NewInMemoryCache()

	for i := 0; i < 20; i++ {
		cache.Set(testKey(fmt.Sprintf("sku-%d", i)), &CacheEntry{Body: []byte("x")}, time.Hour)
	}
	if cache.Len() != 20 {
		t.Fatalf("Expected 20 entries, got %d", cache.Len())
	}

	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d entries", cache.Len())
	}
}

func TestInMemoryCacheCollidingHashesResolvedByEqual(t *testing.T) {
	cache := NewInMemoryCache()
	a := testKey("24-MB01")
	b := testKey("24-WB02")

	// Plant both keys in a's bucket as if their hashes collided. Lookups
	// must resolve entries by Equal, never by hash alone.
	shard := cache.getShard(a)
	hash := a.Hash()
	expires := time.Now().Add(time.Hour)
	shard.mu.Lock()
	shard.buckets[hash] = append(shard.buckets[hash],
		cacheBucketEntry{key: b, entry: &CacheEntry{Body: []byte("B"), ExpiresAt: expires}},
		cacheBucketEntry{key: a, entry: &CacheEntry{Body: []byte("A"), ExpiresAt: expires}},
	)
	shard.mu.Unlock()

	entry, found := cache.Get(a)
	if !found {
		t.Fatal("Expected hit for key sharing a bucket")
	}
	if string(entry.Body) != "A" {
		t.Errorf("Expected entry A, got %q", entry.Body)
	}

	cache.Set(a, &CacheEntry{Body: []byte("A2")}, time.Hour)

	entry, found = cache.Get(a)
	if !found || string(entry.Body) != "A2" {
		t.Error("Expected Set to replace only the Equal entry in the bucket")
	}

	cache.Delete(a)

	if _, found := cache.Get(a); found {
		t.Error("Expected miss for deleted key")
	}
	shard.mu.Lock()
	bucket := shard.buckets[hash]
	shard.mu.Unlock()
	if len(bucket) != 1 || !bucket[0].key.Equal(b) {
		t.Errorf("Expected the colliding neighbor to survive Delete, bucket has %d entries", len(bucket))
	}
	if string(bucket[0].entry.Body) != "B" {
		t.Errorf("Expected neighbor entry B untouched, got %q", bucket[0].entry.Body)
	}
}

func TestInMemoryCacheManyKeys(t *testing.T) {
	cache := NewInMemoryCache()

	for i := 0; i < 200; i++ {
		sku := fmt.Sprintf("sku-%d", i)
		cache.Set(testKey(sku), &CacheEntry{Body: []byte(sku)}, time.Hour)
	}

	for i := 0; i < 200; i++ {
		sku := fmt.Sprintf("sku-%d", i)
		entry, found := cache.Get(testKey(sku))
		if !found {
			t.Fatalf("Expected hit for %s", sku)
		}
		if string(entry.Body) != sku {
			t.Errorf("Key %s resolved to body %q", sku, entry.Body)
		}
	}
}
