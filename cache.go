package graphqlclient

import (
	"sync"
	"time"
)

// InMemoryCache is a sharded fingerprint-keyed cache. Shards are picked by
// key hash; within a shard entries live in hash buckets resolved by
// RequestKey.Equal, so two keys that happen to share a hash still map to
// distinct entries. Expired entries are dropped on read; there is no
// eviction beyond TTL.
type InMemoryCache struct {
	shards    []*cacheShard
	numShards int
}

type cacheShard struct {
	mu      sync.Mutex
	buckets map[uint64][]cacheBucketEntry
}

type cacheBucketEntry struct {
	key   *RequestKey
	entry *CacheEntry
}

// NewInMemoryCache creates an empty cache with 16 shards.
func NewInMemoryCache() *InMemoryCache {
	numShards := 16
	shards := make([]*cacheShard, numShards)
	for i := range shards {
		shards[i] = &cacheShard{
			buckets: make(map[uint64][]cacheBucketEntry),
		}
	}
	return &InMemoryCache{
		shards:    shards,
		numShards: numShards,
	}
}

func (c *InMemoryCache) getShard(key *RequestKey) *cacheShard {
	return c.shards[key.Hash()%uint64(c.numShards)]
}

// Get returns the entry stored under a key equal to the given one.
func (c *InMemoryCache) Get(key *RequestKey) (*CacheEntry, bool) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	hash := key.Hash()
	bucket := shard.buckets[hash]
	for i, be := range bucket {
		if !be.key.Equal(key) {
			continue
		}
		if time.Now().After(be.entry.ExpiresAt) {
			shard.buckets[hash] = removeBucketEntry(bucket, i)
			return nil, false
		}
		return be.entry, true
	}
	return nil, false
}

// Set stores an entry, replacing any existing entry under an equal key.
func (c *InMemoryCache) Set(key *RequestKey, entry *CacheEntry, ttl time.Duration) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry.ExpiresAt = time.Now().Add(ttl)
	hash := key.Hash()
	bucket := shard.buckets[hash]
	for i, be := range bucket {
		if be.key.Equal(key) {
			bucket[i].entry = entry
			return
		}
	}
	shard.buckets[hash] = append(bucket, cacheBucketEntry{key: key, entry: entry})
}

// Delete removes the entry stored under an equal key, if any.
func (c *InMemoryCache) Delete(key *RequestKey) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	hash := key.Hash()
	bucket := shard.buckets[hash]
	for i, be := range bucket {
		if be.key.Equal(key) {
			if len(bucket) == 1 {
				delete(shard.buckets, hash)
			} else {
				shard.buckets[hash] = removeBucketEntry(bucket, i)
			}
			return
		}
	}
}

// Clear drops every entry.
func (c *InMemoryCache) Clear() {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.buckets = make(map[uint64][]cacheBucketEntry)
		shard.mu.Unlock()
	}
}

// Len returns the number of live entries across all shards. Expired but
// not yet collected entries are counted.
func (c *InMemoryCache) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.Lock()
		for _, bucket := range shard.buckets {
			total += len(bucket)
		}
		shard.mu.Unlock()
	}
	return total
}

func removeBucketEntry(bucket []cacheBucketEntry, i int) []cacheBucketEntry {
	bucket[i] = bucket[len(bucket)-1]
	bucket[len(bucket)-1] = cacheBucketEntry{}
	return bucket[:len(bucket)-1]
}
