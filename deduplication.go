package graphqlclient

import (
	"context"
	"sync"
	"time"
)

// DeduplicationEntry represents an in-flight request shared between callers.
type DeduplicationEntry struct {
	response *Response
	err      error
	done     chan struct{}
	mu       sync.Mutex
	waiters  int
}

// DeduplicationTracker coalesces concurrent requests with equal
// fingerprints: the first caller owns the network round trip, later
// callers with an Equal RequestKey wait for its result. Keys live in hash
// buckets resolved by Equal, same as the cache.
type DeduplicationTracker struct {
	mu      sync.Mutex
	entries map[uint64][]dedupBucketEntry
}

type dedupBucketEntry struct {
	key   *RequestKey
	entry *DeduplicationEntry
}

// NewDeduplicationTracker returns an in-memory de-duplication tracker.
func NewDeduplicationTracker() *DeduplicationTracker {
	return &DeduplicationTracker{
		entries: make(map[uint64][]dedupBucketEntry),
	}
}

// GetOrCreateEntry returns an existing entry (not owner) or creates a new one (owner=true).
func (dt *DeduplicationTracker) GetOrCreateEntry(key *RequestKey) (*DeduplicationEntry, bool) {
	dt.mu.Lock()
	defer dt.mu.Unlock()

	hash := key.Hash()
	for _, be := range dt.entries[hash] {
		if be.key.Equal(key) {
			be.entry.mu.Lock()
			be.entry.waiters++
			be.entry.mu.Unlock()
			return be.entry, false
		}
	}

	entry := &DeduplicationEntry{
		done:    make(chan struct{}),
		waiters: 1,
	}
	dt.entries[hash] = append(dt.entries[hash], dedupBucketEntry{key: key, entry: entry})
	return entry, true
}

// Complete finalizes an entry and releases waiters. The entry lingers
// briefly so duplicates racing with completion still observe the result.
func (dt *DeduplicationTracker) Complete(key *RequestKey, resp *Response, err error) {
	dt.mu.Lock()
	var entry *DeduplicationEntry
	for _, be := range dt.entries[key.Hash()] {
		if be.key.Equal(key) {
			entry = be.entry
			break
		}
	}
	dt.mu.Unlock()

	if entry == nil {
		return
	}

	entry.mu.Lock()
	entry.response = resp
	entry.err = err
	close(entry.done)
	entry.mu.Unlock()

	time.AfterFunc(100*time.Millisecond, func() {
		dt.remove(key)
	})
}

func (dt *DeduplicationTracker) remove(key *RequestKey) {
	dt.mu.Lock()
	defer dt.mu.Unlock()

	hash := key.Hash()
	bucket := dt.entries[hash]
	for i, be := range bucket {
		if be.key.Equal(key) {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			if len(bucket) == 0 {
				delete(dt.entries, hash)
			} else {
				dt.entries[hash] = bucket
			}
			return
		}
	}
}

// Wait blocks until the owning request completes or context cancels.
func (entry *DeduplicationEntry) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-entry.done:
		entry.mu.Lock()
		resp := entry.response
		err := entry.err
		entry.mu.Unlock()
		return resp, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
