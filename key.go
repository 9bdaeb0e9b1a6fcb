package graphqlclient

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
)

// RequestKey is the cache identity of an executed request: the Request
// paired with its RequestOptions. The cache and the deduplication tracker
// consume nothing else.
//
// A nil options pointer and a freshly constructed RequestOptions are the
// same identity, so callers that pass no options still share cache entries
// with callers that pass empty ones.
type RequestKey struct {
	request *Request
	options *RequestOptions

	hashOnce sync.Once
	hash     uint64
}

// NewRequestKey builds the fingerprint key for a request/options pair.
func NewRequestKey(request *Request, options *RequestOptions) *RequestKey {
	return &RequestKey{request: request, options: options}
}

// Request returns the request half of the key.
func (k *RequestKey) Request() *Request { return k.request }

// Options returns the options half of the key, possibly nil.
func (k *RequestKey) Options() *RequestOptions { return k.options }

// Equal reports whether other identifies the same request/options pair.
func (k *RequestKey) Equal(other *RequestKey) bool {
	if k == other {
		return true
	}
	if k == nil || other == nil {
		return false
	}
	if !k.request.Equal(other.request) {
		return false
	}
	return optionsOrDefault(k.options).Equal(optionsOrDefault(other.options))
}

// Hash combines the request and options fingerprints. Memoized: a key held
// by a cache entry never recomputes on lookup.
func (k *RequestKey) Hash() uint64 {
	k.hashOnce.Do(func() {
		var reqHash uint64
		if k.request != nil {
			reqHash = k.request.Hash()
		}
		var buf [16]byte
		binary.BigEndian.PutUint64(buf[:8], reqHash)
		binary.BigEndian.PutUint64(buf[8:], optionsOrDefault(k.options).Hash())
		h := fnv.New64a()
		h.Write(buf[:])
		k.hash = h.Sum64()
	})
	return k.hash
}
