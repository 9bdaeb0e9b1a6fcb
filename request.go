package graphqlclient

import (
	"bytes"
	"encoding/json"
	"hash/fnv"
	"sync"
)

// Request is a GraphQL query with an optional operation name and variables.
//
// Like RequestOptions it is a fingerprintable value: two requests with the
// same query, operation name and logically equal variables are the same
// cache key, regardless of variable map insertion order. Variables are
// canonicalized through JSON marshaling (object keys come out sorted), so
// identity never depends on map iteration order.
type Request struct {
	query         string
	operationName string
	variables     map[string]any

	canonOnce sync.Once
	canonVars []byte

	hashOnce sync.Once
	hash     uint64
}

// NewRequest returns a request for the given query document.
func NewRequest(query string) *Request {
	return &Request{query: query}
}

// WithOperationName selects the operation to execute when the query
// document defines more than one.
func (r *Request) WithOperationName(name string) *Request {
	r.operationName = name
	return r
}

// WithVariables sets the query variables.
func (r *Request) WithVariables(variables map[string]any) *Request {
	r.variables = variables
	return r
}

// Query returns the query document.
func (r *Request) Query() string { return r.query }

// OperationName returns the selected operation name, if any.
func (r *Request) OperationName() string { return r.operationName }

// Variables returns the query variables, nil when none were set.
func (r *Request) Variables() map[string]any { return r.variables }

// canonicalVariables returns a deterministic byte form of the variables.
// Nil and empty maps canonicalize identically. Variables that cannot be
// marshaled are treated as empty rather than raising; identity stays
// total and error-free.
func (r *Request) canonicalVariables() []byte {
	r.canonOnce.Do(func() {
		if len(r.variables) == 0 {
			return
		}
		data, err := json.Marshal(r.variables)
		if err != nil {
			return
		}
		r.canonVars = data
	})
	return r.canonVars
}

// Equal reports whether other describes the same GraphQL request.
func (r *Request) Equal(other *Request) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	if r.query != other.query || r.operationName != other.operationName {
		return false
	}
	return bytes.Equal(r.canonicalVariables(), other.canonicalVariables())
}

// Hash returns a memoized fingerprint consistent with Equal.
func (r *Request) Hash() uint64 {
	r.hashOnce.Do(func() {
		h := fnv.New64a()
		h.Write([]byte(r.query))
		h.Write([]byte{0})
		h.Write([]byte(r.operationName))
		h.Write([]byte{0})
		h.Write(r.canonicalVariables())
		r.hash = h.Sum64()
	})
	return r.hash
}
