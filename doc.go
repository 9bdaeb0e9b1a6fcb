// Package graphqlclient executes GraphQL requests over HTTP with a
// fingerprint-keyed response cache:
//
//   - RequestOptions: per-request execution options (headers, HTTP method,
//     custom unmarshaler, caching strategy) with order-independent value
//     equality and a memoized hash
//   - Response caching keyed by request identity, with named caches and
//     per-request CachingStrategy directives
//   - Request de-duplication (merges concurrent identical in-flight requests)
//   - Prometheus metrics and lightweight structured debug logging
//
// Request identity is the heart of the package: two requests with the same
// query, variables, HTTP method and header content map to the same cache
// entry no matter how their headers were ordered or their builders chained.
// The unmarshaler and caching strategy are execution policy and never part
// of identity.
//
// Typical usage:
//
//	client := graphqlclient.New("https://api.example.com/graphql",
//	    graphqlclient.WithCache(5*time.Minute),
//	    graphqlclient.WithDeduplication(),
//	    graphqlclient.WithMetrics(),
//	)
//	opts := graphqlclient.NewRequestOptions().
//	    WithHTTPMethod(graphqlclient.MethodGet).
//	    WithHeader("Store", "default").
//	    WithCachingStrategy(graphqlclient.NewCachingStrategy())
//	resp, err := client.Execute(ctx, graphqlclient.NewRequest(query), opts)
//
// GraphQL errors returned by the server travel inside the Response; only
// transport, HTTP and decode failures surface as Go errors.
package graphqlclient
