// Package middleware provides the HTTP middleware chain: request IDs,
// structured request logging, panic recovery, CORS, per-client rate limiting,
// and gzip compression.
package middleware
