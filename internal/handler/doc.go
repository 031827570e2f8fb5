// Package handler contains the HTTP handlers and the mapping from service
// errors to RFC 9457 problem-details responses.
package handler
