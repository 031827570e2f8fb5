// Package model defines the domain types, request/response shapes, and the
// RFC 9457 problem-details error model shared by the handler, service, and
// repository layers.
package model
