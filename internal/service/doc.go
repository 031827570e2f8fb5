// Package service holds the business logic: scheme checking with result
// caching and request collapsing, and transcription validation/persistence.
package service
