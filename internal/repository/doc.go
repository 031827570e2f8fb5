// Package repository implements data access for transcription records on
// DynamoDB, including first-run table bootstrap.
package repository
