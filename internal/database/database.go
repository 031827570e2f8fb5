// Package database provides the DynamoDB access layer.
//
// The narrow API interface covers exactly the DynamoDB operations the
// application performs, so repositories can be exercised against fakes.
// Standard errors classify AWS failures for the layers above:
//
//	if errors.Is(err, database.ErrThroughput) {
//	    // surface a retryable condition to the client
//	}
package database

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Standard errors for storage operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrConnection indicates a failure to configure or reach DynamoDB.
	ErrConnection = errors.New("storage connection error")

	// ErrNotFound indicates the table (or item) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrThroughput indicates provisioned throughput was exceeded.
	ErrThroughput = errors.New("throughput exceeded")

	// ErrAccessDenied indicates the credentials lack permission.
	ErrAccessDenied = errors.New("access denied")

	// ErrQuery indicates any other request failure.
	ErrQuery = errors.New("storage request error")
)

// API is the subset of the DynamoDB client used by this application.
// *dynamodb.Client satisfies it.
type API interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
}

// Config holds DynamoDB connection configuration
type Config struct {
	Region   string
	Endpoint string // optional, for local DynamoDB
}
