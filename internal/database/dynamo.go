package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// Dynamo wraps the DynamoDB client with connection lifecycle management
type Dynamo struct {
	client *dynamodb.Client
	config Config
}

// NewDynamo creates a new Dynamo instance
func NewDynamo(cfg Config) *Dynamo {
	return &Dynamo{config: cfg}
}

// Connect loads AWS configuration and builds the DynamoDB client.
// Credentials are resolved through the default chain (env vars in the
// container); only region and the optional endpoint come from config.
func (d *Dynamo) Connect(ctx context.Context) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(d.config.Region),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	d.client = dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if d.config.Endpoint != "" {
			o.BaseEndpoint = aws.String(d.config.Endpoint)
		}
	})
	return nil
}

// Close releases the client. The SDK client is connectionless, so this only
// drops the reference.
func (d *Dynamo) Close() error {
	d.client = nil
	return nil
}

// Ping verifies the client can reach DynamoDB
func (d *Dynamo) Ping(ctx context.Context) error {
	if d.client == nil {
		return ErrConnection
	}
	_, err := d.client.ListTables(ctx, &dynamodb.ListTablesInput{
		Limit: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, Classify(err))
	}
	return nil
}

// Client returns the underlying DynamoDB client
func (d *Dynamo) Client() API {
	return d.client
}

// Classify maps an AWS SDK error onto the package's sentinel errors,
// preserving the original message.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, notFound.ErrorMessage())
	}

	var throughput *types.ProvisionedThroughputExceededException
	if errors.As(err, &throughput) {
		return fmt.Errorf("%w: %s", ErrThroughput, throughput.ErrorMessage())
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "UnrecognizedClientException":
			return fmt.Errorf("%w: %s", ErrAccessDenied, apiErr.ErrorMessage())
		case "ResourceNotFoundException":
			return fmt.Errorf("%w: %s", ErrNotFound, apiErr.ErrorMessage())
		case "ProvisionedThroughputExceededException", "ThrottlingException":
			return fmt.Errorf("%w: %s", ErrThroughput, apiErr.ErrorMessage())
		}
	}

	return fmt.Errorf("%w: %v", ErrQuery, err)
}
