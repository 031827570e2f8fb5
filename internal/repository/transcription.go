package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/scriba/schema-api/internal/database"
	"github.com/scriba/schema-api/internal/model"
)

// tableKey is the hash key attribute of the transcription table.
const tableKey = "transcribeId"

// TranscriptionRepository handles transcription data access
type TranscriptionRepository struct {
	db    database.API
	table string

	// pollInterval controls how often table creation is re-checked; a test
	// override, defaults to one second.
	pollInterval time.Duration
}

// NewTranscriptionRepository creates a new transcription repository
func NewTranscriptionRepository(db database.API, table string) *TranscriptionRepository {
	return &TranscriptionRepository{
		db:           db,
		table:        table,
		pollInterval: time.Second,
	}
}

// EnsureTable creates the transcription table if it does not exist and waits
// until it is active. A table concurrently created elsewhere counts as
// success.
func (r *TranscriptionRepository) EnsureTable(ctx context.Context) error {
	out, err := r.db.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.table),
	})
	if err == nil {
		if out.Table != nil && out.Table.TableStatus == types.TableStatusActive {
			return nil
		}
		return r.waitForActive(ctx)
	}
	if classified := database.Classify(err); !errors.Is(classified, database.ErrNotFound) {
		return classified
	}

	_, err = r.db.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(r.table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(tableKey), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(tableKey), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return database.Classify(err)
		}
	}

	return r.waitForActive(ctx)
}

// waitForActive polls DescribeTable until the table reports ACTIVE.
func (r *TranscriptionRepository) waitForActive(ctx context.Context) error {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		out, err := r.db.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(r.table),
		})
		if err == nil && out.Table != nil && out.Table.TableStatus == types.TableStatusActive {
			return nil
		}
		if err != nil {
			if classified := database.Classify(err); !errors.Is(classified, database.ErrNotFound) {
				return classified
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for table %q: %w", r.table, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Put writes a transcription record. PutItem overwrites an existing record
// with the same transcribeId.
func (r *TranscriptionRepository) Put(ctx context.Context, tr *model.Transcription) error {
	item, err := attributevalue.MarshalMap(tr)
	if err != nil {
		return fmt.Errorf("marshal transcription %q: %w", tr.TranscribeID, err)
	}

	_, err = r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return database.Classify(err)
	}
	return nil
}
