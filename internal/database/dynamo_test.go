package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, Classify(nil))
}

func TestClassify_ResourceNotFound(t *testing.T) {
	err := &types.ResourceNotFoundException{Message: strPtr("Requested resource not found")}
	assert.ErrorIs(t, Classify(err), ErrNotFound)
}

func TestClassify_ThroughputExceeded(t *testing.T) {
	err := &types.ProvisionedThroughputExceededException{Message: strPtr("rate exceeded")}
	assert.ErrorIs(t, Classify(err), ErrThroughput)
}

func TestClassify_WrappedError(t *testing.T) {
	inner := &types.ResourceNotFoundException{Message: strPtr("no table")}
	wrapped := fmt.Errorf("put item: %w", inner)
	assert.ErrorIs(t, Classify(wrapped), ErrNotFound)
}

func TestClassify_AccessDenied(t *testing.T) {
	err := &smithy.GenericAPIError{
		Code:    "AccessDeniedException",
		Message: "not authorized to perform dynamodb:PutItem",
	}
	assert.ErrorIs(t, Classify(err), ErrAccessDenied)
}

func TestClassify_Throttling(t *testing.T) {
	err := &smithy.GenericAPIError{Code: "ThrottlingException", Message: "slow down"}
	assert.ErrorIs(t, Classify(err), ErrThroughput)
}

func TestClassify_UnknownFallsBackToQuery(t *testing.T) {
	err := errors.New("connection reset")
	classified := Classify(err)
	assert.ErrorIs(t, classified, ErrQuery)
	assert.Contains(t, classified.Error(), "connection reset")
}

func strPtr(s string) *string { return &s }
