package dynamodb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	infradynamo "github.com/jhoicas/emart-api/internal/infrastructure/dynamodb"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.UpdateItemOutput)
	return out, args.Error(1)
}

func TestNext_IncrementoAtomico(t *testing.T) {
	client := new(mockClient)
	client.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		key, ok := in.Key["name"].(*types.AttributeValueMemberS)
		return ok && key.Value == "Transaction" &&
			aws.ToString(in.TableName) == "emart-sequences" &&
			aws.ToString(in.UpdateExpression) == "ADD seq :one" &&
			in.ReturnValues == types.ReturnValueUpdatedNew
	})).Return(&dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{
			"seq": &types.AttributeValueMemberN{Value: "42"},
		},
	}, nil).Once()

	repo := infradynamo.NewSequenceRepository(client, "emart-sequences")
	n, err := repo.Next(context.Background(), entity.EntityTransaction)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	client.AssertExpectations(t)
}

func TestNext_ErrorDelServicio_StorageUnavailable(t *testing.T) {
	client := new(mockClient)
	client.On("UpdateItem", mock.Anything, mock.Anything).
		Return(nil, errors.New("ProvisionedThroughputExceededException")).Once()

	repo := infradynamo.NewSequenceRepository(client, "emart-sequences")
	_, err := repo.Next(context.Background(), entity.EntityUser)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
}

func TestNext_RespuestaSinSeq_StorageUnavailable(t *testing.T) {
	client := new(mockClient)
	client.On("UpdateItem", mock.Anything, mock.Anything).
		Return(&dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{}}, nil).Once()

	repo := infradynamo.NewSequenceRepository(client, "emart-sequences")
	_, err := repo.Next(context.Background(), entity.EntityUser)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
}
