// Package dynamodb implementa el contador de secuencias sobre una tabla DynamoDB.
// Es la alternativa a la tabla sequences de Postgres cuando SEQUENCE_DRIVER=dynamodb.
package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// UpdateItemAPI subconjunto del cliente DynamoDB que usa el contador.
type UpdateItemAPI interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// SequenceRepo contador atómico: una fila por tipo de entidad con clave "name" y atributo numérico "seq".
type SequenceRepo struct {
	client UpdateItemAPI
	table  string
}

// NewSequenceRepository construye el contador sobre la tabla dada.
func NewSequenceRepository(client UpdateItemAPI, table string) *SequenceRepo {
	return &SequenceRepo{client: client, table: table}
}

type sequenceItem struct {
	Seq int64 `dynamodbav:"seq"`
}

// Next usa ADD, que crea el atributo en 0 si no existe y suma 1 en el servidor.
func (r *SequenceRepo) Next(ctx context.Context, name entity.EntityType) (int64, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: string(name)},
		},
		UpdateExpression: aws.String("ADD seq :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w: %w", name, domain.ErrStorageUnavailable, err)
	}
	var item sequenceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return 0, fmt.Errorf("decode sequence %s: %w: %w", name, domain.ErrStorageUnavailable, err)
	}
	if item.Seq <= 0 {
		return 0, fmt.Errorf("next sequence %s: %w: respuesta sin seq", name, domain.ErrStorageUnavailable)
	}
	return item.Seq, nil
}
