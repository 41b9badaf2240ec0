package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-accounts-api/internal/domain"
)

// ConfirmationRepo provides typed DynamoDB operations for the
// account_confirmations table. The token GSI is the primary lookup path; the
// code is checked alongside it so only the full (token, code) pair matches.
type ConfirmationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewConfirmationRepo(client *dynamodb.Client, tableName string) *ConfirmationRepo {
	return &ConfirmationRepo{client: client, tableName: tableName}
}

func (r *ConfirmationRepo) Put(ctx context.Context, c *domain.AccountConfirmation) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal confirmation: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// GetByTokenAndCode looks up a confirmation by its (token, code) pair via the
// token GSI. Returns ErrNotFound when no record matches both values.
func (r *ConfirmationRepo) GetByTokenAndCode(ctx context.Context, token, code string) (*domain.AccountConfirmation, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String("token-index"),
		KeyConditionExpression:   aws.String("#t = :t"),
		FilterExpression:         aws.String("code = :c"),
		ExpressionAttributeNames: map[string]string{"#t": "token"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: token},
			":c": &types.AttributeValueMemberS{Value: code},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("confirmation not found: %w", domain.ErrNotFound)
	}
	var c domain.AccountConfirmation
	if err := attributevalue.UnmarshalMap(out.Items[0], &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetLatestByUser returns the most recently created confirmation for a user,
// or ErrNotFound when the user has none.
func (r *ConfirmationRepo) GetLatestByUser(ctx context.Context, userID string) (*domain.AccountConfirmation, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-index"),
		KeyConditionExpression:    aws.String("#u = :u"),
		ExpressionAttributeNames:  map[string]string{"#u": "user_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": &types.AttributeValueMemberS{Value: userID}},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("confirmation not found: %w", domain.ErrNotFound)
	}
	var all []domain.AccountConfirmation
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &all); err != nil {
		return nil, err
	}
	latest := all[0]
	for _, c := range all[1:] {
		if c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	return &latest, nil
}

func (r *ConfirmationRepo) Update(ctx context.Context, confirmationID string, updates map[string]interface{}) error {
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("confirmation_id", confirmationID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *ConfirmationRepo) Delete(ctx context.Context, confirmationID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("confirmation_id", confirmationID),
	})
	return err
}
