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

// PhoneNumberRepo provides typed DynamoDB operations for the phone_numbers table.
type PhoneNumberRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPhoneNumberRepo(client *dynamodb.Client, tableName string) *PhoneNumberRepo {
	return &PhoneNumberRepo{client: client, tableName: tableName}
}

func (r *PhoneNumberRepo) Put(ctx context.Context, p *domain.PhoneNumber) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal phone number: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// GetByUser looks up the user's phone number via the user_id GSI.
func (r *PhoneNumberRepo) GetByUser(ctx context.Context, userID string) (*domain.PhoneNumber, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "user_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: userID}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("phone number not found: %w", domain.ErrNotFound)
	}
	var p domain.PhoneNumber
	if err := attributevalue.UnmarshalMap(out.Items[0], &p); err != nil {
		return nil, err
	}
	return &p, nil
}
