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

// RoleRepo provides typed DynamoDB operations for the roles table.
// Roles are seeded at bootstrap and looked up by name during registration.
type RoleRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRoleRepo(client *dynamodb.Client, tableName string) *RoleRepo {
	return &RoleRepo{client: client, tableName: tableName}
}

func (r *RoleRepo) Put(ctx context.Context, role *domain.Role) error {
	item, err := attributevalue.MarshalMap(role)
	if err != nil {
		return fmt.Errorf("marshal role: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *RoleRepo) Get(ctx context.Context, roleID string) (*domain.Role, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("role_id", roleID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("role not found: %w", domain.ErrNotFound)
	}
	var role domain.Role
	if err := attributevalue.UnmarshalMap(out.Item, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByName looks a role up via the name GSI.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("name-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "name"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: name}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("role %q not found: %w", name, domain.ErrNotFound)
	}
	var role domain.Role
	if err := attributevalue.UnmarshalMap(out.Items[0], &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) Scan(ctx context.Context) ([]domain.Role, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var roles []domain.Role
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}
