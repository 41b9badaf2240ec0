package dynamo

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrKey(t *testing.T) {
	key := strKey("user_id", "abc")
	require.Len(t, key, 1)
	s, ok := key["user_id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "abc", s.Value)
}

func TestBuildUpdateExpr_SingleField(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{"status": true})
	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0", expr)
	assert.Equal(t, "status", names["#f0"])
	require.Len(t, values, 1)
}

func TestBuildUpdateExpr_MultipleFields(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		"status":      true,
		"verified_at": "2026-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Contains(t, expr, "SET ")
	assert.Contains(t, expr, ", ")
	assert.Len(t, names, 2)
	assert.Len(t, values, 2)
}

func TestBuildUpdateExpr_Empty(t *testing.T) {
	_, _, _, err := buildUpdateExpr(map[string]interface{}{})
	assert.Error(t, err)
}
