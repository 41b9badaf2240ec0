package domain

// Role names seeded at bootstrap. Roles are managed outside this API; the
// registration flow only looks them up by name.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type Role struct {
	RoleID string `json:"id" dynamodbav:"role_id"`
	Name   string `json:"name" dynamodbav:"name"`
	Enable bool   `json:"enable" dynamodbav:"enable"`
}
