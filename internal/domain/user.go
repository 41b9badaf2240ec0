package domain

import "time"

type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Username     string    `json:"username" dynamodbav:"username"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	FirstName    string    `json:"first_name" dynamodbav:"first_name"`
	LastName     string    `json:"last_name" dynamodbav:"last_name"`
	Consent      bool      `json:"consent" dynamodbav:"consent"`
	Timezone     string    `json:"timezone" dynamodbav:"timezone"`
	Roles        []Role    `json:"roles" dynamodbav:"roles"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

// AddRole attaches a role to the user in place. Duplicate role names are ignored.
func (u *User) AddRole(r Role) {
	for _, existing := range u.Roles {
		if existing.Name == r.Name {
			return
		}
	}
	u.Roles = append(u.Roles, r)
}

// PrimaryRole returns the name of the first assigned role, or an empty string.
func (u *User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0].Name
}

type RegisterRequest struct {
	Consent     bool   `json:"consent"`
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Username    string `json:"username" validate:"required"`
	Role        string `json:"role" validate:"required"`
}

// RegistrationResult is what a successful registration returns: the new user
// plus the pending confirmation record and the stored phone number.
type RegistrationResult struct {
	User                *User                `json:"user"`
	AccountConfirmation *AccountConfirmation `json:"account_confirmation"`
	PhoneNumber         *PhoneNumber         `json:"phone_number"`
}
