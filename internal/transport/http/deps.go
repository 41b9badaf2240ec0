package http

import (
	"github.com/go-accounts-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-accounts-api/internal/infrastructure/jwt"
	"github.com/go-accounts-api/internal/infrastructure/smtp"
	"github.com/go-accounts-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	RoleRepo         *dynamo.RoleRepo
	PhoneRepo        *dynamo.PhoneNumberRepo
	ConfirmationRepo *dynamo.ConfirmationRepo
	SessionRepo      *dynamo.SessionRepo
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender // nil when SNS is unavailable
	JWTProvider      *jwtinfra.Provider
}
