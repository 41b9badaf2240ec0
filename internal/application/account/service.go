package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-accounts-api/internal/domain"
	"github.com/go-accounts-api/internal/pkg/id"
	"github.com/go-accounts-api/internal/pkg/phone"
	pkgtoken "github.com/go-accounts-api/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldRoles      = "roles"
	fieldStatus     = "status"
	fieldVerifiedAt = "verified_at"
)

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegistrationResult, error)
	Confirm(ctx context.Context, token, code string) (*domain.AccountConfirmation, error)
	ResendConfirmation(ctx context.Context, email string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type roleStore interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}

type phoneStore interface {
	Put(ctx context.Context, p *domain.PhoneNumber) error
	GetByUser(ctx context.Context, userID string) (*domain.PhoneNumber, error)
}

type confirmationStore interface {
	Put(ctx context.Context, c *domain.AccountConfirmation) error
	GetByTokenAndCode(ctx context.Context, token, code string) (*domain.AccountConfirmation, error)
	GetLatestByUser(ctx context.Context, userID string) (*domain.AccountConfirmation, error)
	Update(ctx context.Context, confirmationID string, updates map[string]interface{}) error
	Delete(ctx context.Context, confirmationID string) error
}

type mailer interface {
	SendEmail(to []string, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	userRepo         userStore
	roleRepo         roleStore
	phoneRepo        phoneStore
	confirmationRepo confirmationStore
	mailer           mailer
	smsSender        smsSender
	confirmationTTL  time.Duration
	baseURL          string
}

type ServiceDeps struct {
	UserRepo         userStore
	RoleRepo         roleStore
	PhoneRepo        phoneStore
	ConfirmationRepo confirmationStore
	Mailer           mailer
	SMSSender        smsSender // optional
	ConfirmationTTL  time.Duration
	BaseURL          string
}

func NewService(deps ServiceDeps) Service {
	ttl := deps.ConfirmationTTL
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &service{
		userRepo:         deps.UserRepo,
		roleRepo:         deps.RoleRepo,
		phoneRepo:        deps.PhoneRepo,
		confirmationRepo: deps.ConfirmationRepo,
		mailer:           deps.Mailer,
		smsSender:        deps.SMSSender,
		confirmationTTL:  ttl,
		baseURL:          deps.BaseURL,
	}
}

// boundary enforces the workflow error contract: errors already wrapping a
// domain sentinel pass through unchanged, anything else is logged and
// collapsed to ErrInternal so infrastructure causes never reach the client.
func boundary(err error, op string) error {
	if domain.Classified(err) {
		return err
	}
	slog.Error(op+" failed", "err", err)
	return fmt.Errorf("%s: %w", op, domain.ErrInternal)
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegistrationResult, error) {
	res, err := s.register(ctx, req)
	if err != nil {
		return nil, boundary(err, "register user")
	}
	return res, nil
}

func (s *service) register(ctx context.Context, req domain.RegisterRequest) (*domain.RegistrationResult, error) {
	normalized, err := phone.Normalize(req.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("unprocessable phone number: %w", domain.ErrInvalidPhoneNumber)
	}
	if normalized.CountryCode == "" || normalized.ISOCode == "" || normalized.InternationalNumber == "" {
		return nil, fmt.Errorf("incomplete phone number data: %w", domain.ErrInvalidPhoneNumber)
	}
	zones, err := phone.Timezones(req.PhoneNumber)
	if err != nil || len(zones) == 0 {
		return nil, fmt.Errorf("no timezone for phone number: %w", domain.ErrInvalidPhoneNumber)
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrEmailInUse)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Consent:      req.Consent,
		Timezone:     zones[0],
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Put(ctx, u); err != nil {
		return nil, err
	}

	// The user row exists before the role lookup; a missing role leaves the
	// user persisted without roles. That ordering is load-bearing for the
	// downstream creates, which all reference the new user id.
	role, err := s.roleRepo.GetByName(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	u.AddRole(*role)
	if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{fieldRoles: u.Roles}); err != nil {
		return nil, err
	}

	pn := &domain.PhoneNumber{
		PhoneNumberID:       id.New(),
		UserID:              u.UserID,
		ISOCode:             normalized.ISOCode,
		InternationalNumber: normalized.InternationalNumber,
		CountryCode:         normalized.CountryCode,
		CreatedAt:           now,
	}
	if err := s.phoneRepo.Put(ctx, pn); err != nil {
		return nil, err
	}

	conf, err := s.issueConfirmation(ctx, u.UserID, now)
	if err != nil {
		return nil, err
	}

	s.sendConfirmationEmail(u, conf)

	return &domain.RegistrationResult{
		User:                u,
		AccountConfirmation: conf,
		PhoneNumber:         pn,
	}, nil
}

func (s *service) Confirm(ctx context.Context, token, code string) (*domain.AccountConfirmation, error) {
	conf, err := s.confirm(ctx, token, code)
	if err != nil {
		return nil, boundary(err, "confirm account")
	}
	return conf, nil
}

func (s *service) confirm(ctx context.Context, token, code string) (*domain.AccountConfirmation, error) {
	conf, err := s.confirmationRepo.GetByTokenAndCode(ctx, token, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no matching confirmation: %w", domain.ErrInvalidCodeToken)
		}
		return nil, err
	}
	u, err := s.userRepo.Get(ctx, conf.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("confirmation has no owning user: %w", domain.ErrInvalidCodeToken)
		}
		return nil, err
	}

	if conf.Status {
		return nil, fmt.Errorf("account already verified: %w", domain.ErrAlreadyVerified)
	}

	now := time.Now().UTC()
	if conf.Expired(now) {
		// The record is consumed on expiry regardless of whether the client
		// retries; a failed delete is logged but does not mask the outcome.
		if err := s.confirmationRepo.Delete(ctx, conf.ConfirmationID); err != nil {
			slog.Warn("failed to delete expired confirmation",
				"confirmation_id", conf.ConfirmationID, "err", err)
		}
		return nil, fmt.Errorf("confirmation window elapsed: %w", domain.ErrExpiredConfirmation)
	}

	if err := s.confirmationRepo.Update(ctx, conf.ConfirmationID, map[string]interface{}{
		fieldStatus:     true,
		fieldVerifiedAt: now,
	}); err != nil {
		return nil, err
	}
	conf.Status = true
	conf.VerifiedAt = &now

	s.sendVerifiedNotice(ctx, u)

	return conf, nil
}

func (s *service) ResendConfirmation(ctx context.Context, email string) error {
	if err := s.resend(ctx, email); err != nil {
		return boundary(err, "resend confirmation")
	}
	return nil
}

func (s *service) resend(ctx context.Context, email string) error {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Silent success: a resend must not reveal whether an email is registered.
			return nil
		}
		return err
	}
	latest, err := s.confirmationRepo.GetLatestByUser(ctx, u.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err == nil && latest.Status {
		return nil
	}
	conf, err := s.issueConfirmation(ctx, u.UserID, time.Now().UTC())
	if err != nil {
		return err
	}
	s.sendConfirmationEmail(u, conf)
	return nil
}

// issueConfirmation generates a fresh OTP, token and expiry and persists the
// pending confirmation. The most recently created record is the active one.
func (s *service) issueConfirmation(ctx context.Context, userID string, now time.Time) (*domain.AccountConfirmation, error) {
	code, err := pkgtoken.NewOTP()
	if err != nil {
		return nil, err
	}
	tok, err := pkgtoken.NewConfirmationToken()
	if err != nil {
		return nil, err
	}
	conf := &domain.AccountConfirmation{
		ConfirmationID: id.New(),
		UserID:         userID,
		Code:           code,
		Token:          tok,
		Status:         false,
		ExpiresAt:      now.Add(s.confirmationTTL).Unix(),
		CreatedAt:      now,
	}
	if err := s.confirmationRepo.Put(ctx, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func (s *service) confirmationURL(conf *domain.AccountConfirmation) string {
	return fmt.Sprintf("%s/v1/confirm-email?token=%s&code=%s",
		s.baseURL, url.QueryEscape(conf.Token), url.QueryEscape(conf.Code))
}

// sendConfirmationEmail delivers the confirmation link. Delivery failure never
// fails the workflow: the confirmation record already exists and can be resent.
func (s *service) sendConfirmationEmail(u *domain.User, conf *domain.AccountConfirmation) {
	body := fmt.Sprintf(
		"Hello %s,\n\nPlease confirm your account within %d minutes:\n%s\n\nYour verification code is %s.\n",
		u.FirstName, int(s.confirmationTTL.Minutes()), s.confirmationURL(conf), conf.Code)
	if err := s.mailer.SendEmail([]string{u.Email}, "Confirm your account", body); err != nil {
		slog.Warn("failed to send confirmation email", "user_id", u.UserID, "err", err)
	}
}

// sendVerifiedNotice tells the user their account is active, by email and,
// when a phone number and SMS sender are available, by SMS. All failures are
// swallowed.
func (s *service) sendVerifiedNotice(ctx context.Context, u *domain.User) {
	body := fmt.Sprintf("Hello %s,\n\nYour account has been verified successfully.\n", u.FirstName)
	if err := s.mailer.SendEmail([]string{u.Email}, "Account verified", body); err != nil {
		slog.Warn("failed to send verified email", "user_id", u.UserID, "err", err)
	}
	if s.smsSender == nil {
		return
	}
	pn, err := s.phoneRepo.GetByUser(ctx, u.UserID)
	if err != nil {
		slog.Warn("no phone number for verified notice", "user_id", u.UserID, "err", err)
		return
	}
	if err := s.smsSender.SendSMS(ctx, pn.InternationalNumber, "Your account has been verified."); err != nil {
		slog.Warn("failed to send verified SMS", "user_id", u.UserID, "err", err)
	}
}
