package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-accounts-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Put(ctx context.Context, s *domain.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionStore) GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionStore) RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error {
	return m.Called(ctx, sessionID, newToken, newExpiry).Error(0)
}
func (m *mockSessionStore) Update(ctx context.Context, sessionID string, updates map[string]interface{}) error {
	return m.Called(ctx, sessionID, updates).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, role, sessionID string) (string, error) {
	args := m.Called(userID, role, sessionID)
	return args.String(0), args.Error(1)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func testUser(t *testing.T) *domain.User {
	return &domain.User{
		UserID:       "u1",
		Email:        "alice@example.com",
		PasswordHash: hashOf(t, "password123"),
		Roles:        []domain.Role{{RoleID: "r1", Name: domain.RoleStudent}},
	}
}

func TestLogin_Success(t *testing.T) {
	sessions := &mockSessionStore{}
	users := &mockUserStore{}
	signer := &mockSigner{}
	svc := NewService(sessions, users, signer, 24*time.Hour)

	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(testUser(t), nil)
	sessions.On("Put", mock.Anything, mock.Anything).Return(nil)
	signer.On("Sign", "u1", domain.RoleStudent, mock.Anything).Return("bearer-token", nil)

	res, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "bearer-token", res.Bearer)
	assert.NotEmpty(t, res.RefreshToken)
	require.NotNil(t, res.Session)
	assert.True(t, res.Session.Enable)
	assert.Equal(t, "u1", res.Session.UserID)
	require.NotNil(t, res.Session.User)
	assert.Equal(t, "alice@example.com", res.Session.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	sessions := &mockSessionStore{}
	users := &mockUserStore{}
	signer := &mockSigner{}
	svc := NewService(sessions, users, signer, 24*time.Hour)

	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(testUser(t), nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	sessions.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	sessions := &mockSessionStore{}
	users := &mockUserStore{}
	signer := &mockSigner{}
	svc := NewService(sessions, users, signer, 24*time.Hour)

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogout_DisablesSession(t *testing.T) {
	sessions := &mockSessionStore{}
	svc := NewService(sessions, &mockUserStore{}, &mockSigner{}, 24*time.Hour)

	sessions.On("Update", mock.Anything, "sess1", map[string]interface{}{"enable": false}).Return(nil)

	require.NoError(t, svc.Logout(context.Background(), "sess1"))
	sessions.AssertExpectations(t)
}

func TestGetCurrent_DisabledSession(t *testing.T) {
	sessions := &mockSessionStore{}
	users := &mockUserStore{}
	svc := NewService(sessions, users, &mockSigner{}, 24*time.Hour)

	sessions.On("Get", mock.Anything, "sess1").
		Return(&domain.Session{SessionID: "sess1", UserID: "u1", Enable: false}, nil)

	_, err := svc.GetCurrent(context.Background(), "sess1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestRefresh_RotatesToken(t *testing.T) {
	sessions := &mockSessionStore{}
	users := &mockUserStore{}
	signer := &mockSigner{}
	svc := NewService(sessions, users, signer, 24*time.Hour)

	sessions.On("GetByRefreshToken", mock.Anything, "old-token").Return(&domain.Session{
		SessionID:        "sess1",
		UserID:           "u1",
		Enable:           true,
		RefreshExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil)
	sessions.On("RotateRefreshToken", mock.Anything, "sess1", mock.Anything, mock.Anything).Return(nil)
	users.On("Get", mock.Anything, "u1").Return(testUser(t), nil)
	signer.On("Sign", "u1", domain.RoleStudent, "sess1").Return("new-bearer", nil)

	bearer, newToken, err := svc.Refresh(context.Background(), "old-token")

	require.NoError(t, err)
	assert.Equal(t, "new-bearer", bearer)
	assert.NotEmpty(t, newToken)
	assert.NotEqual(t, "old-token", newToken)
	sessions.AssertExpectations(t)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	sessions := &mockSessionStore{}
	svc := NewService(sessions, &mockUserStore{}, &mockSigner{}, 24*time.Hour)

	sessions.On("GetByRefreshToken", mock.Anything, "old-token").Return(&domain.Session{
		SessionID:        "sess1",
		UserID:           "u1",
		Enable:           true,
		RefreshExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}, nil)

	_, _, err := svc.Refresh(context.Background(), "old-token")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	sessions.AssertNotCalled(t, "RotateRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
