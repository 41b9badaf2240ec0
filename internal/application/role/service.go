package role

import (
	"context"

	"github.com/go-accounts-api/internal/domain"
)

// Roles are seeded at bootstrap; this service only exposes read access.
type Service interface {
	List(ctx context.Context) ([]domain.Role, error)
	Get(ctx context.Context, roleID string) (*domain.Role, error)
}

type roleStore interface {
	Scan(ctx context.Context) ([]domain.Role, error)
	Get(ctx context.Context, roleID string) (*domain.Role, error)
}

type service struct {
	repo roleStore
}

func NewService(repo roleStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Role, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Get(ctx context.Context, roleID string) (*domain.Role, error) {
	return s.repo.Get(ctx, roleID)
}
