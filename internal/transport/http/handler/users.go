package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-accounts-api/internal/domain"
	"github.com/go-accounts-api/internal/transport/http/middleware"
)

// UserGetter is the minimal read access the user endpoints need.
type UserGetter interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// UserHandler handles user read endpoints.
type UserHandler struct {
	users UserGetter
}

func NewUserHandler(users UserGetter) *UserHandler {
	return &UserHandler{users: users}
}

// Get returns a user's public fields. A caller may only fetch their own
// record unless their token carries the admin role.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	targetID := chi.URLParam(r, "id")
	if claims.UserID != targetID && claims.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "cannot read another user")
		return
	}
	u, err := h.users.Get(r.Context(), targetID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
