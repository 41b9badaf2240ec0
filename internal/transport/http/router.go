package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-accounts-api/internal/application/account"
	"github.com/go-accounts-api/internal/application/role"
	"github.com/go-accounts-api/internal/application/session"
	"github.com/go-accounts-api/internal/config"
	"github.com/go-accounts-api/internal/domain"
	"github.com/go-accounts-api/internal/transport/http/handler"
	appmiddleware "github.com/go-accounts-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	accountSvc := account.NewService(account.ServiceDeps{
		UserRepo:         deps.UserRepo,
		RoleRepo:         deps.RoleRepo,
		PhoneRepo:        deps.PhoneRepo,
		ConfirmationRepo: deps.ConfirmationRepo,
		Mailer:           deps.Mailer,
		SMSSender:        deps.SMSSender,
		ConfirmationTTL:  cfg.ConfirmationTTL,
		BaseURL:          cfg.AppBaseURL,
	})
	sessionSvc := session.NewService(deps.SessionRepo, deps.UserRepo, deps.JWTProvider, cfg.RefreshTokenDur)
	roleSvc := role.NewService(deps.RoleRepo)

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc)
	confirmH := handler.NewConfirmHandler(accountSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	roleH := handler.NewRoleHandler(roleSvc)
	userH := handler.NewUserHandler(deps.UserRepo)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/users", accountH.Register)
		r.With(sensitiveRL.Limit).Get("/confirm-email", confirmH.ConfirmFromLink)
		r.With(sensitiveRL.Limit).Post("/confirm-email", confirmH.Confirm)
		r.With(sensitiveRL.Limit).Post("/confirm-email/resend", confirmH.Resend)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.Post("/sessions/refresh", sessionH.Refresh)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)
			r.Get("/users/{id}", userH.Get)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/roles", roleH.List)
				r.Get("/roles/{id}", roleH.Get)
			})
		})
	})

	return r
}
