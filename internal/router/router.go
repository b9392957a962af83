package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/config"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/handler"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/middleware"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/ratelimit"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Job         *handler.JobHandler
	Application *handler.ApplicationHandler
	User        *handler.UserHandler
	Analytics   *handler.AnalyticsHandler

	// Health is the liveness probe backing /health, usually the database
	// ping. Nil means always healthy.
	Health func(ctx context.Context) error
}

// New assembles the request pipeline. The edge gate runs ahead of all
// routing; API routes then layer rate-limiting, authentication and role
// checks per tier. A route declared at a role tier always passes through the
// lower tiers first.
func New(
	cfg *config.Config,
	gate *middleware.Gate,
	authMiddleware *middleware.AuthMiddleware,
	broadLimiter *ratelimit.Limiter,
	signupLimiter *ratelimit.Limiter,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(gate.Handler)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if h.Health != nil {
			if err := h.Health(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("degraded"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	adminRoles := authMiddleware.RequireRoles(model.RoleAdmin, model.RoleSuperAdmin)
	hrRoles := authMiddleware.RequireRoles(model.RoleHROfficer)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
		api.Use(authMiddleware.Authenticate)
		api.Use(middleware.RateLimit(broadLimiter))

		api.Route("/auth", func(auth chi.Router) {
			auth.Get("/jwt", h.Auth.Login)
			auth.Post("/jwt", h.Auth.Logout)
			auth.Get("/refresh", h.Auth.Refresh)
			auth.Get("/csrf", h.Auth.CSRFToken)
			auth.With(middleware.RateLimit(signupLimiter)).Post("/register", h.Auth.Register)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/jobs", func(jobs chi.Router) {
			jobs.Use(authMiddleware.RequireAuth)
			jobs.Get("/", h.Job.List)
			jobs.Get("/{job_id}", h.Job.Get)
			jobs.Post("/{job_id}/applications", h.Application.Apply)
			jobs.With(hrRoles).Post("/", h.Job.Create)
			jobs.With(hrRoles).Put("/{job_id}", h.Job.Update)
			jobs.With(hrRoles).Delete("/{job_id}", h.Job.Delete)
		})

		api.With(authMiddleware.RequireAuth, hrRoles).Get("/applications", h.Application.List)
		api.With(authMiddleware.RequireAuth, hrRoles).Put("/applications/{application_id}/status", h.Application.UpdateStatus)

		api.With(authMiddleware.RequireAuth, adminRoles).Get("/users", h.User.List)
		api.With(authMiddleware.RequireAuth, adminRoles).Put("/users/{user_id}/role", h.User.UpdateRole)
		api.With(authMiddleware.RequireAuth, adminRoles).Get("/analytics/summary", h.Analytics.Summary)
	})

	return r
}
