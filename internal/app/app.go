package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/config"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/csrf"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/database"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/handler"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/middleware"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/ratelimit"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/repository"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/router"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/service"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/token"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	slog.Info("database ready")

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}

	csrfGuard := csrf.NewGuard(cfg.IsProduction(), cfg.CSRFTokenTTL)
	broadLimiter := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow,
		ratelimit.WithMaxEntries(cfg.RateLimitMaxEntries))
	signupLimiter := ratelimit.New(cfg.SignupRateLimitMax, cfg.RateLimitWindow,
		ratelimit.WithMaxEntries(cfg.RateLimitMaxEntries))

	authService := service.NewAuthService(codec, userRepo)
	jobService := service.NewJobService(jobRepo)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo)
	analyticsService := service.NewAnalyticsService(jobRepo, applicationRepo, userRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	gate := middleware.NewGate(cfg.CORSOrigins, csrfGuard, broadLimiter)

	appRouter := router.New(cfg, gate, authMiddleware, broadLimiter, signupLimiter, router.Handlers{
		Auth:        handler.NewAuthHandler(authService, csrfGuard, cfg.IsProduction()),
		Job:         handler.NewJobHandler(jobService),
		Application: handler.NewApplicationHandler(applicationService),
		User:        handler.NewUserHandler(userRepo),
		Analytics:   handler.NewAnalyticsHandler(analyticsService),
		Health:      db.Health,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
