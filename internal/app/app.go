package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"constru_backend/database"
	"constru_backend/internal/auth"
	"constru_backend/internal/cache"
	"constru_backend/internal/config"
	"constru_backend/internal/email"
	"constru_backend/internal/handlers"
	"constru_backend/internal/logger"
	"constru_backend/internal/middleware"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/routes"
	"constru_backend/internal/services"
	"constru_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App is the assembled application.
type App struct {
	cfg    *config.Config
	db     *gorm.DB
	cache  *cache.Cache
	mail   email.Provider
	router *gin.Engine
}

// New loads config, connects the infrastructure and wires every layer.
func New() (*App, error) {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	c := cache.New(cfg)
	if err := c.Ping(context.Background()); err != nil {
		// The cache is advisory; a dead redis only costs performance.
		logger.Warn("redis unreachable, continuing without cache", "error", err.Error())
	}

	mail := email.NewProviderFromConfig(cfg)

	sc := services.NewServiceContainer(c, mail)
	h := handlers.NewAppHandlers(sc)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := SetupRouter(cfg, db, h)

	app := &App{
		cfg:    cfg,
		db:     db,
		cache:  c,
		mail:   mail,
		router: router,
	}

	if err := app.seedFirstAdmin(); err != nil {
		return nil, fmt.Errorf("seed first admin: %w", err)
	}

	return app, nil
}

// SetupRouter builds the Gin engine with the full middleware chain.
func SetupRouter(cfg *config.Config, db *gorm.DB, h *handlers.AppHandlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.DBMiddleware(db))

	routes.RegisterRoutes(router, h)
	return router
}

// Run starts the HTTP server and the background workers, then blocks
// until SIGINT/SIGTERM and shuts everything down in order.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background workers share the lifecycle context.
	tokenWorker := workers.NewTokenCleanupWorker(a.db, repositories.NewRefreshTokenRepository())
	go tokenWorker.Run(ctx)

	sc := services.NewServiceContainer(a.cache, a.mail)
	recWorker := workers.NewRecommendationWorker(a.db, sc.Recommendation)
	go recWorker.Run(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port),
		Handler: a.router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", a.cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err.Error())
	}
	if err := a.cache.Close(); err != nil {
		logger.Error("cache close failed", "error", err.Error())
	}
	if err := a.mail.Close(); err != nil {
		logger.Error("mail provider close failed", "error", err.Error())
	}

	return nil
}

// seedFirstAdmin creates the configured admin account once. Self
// registration never produces admins, so without the seed there is no way
// to reach the admin endpoints.
func (a *App) seedFirstAdmin() error {
	if a.cfg.FirstAdminEmail == "" || a.cfg.FirstAdminPassword == "" {
		return nil
	}

	userRepo := repositories.NewUserRepository()
	if _, err := userRepo.FindByEmail(a.db, a.cfg.FirstAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(a.cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        a.cfg.FirstAdminEmail,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := userRepo.Create(a.db, admin); err != nil {
		return err
	}

	logger.Info("first admin seeded", "email", a.cfg.FirstAdminEmail)
	return nil
}
