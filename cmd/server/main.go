package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/adityanashtech/eventxbackendlatest/config"
	_ "github.com/adityanashtech/eventxbackendlatest/docs"
	"github.com/adityanashtech/eventxbackendlatest/internal/adapters/auth"
	"github.com/adityanashtech/eventxbackendlatest/internal/adapters/email"
	"github.com/adityanashtech/eventxbackendlatest/internal/database"
	delivery "github.com/adityanashtech/eventxbackendlatest/internal/delivery/http"
	"github.com/adityanashtech/eventxbackendlatest/internal/delivery/http/controllers"
	"github.com/adityanashtech/eventxbackendlatest/internal/delivery/http/middleware"
	"github.com/adityanashtech/eventxbackendlatest/internal/repository/postgres"
	"github.com/adityanashtech/eventxbackendlatest/internal/services"
)

// @title EventX Backend API
// @version 1.0
// @description Event management platform backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.ContextTimeout)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.AutoMigrate {
		runner := database.NewRunner(db, logger, database.MigrateOptions{
			MigrationsDir: cfg.MigrationsDir,
			AutoMigrate:   cfg.AutoMigrate,
		})
		if err := runner.MigrateUp(); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	userRepo := postgres.NewUserRepository(db)
	userEventRepo := postgres.NewUserEventRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewJWTManager(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	eventService := services.NewEventService(eventRepo, userRepo, userEventRepo, nil)
	userService := services.NewUserService(userRepo, eventRepo, hasher, tokens, tokens,
		emailService, logger, cfg.TokenExpiry, cfg.ResetTokenTTL)
	userEventService := services.NewUserEventService(userRepo, eventRepo, userEventRepo, nil)
	adminService := services.NewAdminService(eventRepo, userRepo, nil)

	// Controllers
	eventController := controllers.NewEventController(logger, eventService)
	userController := controllers.NewUserController(logger, userService)
	userEventController := controllers.NewUserEventController(logger, userEventService)
	adminController := controllers.NewAdminController(logger, adminService, eventService)

	mux := delivery.NewRouter(eventController, userController, userEventController, adminController, tokens)
	handler := middleware.Logging(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
