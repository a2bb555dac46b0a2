// Package main starts the freebusy HTTP server.
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

	"freebusy/config"
	_ "freebusy/docs"
	"freebusy/internal/adapters/auth"
	"freebusy/internal/adapters/email"
	"freebusy/internal/adapters/googlecal"
	httpdelivery "freebusy/internal/delivery/http"
	"freebusy/internal/delivery/http/controllers"
	"freebusy/internal/delivery/http/middleware"
	"freebusy/internal/docstore"
	"freebusy/internal/domain"
	"freebusy/internal/repository/postgres"
	"freebusy/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title FreeBusy API
// @version 1.0
// @description Privacy-preserving group availability over replicated event documents.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// Document snapshots are optional. Without a database the store
	// runs memory-only and documents live as long as the process.
	var snapshots domain.DocumentSnapshotRepository
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Error("failed to ping database", "err", err)
			os.Exit(1)
		}
		snapshots = postgres.NewDocumentRepository(db)
		logger.Info("document snapshots enabled")
	} else {
		logger.Warn("DATABASE_URL not set, document snapshots disabled")
	}

	store := docstore.NewMemoryStore("", snapshots)

	tokenManager := auth.NewJWTManager(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	eventService := services.NewEventService(store, emailService, tokenManager, cfg.TokenExpiry, cfg.BaseURL, serviceTimeout)

	calendarSource := googlecal.New(logger, cfg.GoogleClientID, cfg.GoogleClientSecret)
	syncService := services.NewCalendarSyncService(eventService, calendarSource, cfg.SyncWindowDays, serviceTimeout)

	eventController := controllers.NewEventController(logger, eventService)
	availabilityController := controllers.NewAvailabilityController(logger, eventService, syncService, controllers.AvailabilityDefaults{
		DayStartHour: cfg.DayStartHour,
		DayEndHour:   cfg.DayEndHour,
	})

	mux := httpdelivery.NewRouter(logger, eventController, availabilityController, tokenManager)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
