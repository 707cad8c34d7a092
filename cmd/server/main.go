// @title                      Tutor Sage API
// @version                    1.0
// @description                Tutoring marketplace backend: classes, enrollments, teacher applications, feedback, submissions and payments.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tutorsage/tutor-sage-server/internal/api"
	"github.com/tutorsage/tutor-sage-server/internal/core/service"
	"github.com/tutorsage/tutor-sage-server/internal/infrastructure/config"
	"github.com/tutorsage/tutor-sage-server/internal/infrastructure/db/mongo"
	"github.com/tutorsage/tutor-sage-server/internal/infrastructure/payment"
	"github.com/tutorsage/tutor-sage-server/pkg/logger"
)

func main() {
	envErr := godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Bootstrap().Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "tutor-sage-server",
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found; relying on existing environment")
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.ConnectionURI(),
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	if cfg.Payment.SecretKey == "" {
		log.Warn().Msg("PAYMENT_SECRET_KEY not set; payment intents will fail")
	}
	gateway := payment.NewStripeGateway(cfg.Payment.SecretKey, payment.NewBackend(cfg.Payment.APIURL, logger.Named("stripe")))

	e := api.NewRouter(api.Dependencies{
		Tokens:          service.NewTokenService(cfg.Token.Secret, cfg.Token.TTL),
		Users:           service.NewUserService(mongo.NewUserRepository(db, cfg.Mongo.Timeout), logger.Named("users")),
		Classes:         service.NewClassService(mongo.NewClassRepository(db, cfg.Mongo.Timeout), logger.Named("classes")),
		Enrollments:     service.NewEnrollmentService(mongo.NewEnrollmentRepository(db, cfg.Mongo.Timeout), logger.Named("enrollments")),
		TeacherRequests: service.NewTeacherRequestService(mongo.NewTeacherRequestRepository(db, cfg.Mongo.Timeout), logger.Named("teacher_requests")),
		Feedback:        service.NewFeedbackService(mongo.NewFeedbackRepository(db, cfg.Mongo.Timeout), logger.Named("feedback")),
		Submissions:     service.NewSubmissionService(mongo.NewSubmissionRepository(db, cfg.Mongo.Timeout), logger.Named("submissions")),
		Payments:        service.NewPaymentService(gateway, cfg.Payment.Currency, logger.Named("payments")),
		DB:              client,

		Logger:                  log,
		AllowedOrigins:          cfg.AllowedOrigins(),
		RequireAuthOnOpenWrites: cfg.RequireAuthOnOpenWrites,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Tutor Sage Server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info().Msg("shutting down")
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}
