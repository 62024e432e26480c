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

	"ytlivescheduler/config"
	_ "ytlivescheduler/docs"
	authadapter "ytlivescheduler/internal/adapters/auth"
	"ytlivescheduler/internal/adapters/email"
	"ytlivescheduler/internal/adapters/youtube"
	"ytlivescheduler/internal/delivery/http/controllers"
	"ytlivescheduler/internal/delivery/http/middleware"
	"ytlivescheduler/internal/domain"
	"ytlivescheduler/internal/repository/postgres"
	"ytlivescheduler/internal/services"

	deliveryhttp "ytlivescheduler/internal/delivery/http"
)

const (
	serviceTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title YouTube Live Scheduler API
// @version 1.0
// @description Schedules, validates and tracks YouTube live broadcasts.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		logger.Error("invalid timezone", "timezone", cfg.Schedule.Timezone, "err", err)
		os.Exit(1)
	}
	defaultSlots, err := domain.ParseTimeSlots(cfg.Schedule.DefaultSlots)
	if err != nil {
		logger.Error("invalid default slots", "slots", cfg.Schedule.DefaultSlots, "err", err)
		os.Exit(1)
	}
	policy := domain.SchedulePolicy{
		Location:     loc,
		MinLeadTime:  time.Duration(cfg.Schedule.MinLeadMinutes) * time.Minute,
		MaxHorizon:   time.Duration(cfg.Schedule.MaxHorizonDays) * 24 * time.Hour,
		DefaultSlots: defaultSlots,
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	broadcastRepo := postgres.NewBroadcastRepository(db)

	ytClient := youtube.NewClient("", nil)
	oauthClient := youtube.NewOAuthClient(
		cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURI, "", "", nil, nil)
	tokens := authadapter.NewJWTTokens(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mailer.SESRegion,
			AccessKeyID:        cfg.Mailer.SESAccessKeyID,
			SecretAccessKey:    cfg.Mailer.SESSecretKey,
			InsecureSkipVerify: cfg.Mailer.SESSkipTLSCheck,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	authService := services.NewAuthService(userRepo, oauthClient, ytClient, tokens, cfg.JWTExpiry, serviceTimeout)
	videoService := services.NewVideoService(userRepo, ytClient, oauthClient, logger, nil, serviceTimeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	scheduleService := services.NewScheduleService(policy, userRepo, broadcastRepo, ytClient, emailService, logger, nil, serviceTimeout)
	broadcastService := services.NewBroadcastService(broadcastRepo, userRepo, ytClient, logger, nil, serviceTimeout)

	mux := deliveryhttp.NewRouter(
		controllers.NewAuthController(logger, authService),
		controllers.NewVideoController(logger, videoService),
		controllers.NewScheduleController(logger, scheduleService, loc),
		controllers.NewBroadcastController(logger, broadcastService),
		tokens,
	)
	handler := middleware.CORS(cfg.CORSOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment, "timezone", cfg.Schedule.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
