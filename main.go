package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/creator-studio/internal/client/gtranslate"
	"github.com/msomdec/creator-studio/internal/client/openrouter"
	"github.com/msomdec/creator-studio/internal/client/together"
	"github.com/msomdec/creator-studio/internal/config"
	"github.com/msomdec/creator-studio/internal/handler"
	"github.com/msomdec/creator-studio/internal/mailer"
	"github.com/msomdec/creator-studio/internal/repository/sqlite"
	"github.com/msomdec/creator-studio/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	otpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom, cfg.EmailPass)
	completionClient := openrouter.New(cfg.OpenRouterAPIKey)
	imageClient := together.New(cfg.TogetherAPIKey)
	ttsClient := gtranslate.New("en")

	authService := service.NewAuthService(db.Users(), otpMailer, cfg.JWTSecret, cfg.BcryptCost)
	contentService := service.NewContentService(db.Contents(), completionClient)
	speechService := service.NewSpeechService(ttsClient, gtranslate.MaxChunkLen)

	var googleHandler *handler.GoogleHandler
	if cfg.GoogleClientID != "" {
		googleHandler = handler.NewGoogleHandler(authService, &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		}, cfg.ClientURL)
	} else {
		slog.Warn("GOOGLE_CLIENT_ID not set, Google login disabled")
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, contentService, speechService, imageClient, googleHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(handler.CORS(cfg.ClientURL, mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Hourly sweep of expired unverified signups.
	sweeper := service.NewSweeper(db.Users(), time.Hour)
	go sweeper.Run(ctx)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
