package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Prem324/bookshelf/internal/api/http/handler"
	"github.com/Prem324/bookshelf/internal/api/http/router"
	"github.com/Prem324/bookshelf/internal/api/http/server"
	"github.com/Prem324/bookshelf/internal/config"
	"github.com/Prem324/bookshelf/internal/logger"
	"github.com/Prem324/bookshelf/internal/notify"
	"github.com/Prem324/bookshelf/internal/repository/postgres"
	"github.com/Prem324/bookshelf/internal/service"
	"github.com/Prem324/bookshelf/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// .env is a development convenience, absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.NewAuth()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	tokenManager := token.NewJWT(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLDays)*24*time.Hour,
	)
	notifier := notify.NewResend(cfg.Resend.APIKey, cfg.Resend.From, logger)

	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, userRepo, tokenManager.RefreshTTL(), logger)
	authService := service.NewAuth(userRepo, tokenService, notifier, logger)

	srv := server.New(fmt.Sprintf(":%s", cfg.Port), cfg.CORS.Origins(), logger)
	router.RegisterAuth(srv.Echo(), handler.NewAuthHandler(authService), handler.NewHealthHandler(db))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
