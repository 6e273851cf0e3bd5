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
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Prem324/bookshelf/internal/api/http/handler"
	"github.com/Prem324/bookshelf/internal/api/http/router"
	"github.com/Prem324/bookshelf/internal/api/http/server"
	"github.com/Prem324/bookshelf/internal/authclient"
	rediscache "github.com/Prem324/bookshelf/internal/cache/redis"
	"github.com/Prem324/bookshelf/internal/config"
	"github.com/Prem324/bookshelf/internal/logger"
	"github.com/Prem324/bookshelf/internal/model"
	"github.com/Prem324/bookshelf/internal/repository/postgres"
	"github.com/Prem324/bookshelf/internal/service"
	storage "github.com/Prem324/bookshelf/internal/storage/minio"
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

	cfg, err := config.NewBook()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	bookRepo := postgres.NewBookRepository(db)

	var cache model.Cache
	if cfg.Cache.Addr != "" {
		redisCache, err := rediscache.New(ctx, cfg.Cache.Addr)
		if err != nil {
			logger.Fatal("failed to connect to redis", "error", err)
		}
		defer redisCache.Close()
		cache = redisCache
	} else {
		logger.Warn("cache disabled, no redis address configured")
	}

	var imageStorage model.Storage
	if cfg.Storage.Configured() && cfg.Storage.AccessKey != "" {
		minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Fatal("failed to create minio client", "error", err)
		}
		storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicURL)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		imageStorage = storageClient
	} else {
		logger.Warn("image uploads disabled, object storage not configured")
	}

	bookService := service.NewBook(
		bookRepo,
		cache,
		imageStorage,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		logger,
	)
	validator := authclient.New(cfg.AuthServiceURL)

	srv := server.New(fmt.Sprintf(":%s", cfg.Port), cfg.CORS.Origins(), logger)
	router.RegisterBook(srv.Echo(), handler.NewBookHandler(bookService), handler.NewHealthHandler(db), validator)

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
