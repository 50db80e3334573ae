package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	_ "siscav/docs" // swagger docs

	"siscav/internal/auth"
	"siscav/internal/cache"
	"siscav/internal/config"
	"siscav/internal/db"
	"siscav/internal/handler"
	"siscav/internal/logger"
	"siscav/internal/model"
	"siscav/internal/ratelimit"
	"siscav/internal/repository"
	"siscav/internal/router"
	"siscav/internal/service"
	"siscav/internal/storage"
)

// @title Vehicle Access Control API
// @version 1.0
// @description Vehicle access-control backend: plate whitelist management, access-attempt logging with capture images, and JWT admin authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AuthorizedPlate{},
		&model.AccessLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	images, err := newImageStore(cfg)
	if err != nil {
		log.Fatalf("image store init: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	plateRepo := repository.NewPlateRepository(gormDB)
	accessLogRepo := repository.NewAccessLogRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	loginLimiter := ratelimit.New(cacheClient, cfg.LoginRateLimit, time.Minute)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, appLogger)
	whitelistService := service.NewWhitelistService(plateRepo, cacheClient, appLogger)
	accessService := service.NewAccessService(plateRepo, accessLogRepo, images, cacheClient, cfg.Upload.MaxUploadBytes(), appLogger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	whitelistHandler := handler.NewWhitelistHandler(whitelistService)
	accessLogHandler := handler.NewAccessLogHandler(accessService)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		jwtService,
		userRepo,
		loginLimiter,
		authHandler,
		whitelistHandler,
		accessLogHandler,
	)

	appLogger.Info("starting server",
		"port", cfg.ServerPort,
		"storage_backend", cfg.StorageBackend,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// newImageStore builds the configured image backend: flat files under the
// upload dir by default, minio when STORAGE_BACKEND=minio.
func newImageStore(cfg *config.Config) (storage.ImageStore, error) {
	if cfg.StorageBackend == "minio" {
		client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return storage.NewMinioStore(context.Background(), client, cfg.Storage.Bucket)
	}
	return storage.NewDiskStore(cfg.Upload.Dir)
}
