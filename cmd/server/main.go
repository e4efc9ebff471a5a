package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"anoa.com/edapp/internal/bootstrap"
	"anoa.com/edapp/internal/config"
	"anoa.com/edapp/internal/server"
	"anoa.com/edapp/pkg/database"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/mailer"
	"anoa.com/edapp/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Sync()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(database.Options{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Name:     cfg.DBName,
		Debug:    cfg.AppEnv == "development",
	})
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}

	if err := bootstrap.Migrate(db); err != nil {
		logger.Log.Fatal("migration failed", zap.Error(err))
	}
	if err := bootstrap.SeedCatalogue(db); err != nil {
		logger.Log.Fatal("failed to seed catalogue", zap.Error(err))
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Log.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	imageStorage, err := newStorage(cfg)
	if err != nil {
		logger.Log.Fatal("failed to initialize storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}

	mail := mailer.NewClient(cfg.PostmarkServerToken, cfg.MailFrom)
	if !mail.Configured() {
		logger.Log.Warn("POSTMARK_SERVER_TOKEN not set, password reset emails will fail")
	}

	srv, err := server.NewServer(cfg, server.Dependencies{
		DB:       db,
		Redis:    newRedis(cfg.RedisURL),
		Storage:  imageStorage,
		Notifier: mail,
		Search:   newMeili(cfg.MeiliSearchHost, cfg.MeiliMasterKey),
	})
	if err != nil {
		logger.Log.Fatal("failed to build server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		logger.Log.Fatal("server exited with error", zap.Error(err))
	}
	logger.Log.Info("server stopped")
}

func newStorage(cfg *config.Config) (storage.ObjectStorage, error) {
	if cfg.StorageDriver == "cloudinary" {
		return storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryUploadFolder)
	}
	return storage.NewS3Storage(storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretAccessKey,
	})
}

// newRedis returns nil when Redis is not configured or unreachable; OTP
// throttling is then disabled.
func newRedis(url string) *redis.Client {
	if url == "" {
		logger.Log.Warn("REDIS_URL not set, OTP throttling disabled")
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		logger.Log.Warn("invalid REDIS_URL, OTP throttling disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Warn("redis unreachable, OTP throttling disabled", zap.Error(err))
		client.Close()
		return nil
	}
	return client
}

func newMeili(host, key string) meilisearch.ServiceManager {
	if host == "" {
		logger.Log.Info("MEILISEARCH_HOST not set, member search disabled")
		return nil
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}
	return meilisearch.New(host, meilisearch.WithAPIKey(key))
}
