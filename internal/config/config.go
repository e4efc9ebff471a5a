package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string
	LogLevel       string

	DBDriver string
	DBHost   string
	DBPort   string
	DBUser   string
	DBPass   string
	DBName   string

	RedisURL string

	JWTSecret string
	JWTTTL    time.Duration

	OTPTTL             time.Duration
	RateLimitOTP       time.Duration
	OTPCleanupInterval time.Duration

	StorageDriver      string
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	AWSAccessKey       string
	AWSSecretAccessKey string
	PresignTTL         time.Duration

	CloudinaryCloudName    string
	CloudinaryUploadFolder string

	PostmarkServerToken string
	MailFrom            string

	MeiliSearchHost string
	MeiliMasterKey  string

	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		DBDriver: getEnv("DB_DRIVER", "postgres"),
		DBHost:   getEnv("DB_HOST", "localhost"),
		DBPort:   os.Getenv("DB_PORT"),
		DBUser:   getEnv("DB_USER", "postgres"),
		DBPass:   os.Getenv("DB_PASS"),
		DBName:   getEnv("DB_NAME", "edapp"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("SECRET_KEY"),

		StorageDriver:      getEnv("STORAGE_DRIVER", "s3"),
		S3Bucket:           getEnv("S3_BUCKET", "embed-app-bucket"),
		S3Region:           os.Getenv("AWS_REGION"),
		S3Endpoint:         os.Getenv("S3_ENDPOINT"),
		AWSAccessKey:       os.Getenv("AWS_ACCESS_KEY"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "edapp"),

		PostmarkServerToken: os.Getenv("POSTMARK_SERVER_TOKEN"),
		MailFrom:            getEnv("MAIL_FROM", "no-reply@edapp.local"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@edapp.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultPort(cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv == "production" {
			return nil, fmt.Errorf("SECRET_KEY must be set in production")
		}
		cfg.JWTSecret = "change-me"
	}

	// Parsing durations
	var err error
	if cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "50m")); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.OTPTTL, err = parseDuration(getEnv("OTP_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("invalid OTP_TTL: %w", err)
	}
	if cfg.RateLimitOTP, err = parseDuration(getEnv("RATE_LIMIT_OTP", "60s")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_OTP: %w", err)
	}
	if cfg.OTPCleanupInterval, err = parseDuration(getEnv("OTP_CLEANUP_INTERVAL", "1h")); err != nil {
		return nil, fmt.Errorf("invalid OTP_CLEANUP_INTERVAL: %w", err)
	}
	if cfg.PresignTTL, err = parseDuration(getEnv("PRESIGN_TTL", "1h")); err != nil {
		return nil, fmt.Errorf("invalid PRESIGN_TTL: %w", err)
	}

	switch cfg.DBDriver {
	case "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.StorageDriver {
	case "s3", "cloudinary":
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

func defaultPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}
