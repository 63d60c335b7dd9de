package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // INFRADASH_DATABASE_URL (required)
	HTTPAddr    string // INFRADASH_HTTP_ADDR (default ":8080")
	NATSURL     string // INFRADASH_NATS_URL (optional, empty = no events)
	AdminToken  string // INFRADASH_ADMIN_TOKEN (optional, empty = admin endpoints disabled)

	// Session settings
	SessionTTL time.Duration // INFRADASH_SESSION_TTL (default 720h)

	// Sync settings
	SyncInterval   time.Duration // INFRADASH_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // INFRADASH_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // INFRADASH_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // INFRADASH_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // INFRADASH_SYNC_S3_KEY (default "infradash/backup.jsonl")
	SyncGitRepo    string        // INFRADASH_SYNC_GIT_REPO (enables git when set; path to clone)
	SyncGitFile    string        // INFRADASH_SYNC_GIT_FILE (default "executions.jsonl")
	SyncGitBranch  string        // INFRADASH_SYNC_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("INFRADASH_DATABASE_URL"),
		HTTPAddr:       envOrDefault("INFRADASH_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("INFRADASH_NATS_URL"),
		AdminToken:     os.Getenv("INFRADASH_ADMIN_TOKEN"),
		SyncS3Bucket:   os.Getenv("INFRADASH_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("INFRADASH_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("INFRADASH_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("INFRADASH_SYNC_S3_KEY", "infradash/backup.jsonl"),
		SyncGitRepo:    os.Getenv("INFRADASH_SYNC_GIT_REPO"),
		SyncGitFile:    envOrDefault("INFRADASH_SYNC_GIT_FILE", "executions.jsonl"),
		SyncGitBranch:  envOrDefault("INFRADASH_SYNC_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("INFRADASH_DATABASE_URL is required")
	}

	ttlStr := envOrDefault("INFRADASH_SESSION_TTL", "720h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("INFRADASH_SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("INFRADASH_SESSION_TTL must be positive")
	}
	c.SessionTTL = ttl

	intervalStr := envOrDefault("INFRADASH_SYNC_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("INFRADASH_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
