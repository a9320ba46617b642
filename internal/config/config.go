package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	ListenAddr     string        // e.g. ":8080"
	RequestTimeout time.Duration // wraps each request's store calls
	AllowedOrigin  string        // frontend origin for CORS

	// Postgres (explicit pieces)
	PGHost     string
	PGPort     int
	PGUser     string
	PGPassword string
	PGDatabase string
	PGSSLMode  string

	// Recency cache
	CacheTable    string // DynamoDB table name; empty selects the in-memory cache
	AWSRegion     string
	CacheCapacity int

	// Media uploads
	UploadBucket string // S3 bucket for presigned PUT urls; empty disables uploads

	// First-page response cache
	RedisAddr    string        // e.g. "cache.internal:6379"; empty selects the in-process cache
	PageCacheTTL time.Duration // zero disables page caching entirely
}

// BuildDSN composes a keyword/value DSN compatible with pgxpool.
func (c Config) BuildDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PGHost, c.PGPort, c.PGUser, c.PGPassword, c.PGDatabase, c.PGSSLMode,
	)
}

func FromEnv() Config {
	_ = godotenv.Load()

	c := Config{}

	c.ListenAddr = getenv("HTTP_LISTEN_ADDR", ":8080")
	c.RequestTimeout = getenvd("REQUEST_TIMEOUT", 5*time.Second)
	c.AllowedOrigin = getenv("ALLOWED_ORIGIN", "http://localhost:4200")

	c.PGHost = getenv("DB_HOST", "localhost")
	c.PGPort = getenvi("DB_PORT", 5432)
	c.PGUser = getenv("DB_USER", "app")
	c.PGPassword = getenv("DB_PASSWORD", "app")
	c.PGDatabase = getenv("DB_NAME", "microblog")
	c.PGSSLMode = getenv("DB_SSLMODE", "disable")

	c.CacheTable = getenv("CACHE_TABLE_NAME", "")
	c.AWSRegion = getenv("AWS_REGION", "us-east-1")
	c.CacheCapacity = getenvi("RECENT_CACHE_CAP", 10)

	c.UploadBucket = getenv("UPLOAD_BUCKET", "")

	c.RedisAddr = getenv("CACHE_ENDPOINT", "")
	c.PageCacheTTL = getenvd("PAGE_CACHE_TTL", 0)

	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvd(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
