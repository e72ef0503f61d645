// Package config collects the environment configuration for both
// entrypoints. A local .env file is honored when present.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Storage backend names.
const (
	BackendMemory = "memory"
	BackendDynamo = "dynamo"
	BackendRedis  = "redis"
)

// Config is the full environment configuration.
type Config struct {
	Env        string // "development" or "production"
	Addr       string // local listen address
	RunLocal   bool   // run a local HTTP server instead of the Lambda adapter
	APIVersion string // exact-match value for the API-Version header

	StorageBackend string // memory | dynamo | redis
	SessionsTable  string // DynamoDB table names (dynamo backend)
	OrdersTable    string
	TokensTable    string
	RedisURL       string // redis backend

	PermalinkBase string // public URL root for order permalinks

	OrderEventsQueueURL string // SQS queue for order.created events; empty disables
	MetricsNamespace    string // CloudWatch namespace; empty disables
	WebhookURL          string // worker: where order events are forwarded; empty logs only
}

// Load reads configuration from the environment. Missing optional values get
// sandbox defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:        getenv("APP_ENV", "development"),
		Addr:       getenv("ADDR", ":8080"),
		RunLocal:   os.Getenv("RUN_LOCAL") == "true",
		APIVersion: getenv("API_VERSION", "2026-08-01"),

		StorageBackend: getenv("STORAGE_BACKEND", BackendMemory),
		SessionsTable:  getenv("SESSIONS_TABLE", "checkout-sessions"),
		OrdersTable:    getenv("ORDERS_TABLE", "checkout-orders"),
		TokensTable:    getenv("TOKENS_TABLE", "checkout-tokens"),
		RedisURL:       getenv("REDIS_URL", "redis://localhost:6379/0"),

		PermalinkBase: getenv("PERMALINK_BASE", "https://merchant.example.com"),

		OrderEventsQueueURL: os.Getenv("ORDER_EVENTS_QUEUE_URL"),
		MetricsNamespace:    os.Getenv("METRICS_NAMESPACE"),
		WebhookURL:          os.Getenv("WEBHOOK_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
