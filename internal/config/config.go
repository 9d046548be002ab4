package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string

	// Logging
	LogLevel       string // "debug", "info", "warn", "error"
	LogDevelopment bool

	// Bearer credentials are HS256 JWTs signed with this secret
	AuthJWTSecret string

	// Session slots go to Redis when set, Postgres otherwise
	RedisURL string

	// Search configuration
	SearchProvider string // "mock" or "vector"
	SearchDelay    time.Duration
	SearchCacheTTL time.Duration
	SearchTopK     int
	CampaignDelay  time.Duration
	SessionIdleTTL time.Duration
	OpenAIAPIKey   string
	EmbeddingModel string

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	UploadsDir string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		log.Println("Attempting to load from parent directory...")
		err = godotenv.Load("../../.env")
		if err != nil {
			log.Println("Warning: Could not load .env file, using environment variables")
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the current process environment without touching .env files.
func FromEnv() *Config {
	searchProvider := os.Getenv("SEARCH_PROVIDER")
	if searchProvider == "" {
		searchProvider = "mock" // default
	}

	return &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogDevelopment:      getBool("LOG_DEVELOPMENT", false),
		AuthJWTSecret:       os.Getenv("AUTH_JWT_SECRET"),
		RedisURL:            os.Getenv("REDIS_URL"),
		SearchProvider:      searchProvider,
		SearchDelay:         getDuration("SEARCH_DELAY", 1500*time.Millisecond),
		SearchCacheTTL:      getDuration("SEARCH_CACHE_TTL", 15*time.Minute),
		SearchTopK:          getInt("SEARCH_TOP_K", 50),
		CampaignDelay:       getDuration("CAMPAIGN_DELAY", time.Second),
		SessionIdleTTL:      getDuration("SESSION_IDLE_TTL", 30*time.Minute),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		CheckoutSuccessURL:  getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:5173/dashboard?checkout=success"),
		CheckoutCancelURL:   getEnv("CHECKOUT_CANCEL_URL", "http://localhost:5173/dashboard?checkout=cancelled"),
		UploadsDir:          getEnv("UPLOADS_DIR", "./uploads"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// getDuration accepts Go duration strings ("1500ms") or bare milliseconds ("1500").
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
	return fallback
}
