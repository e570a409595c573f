package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"foodcart/internal/model"
)

// Session store backends.
const (
	SessionStoreRedis  = "redis"
	SessionStoreMySQL  = "mysql"
	SessionStoreMemory = "memory"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	BackendURL     string
	BackendTimeout time.Duration

	SessionStore  string
	SessionTTL    time.Duration
	SessionSecret string
	SecureCookies bool

	RedisAddr string
	RedisDB   int
	RedisPass string
	MySQLDSN  string
	ResetDB   bool

	GatewayKeyID  string
	StoreName     string
	DeliveryFee   decimal.Decimal
	RedirectDelay time.Duration
	MessageTTL    time.Duration

	LogLevel    string
	LogFormat   string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:5000"),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 0),
		SessionStore:   getEnv("SESSION_STORE", SessionStoreRedis),
		SessionTTL:     getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		SessionSecret:  getEnv("SESSION_SECRET", "change-me"),
		SecureCookies:  getEnvBool("SECURE_COOKIES", false),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		MySQLDSN:       os.Getenv("MYSQL_DSN"),
		ResetDB:        getEnvBool("RESET_DB", false),
		GatewayKeyID:   getEnv("GATEWAY_KEY_ID", "rzp_test_key"),
		StoreName:      getEnv("STORE_NAME", "Food Delivery App"),
		DeliveryFee:    getEnvDecimal("DELIVERY_FEE", model.DefaultDeliveryFee),
		RedirectDelay:  getEnvDuration("REDIRECT_DELAY", 2*time.Second),
		MessageTTL:     getEnvDuration("MESSAGE_TTL", 3*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDecimal(key string, def decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if parsed, err := decimal.NewFromString(v); err == nil && !parsed.IsNegative() {
			return parsed
		}
	}
	return def
}
