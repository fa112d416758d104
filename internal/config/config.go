package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Lot          LotConfig
	Pricing      PricingConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LotConfig fixes the size of the parking pool.
type LotConfig struct {
	Capacity int
}

// PricingConfig tunes the fee engine.
type PricingConfig struct {
	BaseRatePerHour float64
	PeakMultiplier  float64
	// PeakWindows is a comma-separated list of hour ranges, e.g. "9-17,19-21".
	PeakWindows string
}

// RedisConfig holds connection values for the event broadcast channel.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	EventChannel string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters, including the bootstrap
// operator account created at startup.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	OperatorEmail         string
	OperatorPassword      string
}

// NotificationConfig holds stub notification endpoints for gate displays.
type NotificationConfig struct {
	GateDisplayURL string
	WebhookURL     string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	capacity := getEnvAsInt("LOT_CAPACITY", 50)
	if capacity < 0 {
		return nil, fmt.Errorf("LOT_CAPACITY must not be negative: %d", capacity)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "parking-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Lot: LotConfig{
			Capacity: capacity,
		},
		Pricing: PricingConfig{
			BaseRatePerHour: getEnvAsFloat("PRICING_BASE_RATE_PER_HOUR", 5),
			PeakMultiplier:  getEnvAsFloat("PRICING_PEAK_MULTIPLIER", 2),
			PeakWindows:     getEnv("PRICING_PEAK_WINDOWS", "9-17"),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			DB:           redisDB,
			EventChannel: getEnv("REDIS_EVENT_CHANNEL", "parking.events"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			OperatorEmail:         getEnv("AUTH_OPERATOR_EMAIL", "operator@example.com"),
			OperatorPassword:      os.Getenv("AUTH_OPERATOR_PASSWORD"),
		},
		Notification: NotificationConfig{
			GateDisplayURL: getEnv("NOTIFY_GATE_DISPLAY_URL", ""),
			WebhookURL:     getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ParsePeakWindows interprets the PeakWindows spec. Malformed entries are
// skipped rather than failing startup.
func (p PricingConfig) ParsePeakWindows() [][2]int {
	var windows [][2]int
	for _, part := range strings.Split(p.PeakWindows, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.SplitN(part, "-", 2)
		if len(bounds) != 2 {
			continue
		}
		start, err1 := strconv.Atoi(strings.TrimSpace(bounds[0]))
		end, err2 := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if err1 != nil || err2 != nil || start < 0 || end > 24 || start >= end {
			continue
		}
		windows = append(windows, [2]int{start, end})
	}
	return windows
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
