package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDeviceSecret = "default_secret_CHANGE_ME"

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageR2       = "r2"
)

// Identity providers
const (
	IdentityMock = "mock"
	IdentityHTTP = "http"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	// Device cookie
	DeviceTokenSecret string
	DeviceTokenExpiry time.Duration
	// Snapshot storage
	StorageDriver  string
	StorageTimeout time.Duration
	RedisURL       string
	DBUrl          string
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2Prefix          string
	// Identity
	IdentityProvider string
	IdentityURL      string
	IdentityTimeout  time.Duration
	MockAuthDelay    time.Duration
	// Storefront lifecycle
	StorefrontIdleTTL time.Duration
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() *Config {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// .env is optional; containers configure through the environment.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		DeviceTokenSecret: getEnv("DEVICE_TOKEN_SECRET", defaultDeviceSecret),
		DeviceTokenExpiry: getDurationEnv("DEVICE_TOKEN_EXPIRY", 365*24*time.Hour),

		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		StorageTimeout: getDurationEnv("STORAGE_TIMEOUT", 3*time.Second),
		RedisURL:       getEnv("REDIS_URL", ""),
		DBUrl:          getEnv("DB_DSN", ""),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 20),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", 15*time.Minute),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2Prefix:          getEnv("R2_PREFIX", "storefront"),

		IdentityProvider: strings.ToLower(getEnv("IDENTITY_PROVIDER", IdentityMock)),
		IdentityURL:      getEnv("IDENTITY_URL", ""),
		IdentityTimeout:  getDurationEnv("IDENTITY_TIMEOUT", 10*time.Second),
		MockAuthDelay:    getDurationEnv("MOCK_AUTH_DELAY", time.Second),

		StorefrontIdleTTL: getDurationEnv("STOREFRONT_IDLE_TTL", 30*time.Minute),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 40),
	}
}

// Validate checks that the selected drivers have what they need.
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis storage driver"))
		}
	case StoragePostgres:
		if c.DBUrl == "" {
			errs = append(errs, errors.New("DB_DSN is required for the postgres storage driver"))
		}
	case StorageR2:
		if c.R2AccountID == "" || c.R2AccessKeyID == "" || c.R2AccessKeySecret == "" || c.R2BucketName == "" {
			errs = append(errs, errors.New("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_ACCESS_KEY_SECRET and R2_BUCKET_NAME are required for the r2 storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	switch c.IdentityProvider {
	case IdentityMock:
	case IdentityHTTP:
		if c.IdentityURL == "" {
			errs = append(errs, errors.New("IDENTITY_URL is required for the http identity provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider))
	}

	if c.DeviceTokenSecret == defaultDeviceSecret {
		log.Println("WARNING: Using default device token secret. Set DEVICE_TOKEN_SECRET in production.")
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}
