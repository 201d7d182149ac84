package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

const insecureDefaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	StorageDriver  string
	DatabaseURL    string
	MongoURI       string
	MongoDatabase  string
	RunMigrations  bool
	MigrationsPath string
	DBMaxConns     int32 // 0 keeps the pgxpool default

	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter format, e.g. "300-M"; empty disables

	DefaultCurrency string

	AuthEnabled       bool
	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration
	APIKeyHash        string // bcrypt hash of the accepted X-API-Key
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "balance_dashboard")
	v.SetDefault("RUN_MIGRATIONS", false)
	v.SetDefault("PGSQL_MAX_CONNS", 0)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("DEFAULT_CURRENCY", "EUR")
	v.SetDefault("AUTH_ENABLED", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "balance-dashboard")
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("API_KEY_HASH", "")
	v.AutomaticEnv()

	cfg := &Config{
		StorageDriver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDatabase:      v.GetString("MONGO_DATABASE"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		DBMaxConns:         v.GetInt32("PGSQL_MAX_CONNS"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          v.GetString("RATE_LIMIT"),
		DefaultCurrency:    strings.ToUpper(v.GetString("DEFAULT_CURRENCY")),
		AuthEnabled:        v.GetBool("AUTH_ENABLED"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		APIKeyHash:         v.GetString("API_KEY_HASH"),
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required when STORAGE_DRIVER=%s", StorageMongo)
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q (want %s or %s)", cfg.StorageDriver, StoragePostgres, StorageMongo)
	}

	if cfg.DBMaxConns < 0 {
		return nil, fmt.Errorf("PGSQL_MAX_CONNS must not be negative, got %d", cfg.DBMaxConns)
	}

	if len(cfg.DefaultCurrency) != 3 {
		return nil, fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter code, got %q", cfg.DefaultCurrency)
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 24 * time.Hour
		slog.Warn("Invalid JWT_EXPIRY_DURATION, using default", "value", jwtExpiryStr, "default", jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET is required in production when AUTH_ENABLED is set")
		}
		cfg.JWTSecret = insecureDefaultJWTSecret // !! CHANGE IN PRODUCTION !!
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
