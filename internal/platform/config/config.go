package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageDriverPgsql  = "pgsql"
	StorageDriverMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	StorageDriver   string
	MigrationsPath  string
	JWTSecret       string
	JWTIssuer       string
	RateLimit       string
	FrontendBaseURL string

	// Dashboard cache; an empty RedisAddr disables caching.
	RedisAddr         string
	DashboardCacheTTL time.Duration

	// Main-wallet bootstrap
	MainWalletName string
	SystemUserID   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPgsql)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "membership-ledger")
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("DASHBOARD_CACHE_TTL", "30s")
	v.SetDefault("MAIN_WALLET_NAME", "Main Wallet")
	v.SetDefault("SYSTEM_USER_ID", "system")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:   v.GetString("STORAGE_DRIVER"),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		RateLimit:       v.GetString("RATE_LIMIT"),
		FrontendBaseURL: v.GetString("FRONTEND_BASE_URL"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		MainWalletName:  v.GetString("MAIN_WALLET_NAME"),
		SystemUserID:    v.GetString("SYSTEM_USER_ID"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageDriverPgsql:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageDriverMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, ledger data will not survive a restart.")
	default:
		log.Printf("Warning: Invalid value for STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPgsql)
		cfg.StorageDriver = StorageDriverPgsql
	}

	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	ttlStr := v.GetString("DASHBOARD_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl < 0 {
		ttl = 30 * time.Second
		log.Printf("Warning: Invalid value for DASHBOARD_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.DashboardCacheTTL = ttl

	if cfg.MainWalletName == "" {
		cfg.MainWalletName = "Main Wallet"
	}
	if cfg.SystemUserID == "" {
		cfg.SystemUserID = "system"
		log.Printf("Warning: SYSTEM_USER_ID not set. Defaulting to %s.\n", cfg.SystemUserID)
	}

	return cfg, nil
}
