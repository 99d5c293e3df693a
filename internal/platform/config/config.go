package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	Environment    string
	MigrationsDir  string
	RunMigrations  bool
	LegacyHoursCSV string
	TokenTTL       time.Duration

	SeedOwnerEmail    string
	SeedOwnerPassword string
}

func Load() Config {
	return Config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		Environment:    getEnv("APP_ENV", "development"),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:  getEnvBool("RUN_MIGRATIONS", true),
		LegacyHoursCSV: getEnv("LEGACY_HOURS_CSV", "hours_data.csv"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 12*time.Hour),

		SeedOwnerEmail:    getEnv("SEED_OWNER_EMAIL", ""),
		SeedOwnerPassword: getEnv("SEED_OWNER_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}
