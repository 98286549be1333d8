package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Stats      StatsConfig
	Commission CommissionConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// StatsConfig selects how charges enter period aggregates.
type StatsConfig struct {
	// ChargePolicy is "windowed" (sum charges dated inside the period) or
	// "prorated" (all-time total split by fixed per-period divisors).
	ChargePolicy string
}

// CommissionConfig tunes the weekly commission generator.
type CommissionConfig struct {
	// WeeksBack is how many past weeks each run recomputes.
	WeeksBack int
	// ForceOverwritesValidated lets forced runs rewrite validated rows.
	ForceOverwritesValidated bool
}

func Load() (*Config, error) {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "salon"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Statistics configuration
	config.Stats = StatsConfig{
		ChargePolicy: getEnv("STATS_CHARGE_POLICY", "windowed"),
	}

	// Commission configuration
	weeksBack, err := strconv.Atoi(getEnv("COMMISSION_WEEKS_BACK", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_WEEKS_BACK: %w", err)
	}
	config.Commission = CommissionConfig{
		WeeksBack:                weeksBack,
		ForceOverwritesValidated: getEnv("COMMISSION_FORCE_OVERWRITES_VALIDATED", "false") == "true",
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Stats.ChargePolicy != "windowed" && c.Stats.ChargePolicy != "prorated" {
		return fmt.Errorf("STATS_CHARGE_POLICY must be windowed or prorated")
	}
	if c.Commission.WeeksBack <= 0 {
		return fmt.Errorf("COMMISSION_WEEKS_BACK must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	return strings.Split(getEnv(key, fallback), ",")
}
