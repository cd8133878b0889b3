package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	Calculation CalculationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds bearer-token configuration for the management API.
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// CalculationConfig carries the attendance engine tunables. It is passed
// explicitly into the calculator, aggregator and cron jobs instead of being
// read from a global settings table.
type CalculationConfig struct {
	// DefaultShiftID is used when no assignment covers the date. Empty means
	// no fallback: days without a shift skip shift-relative metrics.
	DefaultShiftID string

	// WeekendDays are treated as non-working days.
	WeekendDays []time.Weekday

	// AggregationWorkers bounds the parallelism of the monthly batch.
	AggregationWorkers int

	// PunchProcessInterval is how often pending punch logs are reconciled.
	PunchProcessInterval time.Duration

	// ReconcileRetries bounds optimistic-lock retries on concurrent writes.
	ReconcileRetries int
}

func Load() (*Config, error) {
	// .env is optional outside development
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
		Name:     getEnv("DB_NAME", "attendance_engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Engine configuration
	workers, err := strconv.Atoi(getEnv("AGGREGATION_WORKERS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid AGGREGATION_WORKERS: %w", err)
	}

	punchInterval, err := time.ParseDuration(getEnv("PUNCH_PROCESS_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCH_PROCESS_INTERVAL: %w", err)
	}

	retries, err := strconv.Atoi(getEnv("RECONCILE_RETRIES", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_RETRIES: %w", err)
	}

	config.Calculation = CalculationConfig{
		DefaultShiftID:       getEnv("DEFAULT_SHIFT_ID", ""),
		WeekendDays:          parseWeekendDays(getEnvSlice("WEEKEND_DAYS")),
		AggregationWorkers:   workers,
		PunchProcessInterval: punchInterval,
		ReconcileRetries:     retries,
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
	if c.Calculation.AggregationWorkers < 1 {
		return fmt.Errorf("AGGREGATION_WORKERS must be at least 1")
	}
	if c.Calculation.ReconcileRetries < 1 {
		return fmt.Errorf("RECONCILE_RETRIES must be at least 1")
	}
	return nil
}

// IsWeekend reports whether d falls on a configured weekend day.
func (c CalculationConfig) IsWeekend(d time.Time) bool {
	for _, wd := range c.WeekendDays {
		if d.Weekday() == wd {
			return true
		}
	}
	return false
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

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}

var weekdayNames = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

func parseWeekendDays(names []string) []time.Weekday {
	if len(names) == 0 {
		return []time.Weekday{time.Saturday, time.Sunday}
	}
	var days []time.Weekday
	for _, name := range names {
		if wd, ok := weekdayNames[strings.ToUpper(strings.TrimSpace(name))]; ok {
			days = append(days, wd)
		}
	}
	if len(days) == 0 {
		return []time.Weekday{time.Saturday, time.Sunday}
	}
	return days
}
