package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Payroll    PayrollConfig
	Attendance AttendanceConfig
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
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig carries the overtime policy knobs. The defaults are a
// documented assumption, not confirmed payroll policy; deployments must set
// them explicitly once the policy owner signs off.
type PayrollConfig struct {
	StandardDailyHours decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

// AttendanceConfig holds attendance policy configuration.
type AttendanceConfig struct {
	CorrectionWindowDays int
}

func Load() (*Config, error) {
	// Missing .env is fine in environments that set real env vars.
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
		Name:     getEnv("DB_NAME", "hrops"),
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

	// Payroll policy configuration
	standardHours, err := decimal.NewFromString(getEnv("PAYROLL_STANDARD_DAILY_HOURS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_STANDARD_DAILY_HOURS: %w", err)
	}
	overtimeMultiplier, err := decimal.NewFromString(getEnv("PAYROLL_OVERTIME_MULTIPLIER", "1.5"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_OVERTIME_MULTIPLIER: %w", err)
	}
	config.Payroll = PayrollConfig{
		StandardDailyHours: standardHours,
		OvertimeMultiplier: overtimeMultiplier,
	}

	// Attendance policy configuration
	windowDays, err := strconv.Atoi(getEnv("ATTENDANCE_CORRECTION_WINDOW_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_CORRECTION_WINDOW_DAYS: %w", err)
	}
	config.Attendance = AttendanceConfig{
		CorrectionWindowDays: windowDays,
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
	if !c.Payroll.StandardDailyHours.IsPositive() {
		return fmt.Errorf("PAYROLL_STANDARD_DAILY_HOURS must be positive")
	}
	if !c.Payroll.OvertimeMultiplier.IsPositive() {
		return fmt.Errorf("PAYROLL_OVERTIME_MULTIPLIER must be positive")
	}
	if c.Attendance.CorrectionWindowDays < 1 {
		return fmt.Errorf("ATTENDANCE_CORRECTION_WINDOW_DAYS must be at least 1")
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
