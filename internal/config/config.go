package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Delivery
	TelegramToken string
	SendTimeout   time.Duration

	// Calendar feed
	CalendarTimeout time.Duration

	// Worker loops
	SweepInterval     time.Duration
	EventPollInterval time.Duration
	SweepConcurrency  int

	// Time & locale
	DefaultTZ string

	// Observability
	SentryDSN        string
	LogRetentionDays int
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "whisperer_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),
		SendTimeout:   parseDuration(getEnv("SEND_TIMEOUT", "10s"), 10*time.Second),

		CalendarTimeout: parseDuration(getEnv("CALENDAR_TIMEOUT", "5s"), 5*time.Second),

		SweepInterval:     parseDuration(getEnv("SWEEP_INTERVAL", "5m"), 5*time.Minute),
		EventPollInterval: parseDuration(getEnv("EVENT_POLL_INTERVAL", "30s"), 30*time.Second),
		SweepConcurrency:  parseInt(getEnv("SWEEP_CONCURRENCY", "8"), 8),

		DefaultTZ: getEnv("DEFAULT_TZ", "America/New_York"),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
