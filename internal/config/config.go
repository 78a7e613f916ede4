// Package config loads process-wide configuration from the environment once
// at startup. Nothing in the request path reads environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the immutable configuration handed to constructors in main.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Logging  LoggingConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL  string
	Name string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

// BookingConfig selects the booking write semantics. LegacyWrites restores
// the old non-atomic insert-then-save sequence for compatibility
// testing; the default path reserves seats with one conditional update.
type BookingConfig struct {
	LegacyWrites bool
}

// Load reads configuration from well-known environment variables, falling
// back to local-development defaults. JWT_SECRET has no safe default and is
// required.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			URL:  getEnv("DATABASE_URL", "mongodb://localhost:27017"),
			Name: getEnv("DB_NAME", "eventbooking"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvDuration("TOKEN_TTL", 10*time.Hour),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Booking: BookingConfig{
			LegacyWrites: getEnvBool("BOOKING_LEGACY_WRITES", false),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
