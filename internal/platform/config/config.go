package config

import (
	"errors"
	"os"
	"strings"
)

type HTTPConfig struct {
	Addr string
}

type OracleConfig struct {
	TripServiceURL       string
	ModerationServiceURL string
}

// AppConfig carries everything the social service reads from the environment.
// DATABASE_URL, NATS_URL and REDIS_URL are optional outside production:
// missing values degrade to in-memory stores, a no-op event sink and an
// uncached like count respectively.
type AppConfig struct {
	ServiceName string
	Env         string
	LogLevel    string
	HTTP        HTTPConfig
	DatabaseURL string
	NATSURL     string
	RedisURL    string
	JWTSecret   string
	Oracles     OracleConfig
}

func Load() (AppConfig, error) {
	cfg := AppConfig{
		ServiceName: getenv("SERVICE_NAME"),
		Env:         getenv("APP_ENV"),
		LogLevel:    getenv("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Addr: getenv("HTTP_ADDR"),
		},
		DatabaseURL: getenv("DATABASE_URL"),
		NATSURL:     getenv("NATS_URL"),
		RedisURL:    getenv("REDIS_URL"),
		JWTSecret:   getenv("JWT_SECRET"),
		Oracles: OracleConfig{
			TripServiceURL:       getenv("TRIP_SERVICE_URL"),
			ModerationServiceURL: getenv("MODERATION_SERVICE_URL"),
		},
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "social-service"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.JWTSecret == "" {
		return AppConfig{}, errors.New("JWT_SECRET is required")
	}
	if cfg.IsProduction() && cfg.DatabaseURL == "" {
		return AppConfig{}, errors.New("DATABASE_URL is required in production")
	}
	return cfg, nil
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
