package config

import (
	"os"
	"strconv"
)

// Config kolejki-fizjo (HTTP API) configuration.
type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	Cloud CloudConfig
}

// CloudConfig drives the optional reachability probe. Leaving URL or key
// empty keeps the app fully offline.
type CloudConfig struct {
	URL     string
	AnonKey string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Cloud.URL = getEnv("CLOUD_URL", "")
	cfg.Cloud.AnonKey = getEnv("CLOUD_ANON_KEY", "")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
