package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string

	// JWTSecret may be left empty; the service then generates a random
	// per-process secret at startup, so tokens do not survive a restart.
	JWTSecret   string
	JWTTTLHours int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8081"
	}
	return Config{
		HTTPAddr:      addr,
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTLHours:   envIntDefault("JWT_TTL_HOURS", 24),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envIntDefault("REDIS_DB", 0),
	}
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}
