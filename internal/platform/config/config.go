package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration so main stays lean.
type Server struct {
	Addr            string
	PostgresDSN     string
	Redis           RedisConfig
	AuditBufferSize int
	StrictValidate  bool
	ShutdownTimeout time.Duration
}

// RedisConfig holds connection settings for the optional Redis cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("AXISD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	auditBuffer := envInt("AXISD_AUDIT_BUFFER", 256)

	return Server{
		Addr:            addr,
		PostgresDSN:     os.Getenv("AXISD_POSTGRES_DSN"),
		Redis:           redisFromEnv(),
		AuditBufferSize: auditBuffer,
		StrictValidate:  os.Getenv("AXISD_STRICT_VALIDATE") == "true",
		ShutdownTimeout: 10 * time.Second,
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("AXISD_REDIS_URL"),
		PoolSize:     envInt("AXISD_REDIS_POOL_SIZE", 10),
		MinIdleConns: envInt("AXISD_REDIS_MIN_IDLE", 2),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
