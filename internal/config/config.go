package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	HTTPPort string
	LogLevel string

	DatabaseURL string

	// RedisAddr selects the shared redis cache backend; empty keeps the
	// in-process memory cache.
	RedisAddr        string
	RedisCachePrefix string

	// TTL pairing for the cached product collection.
	CacheAbsoluteTTL time.Duration
	CacheSlidingTTL  time.Duration

	// DebugErrors exposes internal error details in responses.
	DebugErrors bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisCachePrefix: getEnv("REDIS_CACHE_PREFIX", "catalog_cache"),
		DebugErrors:      getEnvBool("DEBUG_ERRORS", false),
	}

	absoluteTTL, err := time.ParseDuration(getEnv("PRODUCT_CACHE_ABSOLUTE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("parse PRODUCT_CACHE_ABSOLUTE_TTL: %w", err)
	}
	cfg.CacheAbsoluteTTL = absoluteTTL

	slidingTTL, err := time.ParseDuration(getEnv("PRODUCT_CACHE_SLIDING_TTL", "2m"))
	if err != nil {
		return nil, fmt.Errorf("parse PRODUCT_CACHE_SLIDING_TTL: %w", err)
	}
	cfg.CacheSlidingTTL = slidingTTL

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.CacheAbsoluteTTL <= 0 {
		errs = append(errs, "PRODUCT_CACHE_ABSOLUTE_TTL must be > 0")
	}
	if c.CacheSlidingTTL <= 0 {
		errs = append(errs, "PRODUCT_CACHE_SLIDING_TTL must be > 0")
	}
	if c.CacheSlidingTTL > c.CacheAbsoluteTTL {
		errs = append(errs, "PRODUCT_CACHE_SLIDING_TTL must not exceed PRODUCT_CACHE_ABSOLUTE_TTL")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
