package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	FeedBaseURL  string
	FeedUsername string
	FeedPassword string
	FeedTimeout  time.Duration
	PageSize     int
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	CacheTTL     time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		FeedBaseURL:  env("FEED_BASE_URL", "http://tech-test.wamdev.net/"),
		FeedUsername: env("FEED_USERNAME", ""),
		FeedPassword: env("FEED_PASSWORD", ""),
		FeedTimeout:  time.Duration(atoi("FEED_TIMEOUT_SECONDS", 30)) * time.Second,
		PageSize:     atoi("PAGE_SIZE", 15),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.FeedUsername == "" || c.FeedPassword == "" {
		log.Warn().Msg("FEED_USERNAME/FEED_PASSWORD not set; extranet login will fail")
	}
	if c.PageSize < 1 {
		c.PageSize = 15
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
