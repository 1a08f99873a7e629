package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	PublicURL string

	// Base origin of the remote exam API. Fixed per deployment, never
	// derived at runtime.
	UpstreamBaseURL string
	UpstreamTimeout time.Duration

	// Session store backend: memory|sqlite|postgres|redis.
	SessionDriver string
	DBDriver      string
	DBDSN         string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionSecret string
	SessionTTL    time.Duration

	CORSOrigins []string
}

// FromEnv loads the gateway configuration. A .env file is honored when
// present; real environment variables win.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:        envOr("HTTP_ADDR", ":8090"),
		PublicURL:       os.Getenv("PUBLIC_URL"),
		UpstreamBaseURL: envOr("UPSTREAM_BASE_URL", "http://127.0.0.1:8080"),
		UpstreamTimeout: time.Duration(envInt("UPSTREAM_TIMEOUT_SEC", 15)) * time.Second,
		SessionDriver:   envOr("SESSION_DRIVER", "sqlite"),
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           os.Getenv("DB_DSN"),
		RedisAddr:       envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         envInt("REDIS_DB", 0),
		SessionSecret:   envOr("SESSION_HMAC_SECRET", "examgate-dev-secret"),
		SessionTTL:      time.Duration(envInt("SESSION_TTL_HOURS", 8)) * time.Hour,
		CORSOrigins:     csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
