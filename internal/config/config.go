package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env   string
	Port  int
	DBURL string

	// Token service
	JWTSecret        string
	AccessTTLMinutes int

	// Optional infrastructure
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	OTELEndpoint  string

	AllowedOrigins []string

	// Seeded owner account (skipped when empty)
	OwnerEmail    string
	OwnerPassword string
	OwnerName     string

	// Rate limiting for credential endpoints
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// DefaultAccessTTLMinutes is one day.
const DefaultAccessTTLMinutes = 1440

// fallbackJWTSecret is a development-only key. Load keeps it when JWT_SECRET is
// unset; callers should check UsingFallbackSecret and warn loudly.
const fallbackJWTSecret = "dev-secret-change-me"

func Load() Config {
	// best effort: a missing .env file is fine
	_ = godotenv.Load()

	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		JWTSecret:        getEnv("JWT_SECRET", fallbackJWTSecret),
		AccessTTLMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", DefaultAccessTTLMinutes),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		OTELEndpoint:  getEnv("OTEL_ENDPOINT", ""),

		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		OwnerEmail:    getEnv("OWNER_EMAIL", ""),
		OwnerPassword: getEnv("OWNER_PASSWORD", ""),
		OwnerName:     getEnv("OWNER_NAME", "Owner"),

		AuthRateLimit:  getEnvInt("AUTH_RATE_LIMIT", 10),
		AuthRateWindow: time.Duration(getEnvInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}
}

// UsingFallbackSecret reports whether the process is running on the baked-in
// development signing key.
func (c Config) UsingFallbackSecret() bool {
	return c.JWTSecret == fallbackJWTSecret
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMinutes) * time.Minute
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "bookhub")
	pass := getEnv("DB_PASSWORD", "bookhub")
	name := getEnv("DB_NAME", "bookhub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)

	if v == "" {
		return fallback
	}

	num, err := strconv.Atoi(v)

	if err != nil {
		return fallback
	}

	return num
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")

	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
