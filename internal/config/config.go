package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort string

	APIBaseURL   string
	APITimeout   time.Duration
	APIRateLimit float64
	APIRetries   int

	JWTSecret    string
	CookieSecure bool

	DBUrl string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DraftTTL      time.Duration

	SalonTimezone string
	HorizonDays   int

	CORSOrigins []string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:        getEnv("ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		APIBaseURL:   strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
		APITimeout:   getEnvDuration("API_TIMEOUT", 10*time.Second),
		APIRateLimit: getEnvFloat("API_RATE_LIMIT", 20),
		APIRetries:   getEnvInt("API_RETRIES", 2),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),

		DBUrl: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		DraftTTL:      getEnvDuration("DRAFT_TTL", 2*time.Hour),

		SalonTimezone: getEnv("SALON_TIMEZONE", "UTC"),
		HorizonDays:   getEnvInt("BOOKING_HORIZON_DAYS", 30),

		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
