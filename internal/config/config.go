// Package config loads server configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the composition root needs to wire the
// server. It is built once in main and passed down; no package-level
// singleton, so tests can construct their own.
type Config struct {
	Port             string
	DBPath           string // path to the SQLite file, or "memory" for the in-process backend
	JWTSecret        string
	TokenTTL         time.Duration // access token lifetime; zero means the auth default
	AviationStackKey string        // empty disables flight autofill
	AllowedOrigins   []string
	Env              string
}

// Load reads the environment, first overlaying a .env file if one
// exists. A missing .env is not an error; real deployments set the
// variables directly.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	// Ignore the error: Load only fails when the file is absent or
	// unreadable, and the environment may already be populated.
	_ = godotenv.Load(envFile)

	return Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "data/travelvault.db"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  parseDuration(getEnv("TOKEN_TTL", "")),
		// Both spellings appear in deployment docs; take whichever is
		// non-empty, preferring the underscored one.
		AviationStackKey: firstNonEmpty(os.Getenv("AVIATION_STACK_API_KEY"), os.Getenv("AVIATIONSTACK_API_KEY")),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		Env:              getEnv("ENV", "development"),
	}
}

// parseDuration parses a Go duration string ("24h", "30m"). Empty or
// malformed values become zero, which downstream treats as "use the
// default".
func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// getEnv returns the variable's value, or fallback when unset.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// firstNonEmpty returns the first value that is not the empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
