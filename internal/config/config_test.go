package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Point ENV_FILE somewhere nonexistent so a developer's local .env
	// can't leak into the test.
	t.Setenv("ENV_FILE", "testdata/no-such-env")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPath != "data/travelvault.db" {
		t.Errorf("DBPath = %q, want data/travelvault.db", cfg.DBPath)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.JWTSecret != "" {
		t.Errorf("JWTSecret = %q, want empty", cfg.JWTSecret)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENV_FILE", "testdata/no-such-env")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "memory")
	t.Setenv("JWT_SECRET", "test-secret-at-least-16")
	t.Setenv("ALLOWED_ORIGINS", "https://vault.example.com, http://localhost:3000")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.DBPath != "memory" {
		t.Errorf("DBPath = %q, want memory", cfg.DBPath)
	}
	want := []string{"https://vault.example.com", "http://localhost:3000"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestLoad_TokenTTL(t *testing.T) {
	t.Setenv("ENV_FILE", "testdata/no-such-env")

	t.Setenv("TOKEN_TTL", "")
	if got := Load().TokenTTL; got != 0 {
		t.Errorf("unset TOKEN_TTL = %v, want 0", got)
	}

	t.Setenv("TOKEN_TTL", "36h")
	if got := Load().TokenTTL; got != 36*time.Hour {
		t.Errorf("TOKEN_TTL = %v, want 36h", got)
	}

	// Malformed and negative values fall back to the default.
	t.Setenv("TOKEN_TTL", "one-day")
	if got := Load().TokenTTL; got != 0 {
		t.Errorf("malformed TOKEN_TTL = %v, want 0", got)
	}
	t.Setenv("TOKEN_TTL", "-1h")
	if got := Load().TokenTTL; got != 0 {
		t.Errorf("negative TOKEN_TTL = %v, want 0", got)
	}
}

func TestLoad_AviationStackKeySpellings(t *testing.T) {
	t.Setenv("ENV_FILE", "testdata/no-such-env")

	t.Setenv("AVIATIONSTACK_API_KEY", "compact")
	t.Setenv("AVIATION_STACK_API_KEY", "")
	if got := Load().AviationStackKey; got != "compact" {
		t.Errorf("AviationStackKey = %q, want compact", got)
	}

	// The underscored spelling wins when both are set.
	t.Setenv("AVIATION_STACK_API_KEY", "underscored")
	if got := Load().AviationStackKey; got != "underscored" {
		t.Errorf("AviationStackKey = %q, want underscored", got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b", []string{"a", "b"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
