package config

import (
	"context"
	"os"
	"testing"
	"time"
)

// unset clears an environment variable for the test, restoring it afterwards.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_MissingSecretIsFatal(t *testing.T) {
	unset(t, "JWT_SECRET")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing JWT secret")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "thisIsAVerySecureSecretKey")
	unset(t, "JWT_VALIDITY_MS")
	unset(t, "PORT")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.JWT.ValidityMillis != 900000 {
		t.Fatalf("expected default validity 900000, got %d", cfg.JWT.ValidityMillis)
	}
	if cfg.JWT.Validity() != 15*time.Minute {
		t.Fatalf("expected 15m validity, got %v", cfg.JWT.Validity())
	}
}

func TestLoad_RejectsNonPositiveValidity(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_VALIDITY_MS", "0")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for non-positive validity")
	}
}
