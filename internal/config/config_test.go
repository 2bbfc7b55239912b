package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveSecretKey(t *testing.T) {
	if _, err := ResolveSecretKey(""); !errors.Is(err, ErrSecretKeyMissing) {
		t.Fatalf("expected ErrSecretKeyMissing, got %v", err)
	}
	if _, err := ResolveSecretKey("change_me_in_production"); !errors.Is(err, ErrSecretKeyInsecure) {
		t.Fatalf("expected ErrSecretKeyInsecure, got %v", err)
	}
	if _, err := ResolveSecretKey("replace_with_at_least_32_random_characters"); !errors.Is(err, ErrSecretKeyInsecure) {
		t.Fatalf("expected ErrSecretKeyInsecure for example placeholder, got %v", err)
	}
	if _, err := ResolveSecretKey("too-short-secret"); !errors.Is(err, ErrSecretKeyTooShort) {
		t.Fatalf("expected ErrSecretKeyTooShort, got %v", err)
	}

	valid := "0123456789abcdef0123456789abcdef"
	secret, err := ResolveSecretKey("  " + valid + "\n")
	if err != nil {
		t.Fatalf("expected valid secret, got error: %v", err)
	}
	if secret != valid {
		t.Fatalf("expected %q, got %q", valid, secret)
	}
}

func TestLoadReadsPrefixedEnvironment(t *testing.T) {
	t.Setenv("MOMENTS_SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("MOMENTS_PORT", "9090")
	t.Setenv("MOMENTS_WATCH_INTERVAL", "500ms")
	t.Setenv("MOMENTS_COOKIE_SECURE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr() != ":9090" {
		t.Fatalf("HTTPAddr() = %q", cfg.HTTPAddr())
	}
	if cfg.WatchInterval != 500*time.Millisecond {
		t.Fatalf("WatchInterval = %v", cfg.WatchInterval)
	}
	if !cfg.CookieSecure {
		t.Fatal("expected CookieSecure")
	}
	if cfg.DBPath != "data/moments.db" {
		t.Fatalf("DBPath = %q, want default", cfg.DBPath)
	}
	if cfg.StorageQuotaBytes != 5*1024*1024 {
		t.Fatalf("StorageQuotaBytes = %d", cfg.StorageQuotaBytes)
	}
}

func TestLoadReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "MOMENTS_SECRET_KEY=abcdefghijklmnopqrstuvwxyz0123456789\nMOMENTS_DEFAULT_LANGUAGE=ru\nMOMENTS_PORT=7000\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("MOMENTS_PORT", "7100")
	t.Cleanup(func() {
		_ = os.Unsetenv("MOMENTS_SECRET_KEY")
		_ = os.Unsetenv("MOMENTS_DEFAULT_LANGUAGE")
	})

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultLanguage != "ru" {
		t.Fatalf("DefaultLanguage = %q, want ru from .env", cfg.DefaultLanguage)
	}
	if cfg.Port != 7100 {
		t.Fatalf("Port = %d, want environment value 7100", cfg.Port)
	}
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("MOMENTS_SECRET_KEY", "")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); !errors.Is(err, ErrSecretKeyMissing) {
		t.Fatalf("expected ErrSecretKeyMissing, got %v", err)
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{TZ: "Mars/Olympus"}
	if cfg.Location() != time.UTC {
		t.Fatalf("Location() = %v, want UTC", cfg.Location())
	}
}
