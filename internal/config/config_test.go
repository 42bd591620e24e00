// ABOUTME: Tests for SmartFit configuration management.
// ABOUTME: Covers env defaults, .env loading, origin parsing, path expansion, and storage/logger factories.
package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// clearEnv unsets every SmartFit variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDatabaseURL, EnvCORSOrigins, EnvHTTPAddr, EnvLogLevel} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, DefaultHTTPAddr)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if !slices.Equal(cfg.CORSOrigins, DefaultCORSOrigins) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, DefaultCORSOrigins)
	}
}

func TestFromEnvExplicit(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDatabaseURL, " postgres://u:p@localhost/smartfit ")
	t.Setenv(EnvCORSOrigins, "https://app.example.com, https://admin.example.com")
	t.Setenv(EnvHTTPAddr, "127.0.0.1:9000")
	t.Setenv(EnvLogLevel, "debug")

	cfg := FromEnv()
	if cfg.DatabaseURL != "postgres://u:p@localhost/smartfit" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	want := []string{"https://app.example.com", "https://admin.example.com"}
	if !slices.Equal(cfg.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", DefaultCORSOrigins},
		{" , ,", DefaultCORSOrigins},
		{"http://a", []string{"http://a"}},
		{"http://a,,http://b ", []string{"http://a", "http://b"}},
	}
	for _, tt := range tests {
		if got := ParseOrigins(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseOrigins(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	got := ParseOrigins("")
	got[0] = "mutated"
	if DefaultCORSOrigins[0] == "mutated" {
		t.Error("ParseOrigins must not share the defaults slice")
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() with no env file should not error: %v", err)
	}
	if cfg.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("HTTPAddr = %q, want default", cfg.HTTPAddr)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHTTPAddr, ":7000")

	path := filepath.Join(t.TempDir(), ".env")
	content := "DATABASE_URL=sqlite:///tmp/smartfit.db\nHTTP_ADDR=:9999\nLOG_LEVEL=warn\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DatabaseURL != "sqlite:///tmp/smartfit.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.HTTPAddr != ":7000" {
		t.Errorf("process env should win over .env, got %q", cfg.HTTPAddr)
	}
}

func TestLoadMalformedEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DATABASE_URL='unterminated\n"), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed env file")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/smartfit", filepath.Join(home, "data/smartfit")},
		{"data/smartfit", "data/smartfit"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolvedDatabaseURL(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in, want string
	}{
		{"sqlite://~/smartfit.db", "sqlite://" + filepath.Join(home, "smartfit.db")},
		{"sqlite:~/smartfit.db", "sqlite:" + filepath.Join(home, "smartfit.db")},
		{"file:~/smartfit.db", "file:" + filepath.Join(home, "smartfit.db")},
		{"sqlite:///var/lib/smartfit.db", "sqlite:///var/lib/smartfit.db"},
		{"postgres://u@localhost/~db", "postgres://u@localhost/~db"},
	}
	for _, tt := range tests {
		cfg := &Config{DatabaseURL: tt.in}
		if got := cfg.ResolvedDatabaseURL(); got != tt.want {
			t.Errorf("ResolvedDatabaseURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpenStorage(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.OpenStorage(context.Background()); !errors.Is(err, ErrNoDatabaseURL) {
		t.Errorf("expected ErrNoDatabaseURL, got %v", err)
	}

	dbPath := filepath.Join(t.TempDir(), "nested", "smartfit.db")
	cfg = &Config{DatabaseURL: "sqlite://" + dbPath}
	db, err := cfg.OpenStorage(context.Background())
	if err != nil {
		t.Fatalf("OpenStorage failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected database file to be created: %v", err)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := (&Config{LogLevel: "warn"}).Logger(&buf)
	if err != nil {
		t.Fatalf("Logger failed: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "user_id", 7)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "user_id=7") {
		t.Errorf("unexpected log output: %q", out)
	}

	if _, err := (&Config{LogLevel: "loud"}).Logger(&buf); err == nil {
		t.Error("Expected error for unknown log level")
	}
}
