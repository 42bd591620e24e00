// ABOUTME: SmartFit process configuration from the environment and an optional .env file.
// ABOUTME: Also builds the shared logger and opens the configured storage backend.

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/smartfit/internal/storage"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvCORSOrigins = "CORS_ORIGINS"
	EnvHTTPAddr    = "HTTP_ADDR"
	EnvLogLevel    = "LOG_LEVEL"
)

const (
	DefaultHTTPAddr = ":8000"
	DefaultLogLevel = "info"
)

// DefaultCORSOrigins are the local frontend dev servers.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// ErrNoDatabaseURL is returned by OpenStorage when DATABASE_URL is unset.
var ErrNoDatabaseURL = errors.New("DATABASE_URL is not set")

// Config stores SmartFit process settings.
type Config struct {
	// DatabaseURL selects the backend: postgres://..., sqlite://path or file:path.
	// Supports ~ expansion in SQLite paths.
	DatabaseURL string

	CORSOrigins []string
	HTTPAddr    string
	LogLevel    string
}

// Load reads envFiles (default ".env") into the environment, then builds a
// Config from it. Missing env files are ignored; variables already set in the
// process environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment, applying defaults.
func FromEnv() *Config {
	cfg := &Config{
		DatabaseURL: strings.TrimSpace(os.Getenv(EnvDatabaseURL)),
		CORSOrigins: ParseOrigins(os.Getenv(EnvCORSOrigins)),
		HTTPAddr:    os.Getenv(EnvHTTPAddr),
		LogLevel:    os.Getenv(EnvLogLevel),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg
}

// ParseOrigins splits a comma-separated origin list, trimming blanks.
// An empty list yields DefaultCORSOrigins.
func ParseOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultCORSOrigins...)
	}
	return out
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// ResolvedDatabaseURL returns DatabaseURL with ~ expanded in SQLite paths.
func (c *Config) ResolvedDatabaseURL() string {
	for _, prefix := range []string{"sqlite://", "sqlite:", "file:"} {
		if rest, ok := strings.CutPrefix(c.DatabaseURL, prefix); ok {
			return prefix + ExpandPath(rest)
		}
	}
	return c.DatabaseURL
}

// OpenStorage opens the database named by DatabaseURL and ensures its schema.
func (c *Config) OpenStorage(ctx context.Context) (*storage.DB, error) {
	if c.DatabaseURL == "" {
		return nil, ErrNoDatabaseURL
	}
	return storage.Open(ctx, c.ResolvedDatabaseURL())
}

// Logger builds the process logger at the configured level.
func (c *Config) Logger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", EnvLogLevel, c.LogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "smartfit",
		ReportTimestamp: true,
	}), nil
}
