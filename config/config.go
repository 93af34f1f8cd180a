package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"schoollink/internal/domain"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Environment     string
	Port            string
	StorageBackend  string
	DataDir         string
	DBUrl           string
	Timezone        string
	DefaultCategory domain.Category
	JWTSecret       string
	SessionTTL      time.Duration
	SyncSchedule    string
	AllowedOrigins  []string
	StrictLoad      bool
	RequestTimeout  time.Duration
}

// fileConfig is the optional YAML overlay. Every key mirrors an environment variable.
type fileConfig struct {
	Port            string `yaml:"port"`
	StorageBackend  string `yaml:"storage_backend"`
	DataDir         string `yaml:"data_dir"`
	DatabaseURL     string `yaml:"database_url"`
	Timezone        string `yaml:"timezone"`
	DefaultCategory string `yaml:"default_category"`
	JWTSecret       string `yaml:"jwt_secret"`
	SessionTTL      string `yaml:"session_ttl"`
	SyncSchedule    string `yaml:"sync_schedule"`
	AllowedOrigins  string `yaml:"allowed_origins"`
	StrictLoad      string `yaml:"strict_load"`
	RequestTimeout  string `yaml:"request_timeout"`
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production. When CONFIG_FILE
// names a YAML file its keys are used wherever the environment leaves a gap.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Environment:     env,
		Port:            lookup("PORT", file.Port, "8080"),
		StorageBackend:  strings.ToLower(lookup("STORAGE_BACKEND", file.StorageBackend, BackendFile)),
		DataDir:         lookup("DATA_DIR", file.DataDir, "./var/data"),
		DBUrl:           lookup("DATABASE_URL", file.DatabaseURL, ""),
		Timezone:        lookup("TIMEZONE", file.Timezone, "Asia/Seoul"),
		DefaultCategory: domain.Category(lookup("DEFAULT_CATEGORY", file.DefaultCategory, string(domain.CategoryMeeting))),
		JWTSecret:       lookup("JWT_SECRET", file.JWTSecret, ""),
		SyncSchedule:    lookup("SYNC_SCHEDULE", file.SyncSchedule, "@every 1m"),
		AllowedOrigins:  splitList(lookup("ALLOWED_ORIGINS", file.AllowedOrigins, "")),
	}

	var errs []error
	var err error
	if cfg.SessionTTL, err = time.ParseDuration(lookup("SESSION_TTL", file.SessionTTL, "720h")); err != nil {
		errs = append(errs, fmt.Errorf("SESSION_TTL: %w", err))
	}
	if cfg.RequestTimeout, err = time.ParseDuration(lookup("REQUEST_TIMEOUT", file.RequestTimeout, "5s")); err != nil {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT: %w", err))
	}
	if cfg.StrictLoad, err = strconv.ParseBool(lookup("STRICT_LOAD", file.StrictLoad, "false")); err != nil {
		errs = append(errs, fmt.Errorf("STRICT_LOAD: %w", err))
	}

	switch cfg.StorageBackend {
	case BackendFile, BackendMemory:
	case BackendPostgres:
		if cfg.DBUrl == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND: unknown backend %q", cfg.StorageBackend))
	}
	if !cfg.DefaultCategory.Valid() {
		errs = append(errs, fmt.Errorf("DEFAULT_CATEGORY: unknown category %q", cfg.DefaultCategory))
	}
	if cfg.JWTSecret == "" {
		if env == "production" {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Location returns the configured school timezone, or UTC when it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func lookup(key, fromFile, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if strings.TrimSpace(fromFile) != "" {
		return strings.TrimSpace(fromFile)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
