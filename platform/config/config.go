// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetEnv() string
	GetHTTPAddr() string
	GetFrontendDir() string
}

// CORSConfig provides settings for the CORS middleware.
type CORSConfig interface {
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// IngestConfig provides settings for lead-batch ingestion.
type IngestConfig interface {
	GetLeadsFilePath() string
}

// ClassifierConfig provides settings for the external intent classifier.
type ClassifierConfig interface {
	GetClassifierProvider() string
	GetClassifierAPIURL() string
	GetClassifierAPIKey() string
	GetClassifierModel() string
	GetClassifierTimeout() time.Duration
	GetGeminiAPIKey() string
}

// Config holds all application configuration, loaded from the environment.
type Config struct {
	Env         string
	HTTPAddr    string
	FrontendDir string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	LeadsFilePath string

	ClassifierProvider string
	ClassifierAPIURL   string
	ClassifierAPIKey   string
	ClassifierModel    string
	ClassifierTimeout  time.Duration
	GeminiAPIKey       string
}

// Provider names accepted for CLASSIFIER_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOff    = "off"
)

// Load reads configuration from the environment (and .env when present).
// A missing or incomplete classifier configuration is not an error: the
// pipeline degrades to the fixed fallback intent instead.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		FrontendDir: getEnv("FRONTEND_DIR", ""),

		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),

		LeadsFilePath: getEnv("LEADS_FILE_PATH", "data/test_leads_30.csv"),

		ClassifierProvider: strings.ToLower(getEnv("CLASSIFIER_PROVIDER", ProviderOpenAI)),
		ClassifierAPIURL:   getEnv("CLASSIFIER_API_URL", ""),
		ClassifierAPIKey:   getEnv("CLASSIFIER_API_KEY", ""),
		ClassifierModel:    getEnv("CLASSIFIER_MODEL", "llama-3.3-70b-versatile"),
		ClassifierTimeout:  mustDuration(getEnv("CLASSIFIER_TIMEOUT", "10s")),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
	}

	if cfg.ClassifierTimeout <= 0 {
		cfg.ClassifierTimeout = 10 * time.Second
	}

	return cfg, nil
}

// Interface implementations.

func (c *Config) GetEnv() string         { return c.Env }
func (c *Config) GetHTTPAddr() string    { return c.HTTPAddr }
func (c *Config) GetFrontendDir() string { return c.FrontendDir }

func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetLeadsFilePath() string { return c.LeadsFilePath }

func (c *Config) GetClassifierProvider() string       { return c.ClassifierProvider }
func (c *Config) GetClassifierAPIURL() string         { return c.ClassifierAPIURL }
func (c *Config) GetClassifierAPIKey() string         { return c.ClassifierAPIKey }
func (c *Config) GetClassifierModel() string          { return c.ClassifierModel }
func (c *Config) GetClassifierTimeout() time.Duration { return c.ClassifierTimeout }
func (c *Config) GetGeminiAPIKey() string             { return c.GeminiAPIKey }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
