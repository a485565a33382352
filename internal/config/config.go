package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP server (serve mode)
	Port   string
	APIKey string

	// Batch discovery
	Extensions []string
	Exclude    []string
	DryRun     bool

	// Upload limits
	MaxUploadBytes int64

	// Logging
	LogFormat string
}

func Load() Config {
	cfg := Config{
		Port:   envOr("PORT", "8090"),
		APIKey: os.Getenv("A11YFIX_API_KEY"),

		Extensions: envList("A11YFIX_EXTENSIONS", []string{".html"}),
		Exclude:    envList("A11YFIX_EXCLUDE", []string{"node_modules", ".git"}),
		DryRun:     envBool("A11YFIX_DRY_RUN", false),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		LogFormat: strings.ToLower(envOr("LOG_FORMAT", "json")),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one file extension is required")
	}
	for _, ext := range c.Extensions {
		if strings.Trim(ext, ".") == "" {
			return fmt.Errorf("invalid file extension %q", ext)
		}
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envList splits a comma-separated variable, dropping empty items.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
