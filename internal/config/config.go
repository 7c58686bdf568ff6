package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"forexcal/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	Refresh RefreshConfig        `toml:"refresh"`
	Scrape  ScrapeConfig         `toml:"scrape"`
	Logging common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// RefreshConfig contains scrape refresh settings.
type RefreshConfig struct {
	// Schedule is a cron-style expression (e.g. "*/15 * * * *").
	Schedule string `toml:"schedule"`
	// TimeoutSeconds is the per-source HTTP response timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// ScrapeConfig contains source selection settings.
type ScrapeConfig struct {
	// Sources lists enabled scrape sources in fallback priority order.
	Sources []string `toml:"sources"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies FOREXCAL_* environment variable overrides to config.
// A bare PORT is also honored for container platforms that inject it.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if port := os.Getenv("FOREXCAL_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("FOREXCAL_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if schedule := os.Getenv("FOREXCAL_REFRESH_SCHEDULE"); schedule != "" {
		config.Refresh.Schedule = schedule
	}
	if sources := os.Getenv("FOREXCAL_SCRAPE_SOURCES"); sources != "" {
		parts := strings.Split(sources, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		config.Scrape.Sources = cleaned
	}
	if level := os.Getenv("FOREXCAL_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate returns a list of configuration issues, empty when valid.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if strings.TrimSpace(c.Refresh.Schedule) == "" {
		issues = append(issues, "refresh.schedule must be a cron expression (e.g. \"*/15 * * * *\")")
	}
	if c.Refresh.TimeoutSeconds <= 0 {
		issues = append(issues, fmt.Sprintf("refresh.timeout_seconds must be positive (got %d)", c.Refresh.TimeoutSeconds))
	}
	if len(c.Scrape.Sources) == 0 {
		issues = append(issues, "scrape.sources must list at least one source")
	}

	return issues
}
