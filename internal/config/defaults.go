package config

import "forexcal/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3000,
			Host: "0.0.0.0",
		},
		Refresh: RefreshConfig{
			Schedule:       "*/15 * * * *",
			TimeoutSeconds: 20,
		},
		Scrape: ScrapeConfig{
			Sources: []string{"investing", "forexfactory", "fxstreet"},
		},
		Logging: common.LoggingConfig{
			Level:   "info",
			Outputs: []string{"console"},
		},
	}
}
