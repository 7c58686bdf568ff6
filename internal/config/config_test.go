package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Refresh.Schedule != "*/15 * * * *" {
		t.Errorf("unexpected default schedule %q", cfg.Refresh.Schedule)
	}
	if cfg.Refresh.TimeoutSeconds != 20 {
		t.Errorf("expected default timeout 20s, got %d", cfg.Refresh.TimeoutSeconds)
	}
	if len(cfg.Scrape.Sources) != 3 || cfg.Scrape.Sources[0] != "investing" {
		t.Errorf("unexpected default sources %v", cfg.Scrape.Sources)
	}
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("default config should validate cleanly, got %v", issues)
	}
}

func TestLoadFromFile_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forexcal.toml")

	content := `
[server]
port = 8080

[refresh]
schedule = "0 * * * *"

[scrape]
sources = ["forexfactory"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host preserved, got %q", cfg.Server.Host)
	}
	if cfg.Refresh.Schedule != "0 * * * *" {
		t.Errorf("expected hourly schedule, got %q", cfg.Refresh.Schedule)
	}
	if len(cfg.Scrape.Sources) != 1 || cfg.Scrape.Sources[0] != "forexfactory" {
		t.Errorf("unexpected sources %v", cfg.Scrape.Sources)
	}
	if cfg.Refresh.TimeoutSeconds != 20 {
		t.Errorf("expected default timeout preserved, got %d", cfg.Refresh.TimeoutSeconds)
	}
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	local := filepath.Join(dir, "local.toml")

	if err := os.WriteFile(base, []byte("[server]\nport = 8080\n"), 0644); err != nil {
		t.Fatalf("failed to write base config: %v", err)
	}
	if err := os.WriteFile(local, []byte("[server]\nport = 9090\n"), 0644); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}

	cfg, err := LoadFromFiles(base, local)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected later file to win, got port %d", cfg.Server.Port)
	}
}

func TestLoadFromFile_MissingFileIsError(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/forexcal.toml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFromFile_MalformedTOMLIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport ="), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("FOREXCAL_REFRESH_SCHEDULE", "*/5 * * * *")
	t.Setenv("FOREXCAL_SCRAPE_SOURCES", "fxstreet, investing")
	t.Setenv("FOREXCAL_LOG_LEVEL", "debug")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("expected PORT override 4000, got %d", cfg.Server.Port)
	}
	if cfg.Refresh.Schedule != "*/5 * * * *" {
		t.Errorf("expected schedule override, got %q", cfg.Refresh.Schedule)
	}
	if len(cfg.Scrape.Sources) != 2 || cfg.Scrape.Sources[0] != "fxstreet" || cfg.Scrape.Sources[1] != "investing" {
		t.Errorf("expected trimmed source list, got %v", cfg.Scrape.Sources)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Logging.Level)
	}
}

func TestEnvOverrides_ServerPortBeatsBarePort(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("FOREXCAL_SERVER_PORT", "5000")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("expected FOREXCAL_SERVER_PORT to win, got %d", cfg.Server.Port)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 7777, "127.0.0.1")
	if cfg.Server.Port != 7777 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("flag overrides not applied: %d %q", cfg.Server.Port, cfg.Server.Host)
	}

	ApplyFlagOverrides(cfg, 0, "")
	if cfg.Server.Port != 7777 || cfg.Server.Host != "127.0.0.1" {
		t.Error("zero-value flags should not override")
	}
}

func TestValidate_ReportsIssues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Port = -1
	cfg.Refresh.Schedule = " "
	cfg.Refresh.TimeoutSeconds = 0
	cfg.Scrape.Sources = nil

	issues := cfg.Validate()
	if len(issues) != 4 {
		t.Errorf("expected 4 issues, got %d: %v", len(issues), issues)
	}
}
