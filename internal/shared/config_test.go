package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.API.BaseURL == "" {
		t.Error("expected a default base URL")
	}
	if config.API.WebURL == "" {
		t.Error("expected a default web URL")
	}
	if config.Session.Backend != "sqlite" && config.Session.Backend != "file" {
		t.Errorf("expected a known session backend, got %q", config.Session.Backend)
	}
	if config.API.TimeoutSeconds <= 0 {
		t.Errorf("expected a positive timeout, got %d", config.API.TimeoutSeconds)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Parses A Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[api]
base_url = "https://nobar.example.com"
web_url = "https://app.nobar.example.com"
timeout_seconds = 15
rate_limit = 4.0

[session]
backend = "file"
path = "~/.nobarctl/session.json"

[database]
path = "~/.nobarctl/nobarctl.db"
max_open_conns = 5
max_idle_conns = 2
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.API.BaseURL != "https://nobar.example.com" {
			t.Errorf("expected base URL, got %q", config.API.BaseURL)
		}
		if config.Session.Backend != "file" {
			t.Errorf("expected file backend, got %q", config.Session.Backend)
		}
		if config.Database.MaxOpenConns != 5 {
			t.Errorf("expected 5 max open conns, got %d", config.Database.MaxOpenConns)
		}
	})

	t.Run("Missing File Is An Error", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Malformed TOML Is An Error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		os.WriteFile(path, []byte("[api\nbase_url ="), 0644)

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed file")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("Writes The Example Config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected generated file to parse, got %v", err)
		}
		if config.API.BaseURL == "" {
			t.Error("expected generated config to carry defaults")
		}
	})

	t.Run("Refuses To Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		os.WriteFile(path, []byte("existing"), 0644)

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file exists")
		}
	})
}
