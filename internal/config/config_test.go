package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
style:
  name: default
backend: native
page:
  size: a4
  orientation: landscape
  margin: 0.75
diagrams:
  format: svg
  timeoutSeconds: 60
  strict: true
output:
  keepHTML: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Style.Name != "default" {
		t.Errorf("style.name = %q", cfg.Style.Name)
	}
	if cfg.Backend != "native" {
		t.Errorf("backend = %q", cfg.Backend)
	}
	if cfg.Page.Size != "a4" || cfg.Page.Orientation != "landscape" || cfg.Page.Margin != 0.75 {
		t.Errorf("page = %+v", cfg.Page)
	}
	if cfg.Diagrams.Format != "svg" || cfg.Diagrams.TimeoutSeconds != 60 || !cfg.Diagrams.Strict {
		t.Errorf("diagrams = %+v", cfg.Diagrams)
	}
	if !cfg.Output.KeepHTML {
		t.Error("output.keepHTML not set")
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "nonsense: true\n")

	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigParse", err)
	}
}

func TestLoadConfigNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigEmptyName(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Fatalf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "zero value is valid",
			mutate: func(*Config) {},
		},
		{
			name:   "valid backend",
			mutate: func(c *Config) { c.Backend = "browser" },
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Backend = "wkhtmltopdf" },
			wantErr: true,
		},
		{
			name:    "unknown page size",
			mutate:  func(c *Config) { c.Page.Size = "tabloid" },
			wantErr: true,
		},
		{
			name:    "bad orientation",
			mutate:  func(c *Config) { c.Page.Orientation = "sideways" },
			wantErr: true,
		},
		{
			name:    "negative margin",
			mutate:  func(c *Config) { c.Page.Margin = -1 },
			wantErr: true,
		},
		{
			name:    "unknown diagram format",
			mutate:  func(c *Config) { c.Diagrams.Format = "pdf" },
			wantErr: true,
		},
		{
			name:    "negative diagram timeout",
			mutate:  func(c *Config) { c.Diagrams.TimeoutSeconds = -5 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
