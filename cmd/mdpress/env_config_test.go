package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mdpress/mdpress/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MDPRESS_CONFIG", "/etc/mdpress.yaml")
	t.Setenv("MDPRESS_STYLE", "default")
	t.Setenv("MDPRESS_TIMEOUT", "90s")
	t.Setenv("MDPRESS_OUTPUT_DIR", "/tmp/out")
	t.Setenv("MDPRESS_BACKEND", "native")
	t.Setenv("MDPRESS_PAGE_SIZE", "a4")
	t.Setenv("MDPRESS_DIAGRAM_BIN", "/opt/mmdc")
	t.Setenv("MDPRESS_WORKERS", "3")

	cfg := loadEnvConfig()

	if cfg.ConfigPath != "/etc/mdpress.yaml" {
		t.Errorf("ConfigPath = %q", cfg.ConfigPath)
	}
	if cfg.Style != "default" {
		t.Errorf("Style = %q", cfg.Style)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Backend != "native" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.PageSize != "a4" {
		t.Errorf("PageSize = %q", cfg.PageSize)
	}
	if cfg.DiagramBin != "/opt/mmdc" {
		t.Errorf("DiagramBin = %q", cfg.DiagramBin)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
}

func TestLoadEnvConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("MDPRESS_TIMEOUT", "soon")
	t.Setenv("MDPRESS_WORKERS", "-2")

	cfg := loadEnvConfig()

	if cfg.Timeout != 0 {
		t.Errorf("invalid timeout should be ignored, got %v", cfg.Timeout)
	}
	if cfg.Workers != 0 {
		t.Errorf("invalid workers should be ignored, got %d", cfg.Workers)
	}
}

func TestApplyEnvConfigDoesNotOverrideConfigFile(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Style:     "corporate",
		OutputDir: "/env/out",
		Backend:   "native",
	}
	cfg := &config.Config{Backend: "browser"}
	cfg.Style.Name = "minimal"

	applyEnvConfig(env, cfg)

	if cfg.Style.Name != "minimal" {
		t.Errorf("config file style must win, got %q", cfg.Style.Name)
	}
	if cfg.Backend != "browser" {
		t.Errorf("config file backend must win, got %q", cfg.Backend)
	}
	if cfg.Output.DefaultDir != "/env/out" {
		t.Errorf("empty config value should take env value, got %q", cfg.Output.DefaultDir)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MDPRESS_BAKEND", "native")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "MDPRESS_BAKEND") {
		t.Errorf("expected warning about MDPRESS_BAKEND, got %q", buf.String())
	}
}

func TestWarnUnknownEnvVarsSilentForKnown(t *testing.T) {
	t.Setenv("MDPRESS_BACKEND", "native")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if strings.Contains(buf.String(), "MDPRESS_BACKEND") {
		t.Errorf("known variable should not warn, got %q", buf.String())
	}
}
