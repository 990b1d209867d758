package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mdpress/mdpress/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDPRESS_CONFIG: config file path
	Style      string        // MDPRESS_STYLE: CSS style name or path
	Timeout    time.Duration // MDPRESS_TIMEOUT: PDF generation timeout
	OutputDir  string        // MDPRESS_OUTPUT_DIR: default output directory
	Backend    string        // MDPRESS_BACKEND: browser or native
	PageSize   string        // MDPRESS_PAGE_SIZE: a4, letter, legal
	DiagramBin string        // MDPRESS_DIAGRAM_BIN: mermaid CLI binary
	Workers    int           // MDPRESS_WORKERS: parallel workers
}

// knownEnvVars lists valid MDPRESS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPRESS_CONFIG":      true,
	"MDPRESS_STYLE":       true,
	"MDPRESS_TIMEOUT":     true,
	"MDPRESS_OUTPUT_DIR":  true,
	"MDPRESS_BACKEND":     true,
	"MDPRESS_PAGE_SIZE":   true,
	"MDPRESS_DIAGRAM_BIN": true,
	"MDPRESS_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDPRESS_CONFIG"),
		Style:      os.Getenv("MDPRESS_STYLE"),
		OutputDir:  os.Getenv("MDPRESS_OUTPUT_DIR"),
		Backend:    os.Getenv("MDPRESS_BACKEND"),
		PageSize:   os.Getenv("MDPRESS_PAGE_SIZE"),
		DiagramBin: os.Getenv("MDPRESS_DIAGRAM_BIN"),
	}

	if timeout := os.Getenv("MDPRESS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MDPRESS_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDPRESS_* variables.
// Helps catch typos like MDPRESS_BAKEND instead of MDPRESS_BACKEND.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPRESS_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Style.Name == "" {
		cfg.Style.Name = env.Style
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Backend != "" && cfg.Backend == "" {
		cfg.Backend = env.Backend
	}
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}
	if env.DiagramBin != "" && cfg.Diagrams.Bin == "" {
		cfg.Diagrams.Bin = env.DiagramBin
	}
}
