// Package config loads conversion settings from YAML files.
// A config is addressed either by file path or by bare name, resolved
// against the current directory and the user config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdpress/mdpress/internal/fileutil"
	"github.com/mdpress/mdpress/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Config holds all configuration for document conversion.
type Config struct {
	Output   OutputConfig  `yaml:"output"`
	Style    StyleConfig   `yaml:"style"`
	Assets   AssetsConfig  `yaml:"assets"`
	Page     PageConfig    `yaml:"page"`
	Diagrams DiagramConfig `yaml:"diagrams"`
	Backend  string        `yaml:"backend"` // "browser" (default) or "native"
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	KeepHTML   bool   `yaml:"keepHTML"`   // Also write the intermediate HTML next to the PDF
}

// StyleConfig defines CSS styling options.
type StyleConfig struct {
	Name string `yaml:"name"` // Style name in internal/assets/styles/ (empty = default)
	None bool   `yaml:"none"` // Disable styling entirely
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// DiagramConfig defines diagram rendering options.
type DiagramConfig struct {
	Disabled       bool   `yaml:"disabled"`       // Skip diagram rendering entirely
	Format         string `yaml:"format"`         // "png" (default) or "svg"
	Bin            string `yaml:"bin"`            // Renderer binary (default: mmdc, or MERMAID_BIN)
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // Per-diagram timeout (default: 30)
	Strict         bool   `yaml:"strict"`         // Treat diagram failures as fatal
}

// Validate checks enum fields and ranges.
func (c *Config) Validate() error {
	if c.Backend != "" {
		switch strings.ToLower(c.Backend) {
		case "browser", "native":
		default:
			return fmt.Errorf("%w: backend %q (must be browser or native)", ErrInvalidValue, c.Backend)
		}
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: page.size %q (must be letter, a4, or legal)", ErrInvalidValue, c.Page.Size)
		}
	}

	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}

	if c.Page.Margin < 0 || c.Page.Margin > 4 {
		return fmt.Errorf("%w: page.margin %.2f (must be between 0 and 4 inches)", ErrInvalidValue, c.Page.Margin)
	}

	if c.Diagrams.Format != "" {
		switch strings.ToLower(c.Diagrams.Format) {
		case "png", "svg":
		default:
			return fmt.Errorf("%w: diagrams.format %q (must be png or svg)", ErrInvalidValue, c.Diagrams.Format)
		}
	}

	if c.Diagrams.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: diagrams.timeoutSeconds must not be negative", ErrInvalidValue)
	}

	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath turns a bare name into a path by probing the
// current directory and then ~/.config/mdpress/, with .yaml preferred
// over .yml at each location.
func resolveConfigPath(name string) (string, error) {
	var candidates []string
	for _, ext := range []string{".yaml", ".yml"} {
		candidates = append(candidates, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range []string{".yaml", ".yml"} {
			candidates = append(candidates, filepath.Join(userConfigDir, "mdpress", name+ext))
		}
	}

	for _, path := range candidates {
		if fileutil.FileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(candidates, ", "))
}
