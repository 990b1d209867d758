package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mdpress "github.com/mdpress/mdpress"
	"github.com/mdpress/mdpress/internal/config"
)

// Sentinel errors for CLI parameter building.
var (
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	page       *mdpress.PageSettings
	htmlOnly   bool // Output HTML only, skip PDF
	htmlOutput bool // Output HTML alongside PDF
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}
	if flags.style.style != "" {
		cfg.Style.Name = flags.style.style
	}
	if flags.style.noStyle {
		cfg.Style.None = true
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
	if flags.diagrams.disabled {
		cfg.Diagrams.Disabled = true
	}
	if flags.diagrams.strict {
		cfg.Diagrams.Strict = true
	}
	if flags.diagrams.format != "" {
		cfg.Diagrams.Format = flags.diagrams.format
	}
	if flags.diagrams.bin != "" {
		cfg.Diagrams.Bin = flags.diagrams.bin
	}
	if flags.outputMode.html {
		cfg.Output.KeepHTML = true
	}
}

// resolveTimeout resolves the conversion timeout.
// Priority: CLI flag > env var > library default (zero duration).
func resolveTimeout(flagTimeout string, envTimeout time.Duration) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q (use a positive duration like 30s or 2m)", ErrInvalidTimeout, flagTimeout)
		}
		return d, nil
	}
	return envTimeout, nil
}

// buildPageSettings creates mdpress.PageSettings from config.
// Flags are merged into config by mergeFlags before this is called.
// Returns nil when nothing is configured, which selects library defaults.
func buildPageSettings(cfg *config.Config) (*mdpress.PageSettings, error) {
	hasConfig := cfg.Page.Size != "" || cfg.Page.Orientation != "" || cfg.Page.Margin > 0
	if !hasConfig {
		return nil, nil
	}

	ps := &mdpress.PageSettings{
		Size:        cfg.Page.Size,
		Orientation: cfg.Page.Orientation,
		Margin:      cfg.Page.Margin,
	}

	// Apply defaults
	if ps.Size == "" {
		ps.Size = mdpress.PageSizeLetter
	}
	if ps.Orientation == "" {
		ps.Orientation = mdpress.OrientationPortrait
	}
	if ps.Margin == 0 {
		ps.Margin = mdpress.DefaultMargin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}

	return ps, nil
}

// buildConverterOptions translates config into converter options.
// Flags are merged into config by mergeFlags before this is called.
func buildConverterOptions(cfg *config.Config, timeout time.Duration) []mdpress.Option {
	var opts []mdpress.Option

	if timeout > 0 {
		opts = append(opts, mdpress.WithTimeout(timeout))
	}

	if cfg.Style.None {
		opts = append(opts, mdpress.WithoutStyle())
	} else if cfg.Style.Name != "" {
		opts = append(opts, mdpress.WithStyle(cfg.Style.Name))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdpress.WithAssetPath(cfg.Assets.BasePath))
	}

	if cfg.Backend != "" {
		opts = append(opts, mdpress.WithBackend(strings.ToLower(cfg.Backend)))
	}

	if cfg.Diagrams.Disabled {
		opts = append(opts, mdpress.WithoutDiagrams())
	} else {
		if cfg.Diagrams.Strict {
			opts = append(opts, mdpress.WithStrictDiagrams())
		}
		if cfg.Diagrams.Format != "" {
			opts = append(opts, mdpress.WithDiagramFormat(strings.ToLower(cfg.Diagrams.Format)))
		}
		if cfg.Diagrams.Bin != "" {
			opts = append(opts, mdpress.WithDiagramBin(cfg.Diagrams.Bin))
		}
		if cfg.Diagrams.TimeoutSeconds > 0 {
			opts = append(opts, mdpress.WithDiagramTimeout(time.Duration(cfg.Diagrams.TimeoutSeconds)*time.Second))
		}
	}

	return opts
}
