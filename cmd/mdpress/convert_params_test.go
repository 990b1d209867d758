package main

import (
	"errors"
	"testing"
	"time"

	mdpress "github.com/mdpress/mdpress"
	"github.com/mdpress/mdpress/internal/config"
)

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	flags := &convertFlags{
		backend: "native",
		page:    pageFlags{size: "a4", orientation: "landscape", margin: 1.0},
		style:   styleFlags{style: "custom", assetPath: "/assets"},
		diagrams: diagramFlags{
			strict: true,
			format: "svg",
			bin:    "/usr/local/bin/mmdc",
		},
		outputMode: outputFlags{html: true},
	}

	cfg := &config.Config{}
	cfg.Page.Size = "letter" // should be overridden
	mergeFlags(flags, cfg)

	if cfg.Backend != "native" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.Page.Size != "a4" || cfg.Page.Orientation != "landscape" || cfg.Page.Margin != 1.0 {
		t.Errorf("page not merged: %+v", cfg.Page)
	}
	if cfg.Style.Name != "custom" || cfg.Assets.BasePath != "/assets" {
		t.Errorf("style not merged: %+v %+v", cfg.Style, cfg.Assets)
	}
	if !cfg.Diagrams.Strict || cfg.Diagrams.Format != "svg" || cfg.Diagrams.Bin != "/usr/local/bin/mmdc" {
		t.Errorf("diagrams not merged: %+v", cfg.Diagrams)
	}
	if !cfg.Output.KeepHTML {
		t.Error("--html should enable KeepHTML")
	}
}

func TestMergeFlagsEmptyKeepsConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Backend: "browser"}
	cfg.Style.Name = "default"
	mergeFlags(&convertFlags{}, cfg)

	if cfg.Backend != "browser" || cfg.Style.Name != "default" {
		t.Errorf("empty flags must not clear config: %+v", cfg)
	}
}

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{name: "flag wins", flag: "45s", env: time.Minute, want: 45 * time.Second},
		{name: "env fallback", env: time.Minute, want: time.Minute},
		{name: "neither set", want: 0},
		{name: "garbage flag", flag: "soon", wantErr: true},
		{name: "negative flag", flag: "-5s", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolveTimeout(tt.flag, tt.env)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeout) {
					t.Errorf("expected ErrInvalidTimeout, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildPageSettingsEmpty(t *testing.T) {
	t.Parallel()

	ps, err := buildPageSettings(&config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ps != nil {
		t.Errorf("expected nil settings for empty config, got %+v", ps)
	}
}

func TestBuildPageSettingsDefaults(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Page.Size = "a4"

	ps, err := buildPageSettings(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ps.Size != "a4" {
		t.Errorf("Size = %q", ps.Size)
	}
	if ps.Orientation != mdpress.OrientationPortrait {
		t.Errorf("Orientation = %q, want default portrait", ps.Orientation)
	}
	if ps.Margin != mdpress.DefaultMargin {
		t.Errorf("Margin = %v, want default", ps.Margin)
	}
}

func TestBuildPageSettingsInvalid(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Page.Size = "tabloid"

	if _, err := buildPageSettings(cfg); !errors.Is(err, mdpress.ErrInvalidPageSize) {
		t.Errorf("expected ErrInvalidPageSize, got %v", err)
	}
}

func TestBuildConverterOptions(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Backend: "native"}
	cfg.Style.None = true
	cfg.Diagrams.Disabled = true

	opts := buildConverterOptions(cfg, 10*time.Second)

	// timeout + no-style + backend + no-diagrams
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %d", len(opts))
	}

	// The options must produce a working converter.
	conv, err := mdpress.NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error: %v", err)
	}
	defer conv.Close()
}

func TestBuildConverterOptionsDiagramSettings(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Backend: "native"}
	cfg.Diagrams.Strict = true
	cfg.Diagrams.Format = "SVG"
	cfg.Diagrams.Bin = "mmdc"
	cfg.Diagrams.TimeoutSeconds = 15

	opts := buildConverterOptions(cfg, 0)

	// backend + strict + format + bin + diagram timeout
	if len(opts) != 5 {
		t.Fatalf("expected 5 options, got %d", len(opts))
	}

	conv, err := mdpress.NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error: %v", err)
	}
	defer conv.Close()
}
