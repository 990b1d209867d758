package mdpress

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// Backend name constants.
const (
	BackendBrowser = "browser"
	BackendNative  = "native"
)

// Diagram format constants.
const (
	DiagramFormatPNG = "png"
	DiagramFormatSVG = "svg"
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Input contains conversion parameters.
type Input struct {
	Markdown   string        // Markdown content (required)
	SourceDir  string        // Directory relative paths resolve against (optional)
	OutputPath string        // Destination PDF path (required unless HTMLOnly)
	HTMLPath   string        // Also write the rendered HTML here (optional)
	HTMLOnly   bool          // Skip PDF generation; Result.HTML carries the output
	CSS        string        // Extra CSS appended after the style (optional)
	Page       *PageSettings // Page settings (optional, nil = defaults)
}

// Warning reports a non-fatal problem from one conversion, such as a
// diagram block that failed to render.
type Warning struct {
	Block   int // index of the affected block
	Message string
}

// Result holds the conversion outputs.
type Result struct {
	HTML     []byte    // rendered HTML document
	PDFPath  string    // where the PDF was written (empty in HTMLOnly mode)
	Warnings []Warning // non-fatal problems, in block order
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	styleInput     string
	noStyle        bool
	assetPath      string
	backendName    string
	diagramBin     string
	diagramFormat  string
	diagramTimeout time.Duration
	noDiagrams     bool
	strictDiagrams bool
	resolvedStyle  string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpress: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the document style. The value may be a style name
// (resolved against embedded and custom assets), a path to a CSS file,
// or raw CSS content.
func WithStyle(nameOrPathOrCSS string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = nameOrPathOrCSS
	}
}

// WithoutStyle disables document styling. Highlighting classes are
// still emitted.
func WithoutStyle() Option {
	return func(c *Converter) {
		c.cfg.noStyle = true
	}
}

// WithAssetPath sets a directory searched for custom styles before the
// embedded defaults.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithBackend selects the PDF backend: BackendBrowser (default) or
// BackendNative.
func WithBackend(name string) Option {
	return func(c *Converter) {
		c.cfg.backendName = name
	}
}

// WithDiagramBin overrides the Mermaid CLI binary.
func WithDiagramBin(bin string) Option {
	return func(c *Converter) {
		c.cfg.diagramBin = bin
	}
}

// WithDiagramFormat sets the diagram image format: DiagramFormatPNG
// (default) or DiagramFormatSVG.
func WithDiagramFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.diagramFormat = format
	}
}

// WithDiagramTimeout bounds a single diagram render.
// Panics if d <= 0.
func WithDiagramTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpress: WithDiagramTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.diagramTimeout = d
	}
}

// WithoutDiagrams skips diagram rendering. Diagram blocks render as
// placeholders showing their source.
func WithoutDiagrams() Option {
	return func(c *Converter) {
		c.cfg.noDiagrams = true
	}
}

// WithStrictDiagrams makes diagram failures fatal instead of warnings.
func WithStrictDiagrams() Option {
	return func(c *Converter) {
		c.cfg.strictDiagrams = true
	}
}
