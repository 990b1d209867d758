package mdpress

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mdpress/mdpress/internal/assets"
	"github.com/mdpress/mdpress/internal/backend"
	"github.com/mdpress/mdpress/internal/diagram"
	"github.com/mdpress/mdpress/internal/fileutil"
	"github.com/mdpress/mdpress/internal/markdown"
	"github.com/mdpress/mdpress/internal/render"
	"github.com/mdpress/mdpress/internal/workspace"
)

// Converter orchestrates the Markdown-to-PDF pipeline.
// Create with NewConverter(), use Convert() per document, and Close()
// when done. A Converter is safe for sequential reuse; for parallel
// conversions use a ConverterPool.
type Converter struct {
	cfg        converterConfig
	normalizer *markdown.Normalizer
	renderer   *render.Renderer
	diagrams   diagram.Renderer
	backend    backend.Backend
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithBackend,
// WithStyle). Returns error if style resolution fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:       defaultTimeout,
			diagramFormat: DiagramFormatPNG,
		},
		normalizer: markdown.NewNormalizer(),
		renderer:   render.NewRenderer(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := validateOptions(&c.cfg); err != nil {
		return nil, err
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	// Create the diagram renderer if not injected (e.g., by tests).
	if c.diagrams == nil && !c.cfg.noDiagrams {
		if c.cfg.diagramBin != "" {
			c.diagrams = diagram.NewMermaidCLIWith(&diagram.ExecRunner{}, c.cfg.diagramBin, c.cfg.diagramTimeout)
		} else {
			c.diagrams = diagram.NewMermaidCLI(c.cfg.diagramTimeout)
		}
	}

	// Create the PDF backend if not injected.
	if c.backend == nil {
		switch strings.ToLower(c.cfg.backendName) {
		case BackendNative:
			c.backend = backend.NewNative()
		default:
			c.backend = backend.NewBrowser(c.cfg.timeout)
		}
	}

	return c, nil
}

// validateOptions checks enum-valued options up front.
func validateOptions(cfg *converterConfig) error {
	switch strings.ToLower(cfg.backendName) {
	case "", BackendBrowser, BackendNative:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidBackend, cfg.backendName, BackendBrowser, BackendNative)
	}

	switch strings.ToLower(cfg.diagramFormat) {
	case "", DiagramFormatPNG, DiagramFormatSVG:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidDiagramFormat, cfg.diagramFormat, DiagramFormatPNG, DiagramFormatSVG)
	}

	return nil
}

// Convert runs the full pipeline: normalize, render diagrams, render
// the document, write the PDF. Diagram failures become warnings on the
// Result unless WithStrictDiagrams was set. The workspace holding
// intermediate artifacts is removed on every return path.
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	ws, err := workspace.New()
	if err != nil {
		return nil, err
	}
	defer func() {
		// Cleanup failure never overrides the conversion outcome.
		_ = ws.Cleanup()
	}()

	doc, err := c.normalizer.Normalize(ctx, input.Markdown, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("normalizing markdown: %w", err)
	}

	diagramMap, warnings, err := c.renderDiagrams(ctx, doc, ws)
	if err != nil {
		return nil, err
	}

	htmlContent, err := c.renderer.Render(ctx, doc, diagramMap, c.documentCSS(input))
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	res := &Result{
		HTML:     []byte(htmlContent),
		Warnings: warnings,
	}

	if input.HTMLPath != "" {
		if err := fileutil.WriteFileAtomic(input.HTMLPath, res.HTML, 0o644); err != nil {
			return nil, fmt.Errorf("writing HTML: %w", err)
		}
	}

	if input.HTMLOnly {
		return res, nil
	}

	page, err := resolvePage(input.Page)
	if err != nil {
		return nil, err
	}

	err = c.backend.WritePDF(ctx, &backend.Request{
		HTML:       htmlContent,
		Doc:        doc,
		Diagrams:   diagramMap,
		OutputPath: input.OutputPath,
		Page:       page,
	})
	if err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}

	res.PDFPath = input.OutputPath
	return res, nil
}

// renderDiagrams renders every diagram block into the workspace.
// Failures are collected as warnings; in strict mode the first failure
// aborts the conversion.
func (c *Converter) renderDiagrams(ctx context.Context, doc *markdown.Document, ws *workspace.Workspace) (diagram.Map, []Warning, error) {
	indexes := doc.DiagramIndexes()
	if len(indexes) == 0 || c.cfg.noDiagrams || c.diagrams == nil {
		return nil, nil, nil
	}

	format := c.cfg.diagramFormat
	if format == "" {
		format = DiagramFormatPNG
	}

	rendered := make(diagram.Map, len(indexes))
	var warnings []Warning

	for _, i := range indexes {
		block := doc.Blocks[i]
		outPath := ws.Path(diagram.FileName(i, block.Text, format))

		if err := c.diagrams.Render(ctx, block.Text, outPath); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, nil, ctxErr
			}
			if c.cfg.strictDiagrams {
				return nil, nil, fmt.Errorf("%w: block %d: %v", ErrStrictDiagrams, i, err)
			}
			warnings = append(warnings, Warning{Block: i, Message: err.Error()})
			continue
		}
		rendered[i] = outPath
	}

	return rendered, warnings, nil
}

// documentCSS combines the resolved style with per-input CSS.
// Order matters: the style comes first so input CSS can override it.
func (c *Converter) documentCSS(input Input) string {
	css := c.cfg.resolvedStyle
	if input.CSS != "" {
		if css != "" {
			css += "\n"
		}
		css += input.CSS
	}
	return css
}

// Close releases backend resources (the headless browser, if any).
func (c *Converter) Close() error {
	if c.backend != nil {
		return c.backend.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content)
// to CSS content. Called during NewConverter after options are applied.
func (c *Converter) resolveStyle() error {
	if c.cfg.noStyle {
		c.cfg.resolvedStyle = ""
		return nil
	}

	resolver, err := assets.NewStyleResolver(c.cfg.assetPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	input := c.cfg.styleInput
	if input == "" {
		css, err := resolver.LoadStyle("default")
		if err != nil {
			return fmt.Errorf("loading default style: %w", err)
		}
		c.cfg.resolvedStyle = css
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// Raw CSS content? (contains a rule block)
	if strings.Contains(input, "{") {
		c.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> asset resolver.
	css, err := resolver.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually. CLI users have their input validated earlier at flag and
// config load time. Both paths converge here.
func (c *Converter) validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	if !input.HTMLOnly && input.OutputPath == "" {
		return ErrMissingOutput
	}
	return input.Page.Validate()
}

// resolvePage turns PageSettings into backend page geometry.
func resolvePage(p *PageSettings) (backend.Page, error) {
	if p == nil {
		p = DefaultPageSettings()
	}
	page, err := backend.PageFor(p.Size, p.Orientation, p.Margin)
	if err != nil {
		return backend.Page{}, fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	return page, nil
}
