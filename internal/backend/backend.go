package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mdpress/mdpress/internal/diagram"
	"github.com/mdpress/mdpress/internal/markdown"
)

// Sentinel errors for PDF generation.
var (
	ErrBrowserConnect  = errors.New("browser connection failed")
	ErrPageCreate      = errors.New("page creation failed")
	ErrPageLoad        = errors.New("page load failed")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrNativeRender    = errors.New("native PDF rendering failed")
	ErrUnknownPageSize = errors.New("unknown page size")
)

// Page holds resolved page geometry in inches.
type Page struct {
	WidthInches  float64
	HeightInches float64
	MarginInches float64
}

// pageSizes maps size names to portrait dimensions in inches.
var pageSizes = map[string][2]float64{
	"a4":     {8.27, 11.69},
	"letter": {8.5, 11},
	"legal":  {8.5, 14},
}

// PageFor resolves a size name and orientation into page geometry.
// Landscape swaps width and height. A margin of 0 uses half an inch.
func PageFor(size, orientation string, marginInches float64) (Page, error) {
	dims, ok := pageSizes[strings.ToLower(size)]
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", ErrUnknownPageSize, size)
	}

	w, h := dims[0], dims[1]
	if strings.EqualFold(orientation, "landscape") {
		w, h = h, w
	}

	if marginInches <= 0 {
		marginInches = 0.5
	}

	return Page{WidthInches: w, HeightInches: h, MarginInches: marginInches}, nil
}

// Request carries everything a backend needs to produce one PDF.
// HTML is the standalone document; Doc and Diagrams feed the native
// backend, which paginates blocks instead of printing HTML.
type Request struct {
	HTML       string
	Doc        *markdown.Document
	Diagrams   diagram.Map
	OutputPath string
	Page       Page
}

// Backend abstracts PDF production from a rendered document.
type Backend interface {
	// WritePDF produces the PDF at req.OutputPath. On failure no file
	// is left at the destination.
	WritePDF(ctx context.Context, req *Request) error

	// Close releases backend resources. Safe to call more than once.
	Close() error
}
