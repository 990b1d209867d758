package mdpress

import (
	"errors"

	"github.com/mdpress/mdpress/internal/backend"
	"github.com/mdpress/mdpress/internal/diagram"
	"github.com/mdpress/mdpress/internal/render"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrMissingOutput  = errors.New("output path cannot be empty")
	ErrInputNotFound  = errors.New("input file not found")
	ErrStrictDiagrams = errors.New("diagram rendering failed in strict mode")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Option validation errors.
	ErrInvalidBackend       = errors.New("invalid backend")
	ErrInvalidDiagramFormat = errors.New("invalid diagram format")
	ErrInvalidAssetPath     = errors.New("invalid asset path")
)

// Aliases for pipeline-stage sentinels, so callers can classify
// failures without importing internal packages.
var (
	ErrRendererUnavailable = diagram.ErrUnavailable
	ErrDiagramSyntax       = diagram.ErrSyntax
	ErrDocumentRender      = render.ErrRender
	ErrBrowserConnect      = backend.ErrBrowserConnect
	ErrPDFGeneration       = backend.ErrPDFGeneration
)
