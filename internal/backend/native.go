package backend

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"

	// Decoders for image dimension probing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"codeberg.org/go-pdf/fpdf"
	"github.com/gabriel-vasile/mimetype"

	"github.com/mdpress/mdpress/internal/fileutil"
	"github.com/mdpress/mdpress/internal/markdown"
)

// Font sizes in points per heading level (index 0 unused).
var headingSizes = [7]float64{0, 24, 20, 16, 14, 12, 11}

const (
	nativeBodySize = 11
	nativeCodeSize = 9
	nativeLineGap  = 3
	pointsPerInch  = 72
	screenDPI      = 96
)

// Native paginates the block model directly with a pure-Go PDF writer.
// It needs no browser, at the cost of rendering inline Markdown markup
// literally. The browser backend is the full-fidelity path.
type Native struct{}

var _ Backend = (*Native)(nil)

// NewNative creates a native backend.
func NewNative() *Native {
	return &Native{}
}

// Close is a no-op; the native backend holds no resources.
func (n *Native) Close() error {
	return nil
}

// WritePDF paginates req.Doc and writes the result atomically.
func (n *Native) WritePDF(ctx context.Context, req *Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Doc == nil {
		return fmt.Errorf("%w: no block model", ErrNativeRender)
	}

	page := req.Page
	margin := page.MarginInches * pointsPerInch
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size: fpdf.SizeType{
			Wd: page.WidthInches * pointsPerInch,
			Ht: page.HeightInches * pointsPerInch,
		},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	for i, block := range req.Doc.Blocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		n.renderBlock(pdf, i, block, req)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrNativeRender, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("%w: %v", ErrNativeRender, err)
	}

	return fileutil.WriteFileAtomic(req.OutputPath, buf.Bytes(), 0o644)
}

func (n *Native) renderBlock(pdf *fpdf.Fpdf, index int, block markdown.Block, req *Request) {
	switch block.Kind {
	case markdown.KindHeading:
		level := block.Level
		if level < 1 || level > 6 {
			level = 6
		}
		size := headingSizes[level]
		pdf.SetFont("Helvetica", "B", size)
		pdf.MultiCell(0, size+nativeLineGap, block.Text, "", "L", false)
		pdf.Ln(size / 2)

	case markdown.KindCodeBlock:
		renderCodeCell(pdf, block.Text)

	case markdown.KindDiagram:
		if path, ok := req.Diagrams[index]; ok && renderNativeImage(pdf, path) {
			return
		}
		// No image: fall back to the diagram source as code.
		renderCodeCell(pdf, block.Text)

	case markdown.KindTable:
		renderNativeTable(pdf, block)

	case markdown.KindImage:
		if !renderNativeImage(pdf, block.Path) {
			pdf.SetFont("Helvetica", "I", nativeBodySize)
			pdf.MultiCell(0, nativeBodySize+nativeLineGap, "[image: "+block.Path+"]", "", "L", false)
		}
		pdf.Ln(nativeLineGap)

	case markdown.KindRule:
		pdf.Ln(nativeLineGap * 2)
		_, y := pdf.GetXY()
		w, _ := pdf.GetPageSize()
		lm, _, rm, _ := pdf.GetMargins()
		pdf.SetLineWidth(1)
		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(lm, y, w-rm, y)
		pdf.SetDrawColor(0, 0, 0)
		pdf.Ln(nativeLineGap * 2)

	case markdown.KindBlockquote:
		pdf.SetFont("Helvetica", "I", nativeBodySize)
		pdf.SetTextColor(96, 96, 96)
		pdf.MultiCell(0, nativeBodySize+nativeLineGap, block.Source, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(nativeLineGap)

	default:
		// Paragraph, list, HTML block: raw source as body text.
		pdf.SetFont("Helvetica", "", nativeBodySize)
		pdf.MultiCell(0, nativeBodySize+nativeLineGap, block.Source, "", "L", false)
		pdf.Ln(nativeLineGap)
	}
}

// renderCodeCell emits monospace text on a light fill.
func renderCodeCell(pdf *fpdf.Fpdf, code string) {
	pdf.SetFont("Courier", "", nativeCodeSize)
	pdf.SetFillColor(245, 245, 245)
	pdf.MultiCell(0, nativeCodeSize+nativeLineGap, code, "", "L", true)
	pdf.Ln(nativeLineGap)
}

// renderNativeTable draws a bordered grid with a filled header row.
// Columns share the usable width evenly.
func renderNativeTable(pdf *fpdf.Fpdf, block markdown.Block) {
	if len(block.Rows) == 0 || block.Columns == 0 {
		return
	}

	pageW, _ := pdf.GetPageSize()
	lm, _, rm, _ := pdf.GetMargins()
	colW := (pageW - lm - rm) / float64(block.Columns)
	rowH := float64(nativeBodySize) + 2*nativeLineGap

	for i, row := range block.Rows {
		if i == 0 {
			pdf.SetFont("Helvetica", "B", nativeBodySize)
			pdf.SetFillColor(230, 230, 230)
		} else {
			pdf.SetFont("Helvetica", "", nativeBodySize)
		}
		for _, cell := range row {
			pdf.CellFormat(colW, rowH, cell, "1", 0, "L", i == 0, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(nativeLineGap)
}

// renderNativeImage embeds a local raster image, capped to the usable
// width with preserved aspect ratio. Returns false if the file cannot
// be embedded (missing, unreadable, or an unsupported format).
func renderNativeImage(pdf *fpdf.Fpdf, path string) bool {
	if path == "" {
		return false
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}

	var imgType string
	switch {
	case mtype.Is("image/png"):
		imgType = "PNG"
	case mtype.Is("image/jpeg"):
		imgType = "JPG"
	case mtype.Is("image/gif"):
		imgType = "GIF"
	default:
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil || cfg.Width == 0 {
		return false
	}

	pageW, _ := pdf.GetPageSize()
	lm, _, rm, _ := pdf.GetMargins()
	usable := pageW - lm - rm

	// Screen pixels to points, capped to the text width.
	w := float64(cfg.Width) * pointsPerInch / screenDPI
	if w > usable {
		w = usable
	}

	pdf.ImageOptions(path, -1, 0, w, 0, true,
		fpdf.ImageOptions{ImageType: imgType, ReadDpi: false}, 0, "")
	pdf.Ln(nativeLineGap)
	return pdf.Error() == nil
}
