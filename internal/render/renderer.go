package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gabriel-vasile/mimetype"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/mdpress/mdpress/internal/diagram"
	"github.com/mdpress/mdpress/internal/fileutil"
	"github.com/mdpress/mdpress/internal/markdown"
)

// ErrRender indicates document rendering failed.
var ErrRender = errors.New("document rendering failed")

// chromaStyle is the highlighting color scheme. Classes are emitted
// instead of inline styles so the palette lives in one stylesheet.
const chromaStyle = "github"

// htmlTemplate wraps the rendered body in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// Renderer converts a normalized Document into standalone HTML.
type Renderer struct {
	md        goldmark.Markdown
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewRenderer creates a Renderer with GFM extensions and class-based
// syntax highlighting.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(chromaStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldhtml.WithHardWraps(),
			goldhtml.WithXHTML(),
			// Note: WithUnsafe() intentionally NOT used. Raw HTML blocks
			// are passed through verbatim by the block renderer instead.
		),
	)

	style := styles.Get(chromaStyle)
	if style == nil {
		style = styles.Fallback
	}

	return &Renderer{
		md:        md,
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Render produces a standalone HTML5 document from the block sequence.
// diagrams maps diagram block indexes to rendered image paths; blocks
// without an entry render as a visible failure placeholder. css is
// injected into <head> together with the highlighting stylesheet.
func (r *Renderer) Render(ctx context.Context, doc *markdown.Document, diagrams diagram.Map, css string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var body bytes.Buffer
	for i, block := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := r.renderBlock(&body, i, block, diagrams); err != nil {
			return "", fmt.Errorf("%w: block %d (%s): %v", ErrRender, i, block.Kind, err)
		}
		body.WriteByte('\n')
	}

	page := fmt.Sprintf(htmlTemplate, html.EscapeString(documentTitle(doc)), body.String())

	fullCSS, err := r.stylesheet(css)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	page = InjectCSS(page, fullCSS)

	// Relative paths inside inline content still point at the source
	// directory; rewrite them so a browser loading the staged HTML
	// resolves them.
	page, err = RewriteRelativePaths(page, doc.BaseDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	return page, nil
}

// renderBlock writes the HTML for one block.
func (r *Renderer) renderBlock(buf *bytes.Buffer, index int, block markdown.Block, diagrams diagram.Map) error {
	switch block.Kind {
	case markdown.KindCodeBlock:
		return r.renderCode(buf, block.Language, block.Text)
	case markdown.KindDiagram:
		r.renderDiagram(buf, block, diagrams[index])
		return nil
	case markdown.KindTable:
		renderTable(buf, block)
		return nil
	case markdown.KindImage:
		renderImage(buf, block)
		return nil
	case markdown.KindRule:
		buf.WriteString("<hr />")
		return nil
	case markdown.KindHTMLBlock:
		// Author-written HTML passes through untouched.
		buf.WriteString(block.Source)
		return nil
	default:
		// Heading, paragraph, blockquote, list: re-render the raw span
		// so inline markup survives.
		return r.md.Convert([]byte(block.Source), buf)
	}
}

// renderCode emits a highlighted code block. An unknown language falls
// back to plain monospace tokens rather than failing.
func (r *Renderer) renderCode(buf *bytes.Buffer, language, code string) error {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	return r.formatter.Format(buf, r.style, iterator)
}

// renderDiagram emits a <figure> with the rendered image inlined as a
// data URI, or a failure placeholder showing the diagram source when no
// image is available. Inlining keeps the HTML self-contained: its bytes
// depend only on the document and the image content, never on the
// per-run workspace path, and the file survives workspace cleanup.
func (r *Renderer) renderDiagram(buf *bytes.Buffer, block markdown.Block, imagePath string) {
	src := diagramSrc(imagePath)
	if src == "" {
		buf.WriteString(`<figure class="diagram diagram-failed"><pre><code>`)
		buf.WriteString(html.EscapeString(block.Text))
		buf.WriteString(`</code></pre><figcaption>`)
		buf.WriteString(html.EscapeString(block.Language))
		buf.WriteString(` diagram could not be rendered</figcaption></figure>`)
		return
	}

	buf.WriteString(`<figure class="diagram"><img src="`)
	buf.WriteString(html.EscapeString(src))
	buf.WriteString(`" alt="`)
	buf.WriteString(html.EscapeString(block.Language + " diagram"))
	buf.WriteString(`" /></figure>`)
}

// diagramSrc turns a rendered diagram file into a data URI. URLs and
// existing data URIs pass through; an empty path or unreadable file
// yields "" so the caller falls back to the placeholder.
func diagramSrc(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "data:") || fileutil.IsURL(path) {
		return path
	}
	data, err := os.ReadFile(path) // #nosec G304 -- workspace-scoped path
	if err != nil {
		return ""
	}
	return "data:" + mimetype.Detect(data).String() + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// renderTable emits a table with the first row as a styled header.
// Cell content is plain text, escaped.
func renderTable(buf *bytes.Buffer, block markdown.Block) {
	buf.WriteString("<table>")

	if len(block.Rows) > 0 {
		buf.WriteString("<thead><tr>")
		for _, cell := range block.Rows[0] {
			buf.WriteString("<th>")
			buf.WriteString(html.EscapeString(cell))
			buf.WriteString("</th>")
		}
		buf.WriteString("</tr></thead>")
	}

	if len(block.Rows) > 1 {
		buf.WriteString("<tbody>")
		for _, row := range block.Rows[1:] {
			buf.WriteString("<tr>")
			for _, cell := range row {
				buf.WriteString("<td>")
				buf.WriteString(html.EscapeString(cell))
				buf.WriteString("</td>")
			}
			buf.WriteString("</tr>")
		}
		buf.WriteString("</tbody>")
	}

	buf.WriteString("</table>")
}

// renderImage emits a standalone image figure. Width capping comes from
// the stylesheet (img { max-width: 100% }).
func renderImage(buf *bytes.Buffer, block markdown.Block) {
	buf.WriteString(`<figure class="image"><img src="`)
	buf.WriteString(html.EscapeString(imageSrc(block.Path)))
	buf.WriteString(`" alt="`)
	buf.WriteString(html.EscapeString(block.Text))
	buf.WriteString(`"`)
	if block.Title != "" {
		buf.WriteString(` title="`)
		buf.WriteString(html.EscapeString(block.Title))
		buf.WriteString(`"`)
	}
	buf.WriteString(` /></figure>`)
}

// stylesheet combines the document CSS with the chroma highlighting
// classes.
func (r *Renderer) stylesheet(css string) (string, error) {
	var buf bytes.Buffer
	if err := r.formatter.WriteCSS(&buf, r.style); err != nil {
		return "", err
	}
	if css == "" {
		return buf.String(), nil
	}
	return css + "\n" + buf.String(), nil
}

// documentTitle picks the first heading's text, falling back to a
// generic title.
func documentTitle(doc *markdown.Document) string {
	for _, b := range doc.Blocks {
		if b.Kind == markdown.KindHeading {
			return b.Text
		}
	}
	return "Document"
}

// imageSrc converts a local absolute path to a file:// URL so the
// staged HTML resolves it regardless of where it is written. URLs and
// relative paths pass through.
func imageSrc(path string) string {
	if strings.HasPrefix(path, "data:") || fileutil.IsURL(path) {
		return path
	}
	if filepath.IsAbs(path) {
		return FileURL(path)
	}
	return path
}
