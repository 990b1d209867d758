package markdown

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/mdpress/mdpress/internal/fileutil"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// diagramLanguages maps fence language tags to diagram kinds rendered
// out-of-band. Lookup is case-insensitive.
var diagramLanguages = map[string]bool{
	"mermaid": true,
}

// Normalizer parses Markdown into an ordered Block sequence.
// Parsing never fails on malformed input: goldmark degrades gracefully
// (an unterminated fence becomes a code block extending to end of input).
// Output is deterministic for identical input.
type Normalizer struct {
	md goldmark.Markdown
}

// NewNormalizer creates a Normalizer with GFM extensions.
func NewNormalizer() *Normalizer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Normalizer{md: md}
}

// Normalize parses source into a Document. baseDir is the directory of
// the source file; relative image paths are resolved against it.
func (n *Normalizer) Normalize(ctx context.Context, source, baseDir string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source = normalizeLineEndings(source)
	source = compressBlankLines(source)
	src := []byte(source)

	root := n.md.Parser().Parse(text.NewReader(src))

	doc := &Document{Source: source, BaseDir: baseDir}
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		doc.Blocks = append(doc.Blocks, buildBlock(node, src, baseDir))
	}

	return doc, nil
}

// buildBlock classifies one top-level AST node into a Block.
func buildBlock(node ast.Node, src []byte, baseDir string) Block {
	switch v := node.(type) {
	case *ast.Heading:
		return Block{
			Kind:   KindHeading,
			Level:  v.Level,
			Text:   textOf(v, src),
			Source: sourceSpan(v, src),
		}
	case *ast.FencedCodeBlock:
		lang := strings.ToLower(strings.TrimSpace(string(v.Language(src))))
		content := linesOf(v, src)
		if diagramLanguages[lang] {
			return Block{Kind: KindDiagram, Language: lang, Text: content}
		}
		return Block{Kind: KindCodeBlock, Language: lang, Text: content}
	case *ast.CodeBlock:
		return Block{Kind: KindCodeBlock, Text: linesOf(v, src)}
	case *east.Table:
		return buildTable(v, src)
	case *ast.Paragraph:
		if img, ok := soleImage(v); ok {
			return Block{
				Kind:  KindImage,
				Path:  resolveImagePath(string(img.Destination), baseDir),
				Text:  textOf(img, src),
				Title: string(img.Title),
			}
		}
		return Block{Kind: KindParagraph, Source: sourceSpan(v, src)}
	case *ast.Blockquote:
		return Block{Kind: KindBlockquote, Source: sourceSpan(v, src)}
	case *ast.List:
		return Block{Kind: KindList, Source: sourceSpan(v, src)}
	case *ast.ThematicBreak:
		return Block{Kind: KindRule}
	case *ast.HTMLBlock:
		return Block{Kind: KindHTMLBlock, Source: sourceSpan(v, src)}
	default:
		return Block{Kind: KindParagraph, Source: sourceSpan(node, src)}
	}
}

// buildTable converts a GFM table node, padding or truncating every row
// to the header's column count. Mismatched rows are kept, never dropped.
func buildTable(table *east.Table, src []byte) Block {
	var rows [][]string
	columns := 0

	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *east.TableHeader:
			header := cellTexts(v, src)
			columns = len(header)
			rows = append(rows, header)
		case *east.TableRow:
			rows = append(rows, cellTexts(v, src))
		}
	}

	// The header defines the canonical width.
	for i := 1; i < len(rows); i++ {
		for len(rows[i]) < columns {
			rows[i] = append(rows[i], "")
		}
		if len(rows[i]) > columns {
			rows[i] = rows[i][:columns]
		}
	}

	return Block{Kind: KindTable, Rows: rows, Columns: columns}
}

// cellTexts extracts the text of each cell in a header or row node.
func cellTexts(row ast.Node, src []byte) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, textOf(cell, src))
	}
	return cells
}

// soleImage reports whether the paragraph consists of a single image.
func soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	child := p.FirstChild()
	if child == nil || child != p.LastChild() {
		return nil, false
	}
	img, ok := child.(*ast.Image)
	return img, ok
}

// resolveImagePath resolves a relative image path against baseDir.
// URLs and absolute paths pass through unchanged.
func resolveImagePath(dest, baseDir string) string {
	if dest == "" || baseDir == "" {
		return dest
	}
	if fileutil.IsURL(dest) || strings.HasPrefix(dest, "data:") || filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(baseDir, dest)
}

// textOf collects the plain text content of a node and its descendants.
func textOf(node ast.Node, src []byte) string {
	var buf strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// linesOf concatenates a code block's line segments.
func linesOf(node ast.Node, src []byte) string {
	var buf strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// sourceSpan recovers the raw Markdown of a block, expanded to whole
// lines so that container markers ("> ", list bullets) on the first
// line survive re-rendering.
func sourceSpan(node ast.Node, src []byte) string {
	start, stop := -1, -1
	update := func(s, e int) {
		if s < 0 || e <= s {
			return
		}
		if start < 0 || s < start {
			start = s
		}
		if e > stop {
			stop = e
		}
	}

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			update(t.Segment.Start, t.Segment.Stop)
			return ast.WalkContinue, nil
		}
		// Lines() is only defined for block nodes; goldmark panics on
		// inline ones. Inline extents are covered by the Text branch.
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				update(seg.Start, seg.Stop)
			}
		}
		return ast.WalkContinue, nil
	})

	if start < 0 {
		return ""
	}

	// Expand to line boundaries.
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	for stop < len(src) && src[stop] != '\n' {
		stop++
	}

	return string(src[start:stop])
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
