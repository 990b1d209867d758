package render

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdpress/mdpress/internal/diagram"
	"github.com/mdpress/mdpress/internal/markdown"
)

func normalize(t *testing.T, source string) *markdown.Document {
	t.Helper()

	doc, err := markdown.NewNormalizer().Normalize(context.Background(), source, "")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	return doc
}

func TestRenderFullDocument(t *testing.T) {
	t.Parallel()

	source := "# Title\n\nSome *emphasized* text.\n\n```go\nfmt.Println(\"hi\")\n```\n\n---\n"
	doc := normalize(t, source)

	got, err := NewRenderer().Render(context.Background(), doc, nil, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Title</title>",
		"<h1",
		"<em>emphasized</em>",
		`class="chroma"`,
		"<hr />",
		"<style>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderDiagramWithImage(t *testing.T) {
	t.Parallel()

	doc := normalize(t, "```mermaid\ngraph TD; A-->B;\n```\n")

	// Minimal valid PNG header so the data URI carries an image type.
	imgPath := filepath.Join(t.TempDir(), "diagram-000-abcd.png")
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if err := os.WriteFile(imgPath, png, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewRenderer().Render(context.Background(), doc, diagram.Map{0: imgPath}, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(got, `<figure class="diagram">`) {
		t.Error("rendered diagram figure missing")
	}
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	if !strings.Contains(got, want) {
		t.Errorf("diagram image not inlined as a data URI:\n%s", got)
	}
	if strings.Contains(got, imgPath) {
		t.Errorf("diagram src leaks the on-disk path:\n%s", got)
	}
}

func TestRenderDiagramUnreadableImage(t *testing.T) {
	t.Parallel()

	doc := normalize(t, "```mermaid\ngraph TD; A-->B;\n```\n")

	missing := filepath.Join(t.TempDir(), "gone.png")
	got, err := NewRenderer().Render(context.Background(), doc, diagram.Map{0: missing}, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(got, "diagram-failed") {
		t.Error("unreadable image should fall back to the placeholder")
	}
}

func TestRenderDiagramPlaceholder(t *testing.T) {
	t.Parallel()

	doc := normalize(t, "```mermaid\ngraph TD; A-->B;\n```\n")

	// No entry in the map: the diagram failed to render.
	got, err := NewRenderer().Render(context.Background(), doc, nil, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(got, "diagram-failed") {
		t.Error("failure placeholder missing")
	}
	if !strings.Contains(got, "graph TD; A--&gt;B;") {
		t.Errorf("placeholder does not show the escaped diagram source:\n%s", got)
	}
	if !strings.Contains(got, "could not be rendered") {
		t.Error("placeholder caption missing")
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	source := "| Name | Age |\n| --- | --- |\n| <Bob> | 42 |\n"
	doc := normalize(t, source)

	got, err := NewRenderer().Render(context.Background(), doc, nil, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(got, "<thead><tr><th>Name</th><th>Age</th></tr></thead>") {
		t.Errorf("table header not rendered:\n%s", got)
	}
	if !strings.Contains(got, "&lt;Bob&gt;") {
		t.Error("cell content not escaped")
	}
}

func TestRenderStandaloneImage(t *testing.T) {
	t.Parallel()

	doc := normalize(t, `![logo](https://example.com/logo.png "Company logo")`)

	got, err := NewRenderer().Render(context.Background(), doc, nil, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(got, `<figure class="image">`) {
		t.Error("image figure missing")
	}
	if !strings.Contains(got, `src="https://example.com/logo.png"`) {
		t.Error("remote image URL rewritten unexpectedly")
	}
	if !strings.Contains(got, `title="Company logo"`) {
		t.Error("image title missing")
	}
}

func TestRenderInjectsUserCSS(t *testing.T) {
	t.Parallel()

	doc := normalize(t, "# T\n")

	got, err := NewRenderer().Render(context.Background(), doc, nil, "body { margin: 2em; }")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(got, "body { margin: 2em; }") {
		t.Error("user CSS not injected")
	}
}

func TestRenderContextCancelled(t *testing.T) {
	t.Parallel()

	doc := normalize(t, "# T\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRenderer().Render(ctx, doc, nil, ""); err == nil {
		t.Fatal("Render() with cancelled context did not fail")
	}
}

func TestDocumentTitleFallback(t *testing.T) {
	t.Parallel()

	doc := normalize(t, "just a paragraph\n")
	if got := documentTitle(doc); got != "Document" {
		t.Errorf("documentTitle() = %q, want Document", got)
	}
}
