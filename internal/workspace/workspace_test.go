package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCreatesDirectory(t *testing.T) {
	t.Parallel()

	ws, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = ws.Cleanup() }()

	info, err := os.Stat(ws.Dir())
	if err != nil {
		t.Fatalf("workspace dir missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("workspace path is not a directory")
	}
	if !strings.Contains(filepath.Base(ws.Dir()), "mdpress-work-") {
		t.Errorf("workspace dir %q lacks the expected prefix", ws.Dir())
	}
}

func TestPathJoins(t *testing.T) {
	t.Parallel()

	ws, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = ws.Cleanup() }()

	got := ws.Path("diagram-000-abcd.png")
	want := filepath.Join(ws.Dir(), "diagram-000-abcd.png")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestCleanupRemovesContents(t *testing.T) {
	t.Parallel()

	ws, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := os.WriteFile(ws.Path("scratch.html"), []byte("<p>x</p>"), 0o644); err != nil {
		t.Fatalf("seeding workspace: %v", err)
	}

	if err := ws.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}

	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("workspace dir still exists after Cleanup: %v", err)
	}
}

func TestCleanupIdempotent(t *testing.T) {
	t.Parallel()

	ws, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := ws.Cleanup(); err != nil {
		t.Fatalf("first Cleanup() error = %v", err)
	}
	if err := ws.Cleanup(); err != nil {
		t.Errorf("second Cleanup() error = %v", err)
	}
}
