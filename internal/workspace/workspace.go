// Package workspace manages the scoped temporary directory a single
// conversion uses for intermediate artifacts such as rendered diagram
// images and staged HTML.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Workspace is a temporary directory that lives for one conversion.
// Cleanup is idempotent and safe to defer on every code path.
type Workspace struct {
	dir string

	mu      sync.Mutex
	cleaned bool
}

// New creates a fresh workspace directory under the system temp dir.
func New() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "mdpress-work-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace root.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path joins name onto the workspace root.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Cleanup removes the workspace directory and everything in it.
// Repeated calls are no-ops. Removal failures are returned but a
// conversion result never depends on them.
func (w *Workspace) Cleanup() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cleaned {
		return nil
	}
	w.cleaned = true

	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", w.dir, err)
	}
	return nil
}
