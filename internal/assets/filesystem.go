package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves stylesheets from {base}/styles/{name}.css on
// disk. The base directory is resolved to a real absolute path up front
// so later containment checks compare like with like.
type FilesystemLoader struct {
	base string
}

var _ StyleLoader = (*FilesystemLoader)(nil)

// NewFilesystemLoader validates basePath and returns a loader rooted
// there. The path must exist, be a directory, and be listable, anything
// else fails with ErrInvalidBasePath.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	base, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(base); err == nil {
		base = real
	}

	switch info, err := os.Stat(base); {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, base)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, base)
	}
	if _, err := os.ReadDir(base); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{base: base}, nil
}

// LoadStyle reads {base}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	path := filepath.Join(f.base, "styles", name+".css")
	if err := f.ensureWithinBase(path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- path validated above
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// ensureWithinBase rejects paths that resolve outside the base
// directory, covering both traversal that slipped past name validation
// and symlinks that point elsewhere. When the target does not exist yet
// EvalSymlinks fails and the prefix check runs on the unresolved path;
// the subsequent open fails regardless.
func (f *FilesystemLoader) ensureWithinBase(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	if !strings.HasPrefix(abs, f.base+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}
