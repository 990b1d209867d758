package assets

import "errors"

// Lookup failures.
var (
	// ErrStyleNotFound means no stylesheet exists under the requested name.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName means the name carries path separators, dots,
	// or traversal sequences and was refused before any lookup.
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// Filesystem loader failures.
var (
	// ErrInvalidBasePath means the configured asset directory is missing,
	// unreadable, or not a directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead wraps I/O errors from reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal means a resolved path landed outside the base directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
