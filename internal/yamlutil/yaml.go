// Package yamlutil is the single seam between this codebase and the
// YAML library. Callers decode through it so the dependency stays in
// one place.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// maxDocumentSize caps decoded input. Config files are small; anything
// past this is a mistake or an attack, not a configuration.
const maxDocumentSize = 1 << 20

var (
	ErrEmptyDocument    = errors.New("yamlutil: empty document")
	ErrDocumentTooLarge = errors.New("yamlutil: document too large")
	ErrNilTarget        = errors.New("yamlutil: nil decode target")
)

// UnmarshalStrict decodes data into out, rejecting fields that out does
// not declare. Strictness catches typos in hand-written config files.
func UnmarshalStrict(data []byte, out any) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if len(data) > maxDocumentSize {
		return fmt.Errorf("%w: %d bytes", ErrDocumentTooLarge, len(data))
	}
	if out == nil {
		return ErrNilTarget
	}
	if err := yaml.UnmarshalWithOptions(data, out, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
