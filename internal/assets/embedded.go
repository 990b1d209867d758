package assets

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed styles/*
var styles embed.FS

// EmbeddedLoader serves the stylesheets compiled into the binary.
type EmbeddedLoader struct{}

var _ StyleLoader = (*EmbeddedLoader)(nil)

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle resolves name against the embedded styles directory.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// ListStyles names every embedded style, extension stripped. Used by
// the CLI to suggest alternatives when a style lookup fails.
func ListStyles() []string {
	entries, err := styles.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".css"); ok {
			names = append(names, n)
		}
	}
	return names
}
