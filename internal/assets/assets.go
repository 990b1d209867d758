// Package assets serves the CSS stylesheets bundled with the converter,
// either from the embedded copies or from a directory on disk.
package assets

// A StyleLoader resolves a bare style name, no extension and no path,
// to CSS text. Lookups fail with ErrStyleNotFound when the name is
// unknown and ErrInvalidAssetName when it is unsafe.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}

var defaultLoader = NewEmbeddedLoader()

// LoadStyle resolves name against the embedded stylesheets.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}
