package assets

import "errors"

// StyleResolver layers an optional on-disk loader over the embedded
// one. A user-supplied asset directory can shadow a bundled style or
// add new ones while the embedded set stays available underneath.
type StyleResolver struct {
	custom   StyleLoader // nil without an asset path
	embedded StyleLoader
}

var _ StyleLoader = (*StyleResolver)(nil)

// NewStyleResolver builds a resolver. An empty customBasePath means
// embedded styles only; a non-empty one must name a readable directory.
func NewStyleResolver(customBasePath string) (*StyleResolver, error) {
	r := &StyleResolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fs, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fs
	}
	return r, nil
}

// LoadStyle consults the custom loader first when one is configured.
// Only ErrStyleNotFound triggers the embedded fallback; validation and
// I/O errors surface as is.
func (r *StyleResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}
	content, err := r.custom.LoadStyle(name)
	if errors.Is(err, ErrStyleNotFound) {
		return r.embedded.LoadStyle(name)
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

// HasCustomLoader reports whether an asset directory is configured.
func (r *StyleResolver) HasCustomLoader() bool {
	return r.custom != nil
}
