package assets

import (
	"fmt"
	"strings"
)

// Style names map directly onto embedded filenames, so anything that
// could alter the resolved path is rejected. Dots are banned outright
// rather than just ".." so the ".css" extension stays under our control.
const forbiddenNameChars = `/\.`

// ValidateAssetName reports whether name is safe to use as a bare
// filename. Empty names and names containing path or extension
// characters fail with ErrInvalidAssetName.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
