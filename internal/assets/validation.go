package assets

import (
	"fmt"
	"io/fs"
	"strings"
)

// ValidateAssetName rejects anything but a bare file stem: no separators,
// no dots, no empty name.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case !fs.ValidPath(name), strings.ContainsAny(name, `/\.`):
		return fmt.Errorf("%w: %q (want a bare name such as %q)", ErrInvalidAssetName, name, DefaultStyleName)
	}
	return nil
}
