package migration

import "errors"

// ErrUnknownVersion is returned when no Hyprland version can be found in
// hyprctl output.
var ErrUnknownVersion = errors.New("hyprland version not detected")
