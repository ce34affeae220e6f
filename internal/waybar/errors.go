package waybar

import "errors"

var (
	ErrModuleNotFound = errors.New("waybar module not found")
	// ErrInvalidConfig is returned for documents that are neither a bar
	// object nor an array of bar objects.
	ErrInvalidConfig = errors.New("invalid waybar config")
)
