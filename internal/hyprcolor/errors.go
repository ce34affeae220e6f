package hyprcolor

import "errors"

var (
	// ErrGradientWriteBack is returned when a single picker color would
	// replace a multi-stop gradient value.
	ErrGradientWriteBack = errors.New("cannot write a single color into a gradient")
	ErrInvalidHex        = errors.New("invalid hex color")
)
