package preset

import "errors"

var (
	// ErrDiscardDeclined is returned by Switch when the user keeps their
	// unsaved changes. Nothing was sent.
	ErrDiscardDeclined = errors.New("switch cancelled: unsaved changes kept")
	// ErrNoActivePreset is returned by operations that need an active preset.
	ErrNoActivePreset = errors.New("no active preset")
)
