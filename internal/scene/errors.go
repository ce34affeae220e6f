package scene

import "errors"

var (
	ErrUnknownWidgetType = errors.New("unknown widget type")
	ErrWidgetNotFound    = errors.New("widget not found")
	// ErrNotDraggable is returned when moving a background, which always
	// fills the canvas.
	ErrNotDraggable = errors.New("widget cannot be moved")
)
