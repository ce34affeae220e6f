package devserver

import "errors"

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrUnknownTool    = errors.New("unknown tool")
	ErrUnknownKind    = errors.New("unknown entry kind")
	ErrBadRequest     = errors.New("bad request")
)
