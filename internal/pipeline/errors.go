package pipeline

import "errors"

// ErrNothingToSave is returned by Save when no path is pending. No request
// is sent.
var ErrNothingToSave = errors.New("no changes to save")

// ErrUnknownClearMode is returned by ParseClearMode.
var ErrUnknownClearMode = errors.New("unknown clear mode")
