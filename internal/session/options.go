// Package session holds the working state of one tool page: the option
// buffer or scene being edited, its presets and the autosave timer.
// Open a container, edit through it, Close it when done.
package session

import (
	"time"

	"github.com/revati108/arch-board/internal/config"
	"github.com/revati108/arch-board/internal/notify"
	"github.com/revati108/arch-board/internal/pipeline"
	"github.com/revati108/arch-board/internal/preset"
	"github.com/revati108/arch-board/internal/settings"
)

// Options configure a container.
type Options struct {
	// Autosave enables the debounced save after each edit.
	Autosave      bool
	AutosaveDelay time.Duration
	ClearMode     pipeline.ClearMode
	Notifier      notify.Notifier
	// Confirm approves discarding unsaved edits on preset switch. Nil
	// declines.
	Confirm preset.Confirmer
}

// NewOptions derives Options from the loaded config and the stored
// preferences. Autosave is on when either enables it.
func NewOptions(cfg *config.Config, prefs settings.Settings) (Options, error) {
	mode, err := pipeline.ParseClearMode(cfg.Pipeline.ClearMode)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Autosave:      cfg.Autosave.Enabled || prefs.AutosaveEnabled,
		AutosaveDelay: cfg.Autosave.Delay.Std(),
		ClearMode:     mode,
	}, nil
}

func (o Options) notifier() notify.Notifier {
	if o.Notifier == nil {
		return notify.Discard
	}
	return o.Notifier
}
