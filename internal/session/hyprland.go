package session

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/entry"
	"github.com/revati108/arch-board/internal/hyprcolor"
	"github.com/revati108/arch-board/internal/notify"
	"github.com/revati108/arch-board/internal/pipeline"
	"github.com/revati108/arch-board/internal/preset"
	"github.com/revati108/arch-board/internal/schema"
)

// HyprlandAPI is the backend surface the Hyprland page uses.
type HyprlandAPI interface {
	preset.API
	entry.Backend
	Schema(ctx context.Context) (schema.Schema, error)
	Config(ctx context.Context) (*backend.ConfigSnapshot, error)
	BulkUpdate(ctx context.Context, updates map[string]any) (map[string]backend.BulkResult, error)
	Reload(ctx context.Context) error
}

// Hyprland is the Hyprland options page.
type Hyprland struct {
	api    HyprlandAPI
	opts   Options
	schema schema.Schema
	path   string

	buf       *pipeline.Buffer
	saver     *pipeline.Saver
	autosaver *pipeline.Autosaver
	presets   *preset.Manager
}

// OpenHyprland loads the schema, the option values and the preset list
// concurrently. Any failure aborts the open.
func OpenHyprland(ctx context.Context, api HyprlandAPI, opts Options) (*Hyprland, error) {
	h := &Hyprland{api: api, opts: opts, buf: pipeline.NewBuffer()}
	h.saver = pipeline.NewSaver(h.buf, api, opts.ClearMode)
	h.presets = preset.NewManager(api, backend.ToolHyprland, preset.Hooks{
		Save:    pipeline.SaverStep(h.saver),
		Reload:  h.Refresh,
		Pending: h.buf,
		Confirm: opts.Confirm,
	})

	var snap *backend.ConfigSnapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := api.Schema(gctx)
		h.schema = s
		return err
	})
	g.Go(func() error {
		var err error
		snap, err = api.Config(gctx)
		return err
	})
	g.Go(func() error {
		_, err := h.presets.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("open hyprland: %w", err)
	}
	h.buf.Load(snap.Config)
	h.path = snap.Path

	if opts.Autosave {
		h.autosaver = pipeline.NewAutosaver(pipeline.SaverStep(h.saver), opts.AutosaveDelay,
			pipeline.WithAfterSave(h.presets.SyncIfActive),
			pipeline.WithNotifier(opts.notifier()),
		)
		h.buf.OnSet(func(string) { h.autosaver.Trigger() })
	}
	slog.Debug("hyprland session opened", "options", len(snap.Config), "autosave", opts.Autosave)
	return h, nil
}

// Close stops the autosave timer, waiting for a run in progress.
// Unsaved edits are dropped.
func (h *Hyprland) Close() error {
	if h.autosaver != nil {
		h.autosaver.Stop()
	}
	return nil
}

func (h *Hyprland) Schema() schema.Schema    { return h.schema }
func (h *Hyprland) ConfigPath() string       { return h.path }
func (h *Hyprland) Buffer() *pipeline.Buffer { return h.buf }
func (h *Hyprland) Presets() *preset.Manager { return h.presets }

// Value resolves path against the cached values and the schema defaults.
func (h *Hyprland) Value(path string) any {
	return h.schema.Resolve(path, h.buf.Values())
}

// Set records an edit to one option. Text input is coerced by the
// option's type when the path is in the schema, and numbers outside the
// option's min and max are rejected without touching the buffer.
func (h *Hyprland) Set(path string, v any) error {
	if opt, found := h.schema.Lookup(path); found {
		if s, ok := v.(string); ok {
			v = opt.Coerce(s)
		}
		if verr := opt.CheckRange(v); verr != nil {
			return fmt.Errorf("set %s: %w", path, verr)
		}
	}
	h.buf.Set(path, v)
	return nil
}

// SetColor writes a picked #rrggbb into a color option, keeping the
// encoding of the value it replaces.
func (h *Hyprland) SetColor(path, hex string) error {
	current, _ := h.Value(path).(string)
	v, err := hyprcolor.FormatUpdate(current, hex)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	h.buf.Set(path, v)
	return nil
}

// Save writes pending edits, then copies the result into the active
// preset. With nothing pending it returns pipeline.ErrNothingToSave.
func (h *Hyprland) Save(ctx context.Context) (*pipeline.Report, error) {
	rep, err := h.saver.Save(ctx)
	if err != nil {
		return nil, err
	}
	if len(rep.Failed) > 0 {
		h.opts.notifier().Notify(notify.Warning, fmt.Sprintf("Saved with %d option(s) rejected", len(rep.Failed)))
	}
	if err := h.presets.SyncIfActive(ctx); err != nil {
		return rep, err
	}
	return rep, nil
}

// Refresh refetches the option values. Pending edits are dropped.
func (h *Hyprland) Refresh(ctx context.Context) error {
	snap, err := h.api.Config(ctx)
	if err != nil {
		return fmt.Errorf("refresh hyprland: %w", err)
	}
	h.buf.Load(snap.Config)
	h.path = snap.Path
	return nil
}

// ReloadCompositor asks Hyprland to re-read its config file.
func (h *Hyprland) ReloadCompositor(ctx context.Context) error {
	if err := h.api.Reload(ctx); err != nil {
		return fmt.Errorf("reload hyprland: %w", err)
	}
	return nil
}

// Entries opens the raw-line collection of kind ("binds", "exec", ...).
func (h *Hyprland) Entries(kind string) (entry.Collection, error) {
	return entry.Open(kind, h.api)
}
