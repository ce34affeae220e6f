package session

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/preset"
	"github.com/revati108/arch-board/internal/waybar"
)

// WaybarAPI is the backend surface the status bar page uses.
type WaybarAPI interface {
	preset.API
	waybar.API
}

// Waybar is the status bar page. Module edits are written immediately,
// so there is never anything pending.
type Waybar struct {
	api     WaybarAPI
	presets *preset.Manager
	config  *waybar.Config
}

// OpenWaybar loads the bar config and its presets concurrently.
func OpenWaybar(ctx context.Context, api WaybarAPI, opts Options) (*Waybar, error) {
	w := &Waybar{api: api}
	w.presets = preset.NewManager(api, backend.ToolWaybar, preset.Hooks{
		Reload:  w.Refresh,
		Confirm: opts.Confirm,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfg, err := waybar.Load(gctx, api)
		w.config = cfg
		return err
	})
	g.Go(func() error {
		_, err := w.presets.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("open waybar: %w", err)
	}
	return w, nil
}

func (w *Waybar) Close() error { return nil }

func (w *Waybar) Config() *waybar.Config   { return w.config }
func (w *Waybar) Presets() *preset.Manager { return w.presets }

// SetModule writes value as the config of module, refreshes the local
// copy and syncs the active preset.
func (w *Waybar) SetModule(ctx context.Context, module string, value json.RawMessage) error {
	if err := waybar.UpdateModule(ctx, w.api, module, value); err != nil {
		return err
	}
	if err := w.Refresh(ctx); err != nil {
		return err
	}
	return w.presets.SyncIfActive(ctx)
}

// Refresh refetches the bar config.
func (w *Waybar) Refresh(ctx context.Context) error {
	cfg, err := waybar.Load(ctx, w.api)
	if err != nil {
		return err
	}
	w.config = cfg
	return nil
}
