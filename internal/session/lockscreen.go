package session

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/pipeline"
	"github.com/revati108/arch-board/internal/preset"
	"github.com/revati108/arch-board/internal/scene"
)

// LockscreenAPI is the backend surface the lock screen editor uses.
type LockscreenAPI interface {
	preset.API
	Lockscreen(ctx context.Context, out any) error
	SaveLockscreen(ctx context.Context, cfg any) error
}

// Lockscreen is the hyprlock editor. The whole document is written on
// every save.
type Lockscreen struct {
	api       LockscreenAPI
	opts      Options
	scene     *scene.Scene
	presets   *preset.Manager
	autosaver *pipeline.Autosaver

	mu    sync.Mutex
	saved scene.LockscreenConfig
	edits uint64 // bumped by every edit
	clean uint64 // value of edits at the last load or save
}

// OpenLockscreen loads the hyprlock document and its presets concurrently.
func OpenLockscreen(ctx context.Context, api LockscreenAPI, opts Options) (*Lockscreen, error) {
	l := &Lockscreen{api: api, opts: opts, scene: scene.New()}
	l.presets = preset.NewManager(api, backend.ToolHyprlock, preset.Hooks{
		Save:    l.saveIfDirty,
		Reload:  l.Refresh,
		Pending: l,
		Confirm: opts.Confirm,
	})

	var cfg scene.LockscreenConfig
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Lockscreen(gctx, &cfg)
	})
	g.Go(func() error {
		_, err := l.presets.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("open lockscreen: %w", err)
	}
	l.load(cfg)

	if opts.Autosave {
		l.autosaver = pipeline.NewAutosaver(l.saveIfDirty, opts.AutosaveDelay,
			pipeline.WithAfterSave(l.presets.SyncIfActive),
			pipeline.WithNotifier(opts.notifier()),
		)
	}
	l.scene.OnChange(func(scene.LockscreenConfig) {
		l.mu.Lock()
		l.edits++
		l.mu.Unlock()
		if l.autosaver != nil {
			l.autosaver.Trigger()
		}
	})
	return l, nil
}

// Close stops the autosave timer. Unsaved edits are dropped.
func (l *Lockscreen) Close() error {
	if l.autosaver != nil {
		l.autosaver.Stop()
	}
	return nil
}

func (l *Lockscreen) Scene() *scene.Scene      { return l.scene }
func (l *Lockscreen) Presets() *preset.Manager { return l.presets }

// DirtyCount is 1 when the scene differs from the last saved document.
func (l *Lockscreen) DirtyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.edits != l.clean {
		return 1
	}
	return 0
}

// Discard reverts the scene to the last saved document.
func (l *Lockscreen) Discard() {
	l.mu.Lock()
	saved := l.saved
	l.mu.Unlock()
	l.load(saved)
}

// Save writes the scene and syncs the active preset. Unlike option saves
// it always sends, so a save right after opening rewrites the file.
func (l *Lockscreen) Save(ctx context.Context) error {
	if err := l.save(ctx); err != nil {
		return err
	}
	return l.presets.SyncIfActive(ctx)
}

// Refresh refetches the document. Unsaved edits are dropped.
func (l *Lockscreen) Refresh(ctx context.Context) error {
	var cfg scene.LockscreenConfig
	if err := l.api.Lockscreen(ctx, &cfg); err != nil {
		return fmt.Errorf("refresh lockscreen: %w", err)
	}
	l.load(cfg)
	return nil
}

func (l *Lockscreen) saveIfDirty(ctx context.Context) error {
	if l.DirtyCount() == 0 {
		return nil
	}
	return l.save(ctx)
}

func (l *Lockscreen) save(ctx context.Context) error {
	l.mu.Lock()
	at := l.edits
	l.mu.Unlock()

	cfg := l.scene.Config()
	if err := l.api.SaveLockscreen(ctx, cfg); err != nil {
		return fmt.Errorf("save lockscreen: %w", err)
	}

	l.mu.Lock()
	l.saved = cfg
	// An edit made while the request was in flight stays unsaved.
	if l.clean < at {
		l.clean = at
	}
	l.mu.Unlock()
	return nil
}

func (l *Lockscreen) load(cfg scene.LockscreenConfig) {
	l.scene.Load(cfg)
	l.mu.Lock()
	l.saved = cfg
	l.clean = l.edits
	l.mu.Unlock()
}
