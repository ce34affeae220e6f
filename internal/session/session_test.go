package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/config"
	"github.com/revati108/arch-board/internal/devserver"
	"github.com/revati108/arch-board/internal/entry"
	"github.com/revati108/arch-board/internal/hyprcolor"
	"github.com/revati108/arch-board/internal/notify"
	"github.com/revati108/arch-board/internal/pipeline"
	"github.com/revati108/arch-board/internal/preset"
	"github.com/revati108/arch-board/internal/scene"
	"github.com/revati108/arch-board/internal/settings"
	"github.com/revati108/arch-board/internal/validation"
)

func TestMain(m *testing.M) {
	entry.RegisterDefaults()
	os.Exit(m.Run())
}

func newClient(t *testing.T) *backend.Client {
	t.Helper()
	state, err := devserver.NewState(devserver.DefaultSeed())
	if err != nil {
		t.Fatalf("NewState error = %v", err)
	}
	srv := httptest.NewServer(devserver.NewRouter(devserver.NewHandler(state)))
	t.Cleanup(srv.Close)
	return backend.New(srv.URL, 5*time.Second)
}

func approve(answer bool) preset.Confirmer {
	return preset.ConfirmFunc(func(context.Context, string) (bool, error) { return answer, nil })
}

func TestNewOptions(t *testing.T) {
	cfg := &config.Config{
		Autosave: config.AutosaveConfig{Delay: config.Duration(time.Second)},
		Pipeline: config.PipelineConfig{ClearMode: "all"},
	}

	opts, err := NewOptions(cfg, settings.Settings{AutosaveEnabled: true})
	if err != nil {
		t.Fatalf("NewOptions error = %v", err)
	}
	if !opts.Autosave || opts.AutosaveDelay != time.Second || opts.ClearMode != pipeline.ClearAll {
		t.Errorf("opts = %+v", opts)
	}

	opts, _ = NewOptions(cfg, settings.Settings{})
	if opts.Autosave {
		t.Error("Autosave = true with both sources off")
	}

	cfg.Pipeline.ClearMode = "sometimes"
	if _, err := NewOptions(cfg, settings.Settings{}); !errors.Is(err, pipeline.ErrUnknownClearMode) {
		t.Errorf("error = %v, want ErrUnknownClearMode", err)
	}
}

func TestOpenHyprland(t *testing.T) {
	h, err := OpenHyprland(context.Background(), newClient(t), Options{})
	if err != nil {
		t.Fatalf("OpenHyprland error = %v", err)
	}
	defer h.Close()

	if len(h.Schema()) == 0 {
		t.Error("schema not loaded")
	}
	if !strings.HasSuffix(h.ConfigPath(), "hyprland.conf") {
		t.Errorf("ConfigPath = %q", h.ConfigPath())
	}
	if got := h.Value("general:gaps_in "); got != float64(5) {
		t.Errorf("gaps_in = %v (%T), want 5", got, got)
	}
	if got := h.Value("decoration:dim_inactive "); got != false {
		t.Errorf("unset option = %v, want schema default false", got)
	}
}

func TestOpenHyprland_BackendDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := OpenHyprland(context.Background(), backend.New(url, time.Second), Options{})
	if !errors.Is(err, backend.ErrRequestFailed) {
		t.Fatalf("error = %v, want ErrRequestFailed", err)
	}
}

func TestHyprland_SetCoercesAndSaves(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()
	h, err := OpenHyprland(ctx, client, Options{})
	if err != nil {
		t.Fatalf("OpenHyprland error = %v", err)
	}
	defer h.Close()

	if err := h.Set("general:gaps_in ", "12"); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	if v, _ := h.Buffer().Value("general:gaps_in "); v != 12 {
		t.Errorf("buffered = %v (%T), want int 12", v, v)
	}

	rep, err := h.Save(ctx)
	if err != nil {
		t.Fatalf("Save error = %v", err)
	}
	if len(rep.Saved) != 1 || h.Buffer().DirtyCount() != 0 {
		t.Errorf("report = %+v, dirty = %d", rep, h.Buffer().DirtyCount())
	}
	if _, err := h.Save(ctx); !errors.Is(err, pipeline.ErrNothingToSave) {
		t.Errorf("second Save error = %v, want ErrNothingToSave", err)
	}

	snap, _ := client.Config(ctx)
	if snap.Config["general:gaps_in "] != float64(12) {
		t.Errorf("server gaps_in = %v", snap.Config["general:gaps_in "])
	}
}

func TestHyprland_SetRejectsOutOfRange(t *testing.T) {
	client := newClient(t)
	h, err := OpenHyprland(context.Background(), client, Options{})
	if err != nil {
		t.Fatalf("OpenHyprland error = %v", err)
	}
	defer h.Close()

	for _, v := range []any{"99", 51, -1.5} {
		err := h.Set("general:gaps_in ", v)
		if !errors.Is(err, validation.ErrInvalid) {
			t.Errorf("Set(%v) error = %v, want ErrInvalid", v, err)
		}
	}
	if n := h.Buffer().DirtyCount(); n != 0 {
		t.Errorf("DirtyCount = %d, want 0", n)
	}
	if err := h.Set("general:gaps_in ", "50"); err != nil {
		t.Errorf("Set(50) error = %v, want nil", err)
	}
}

func TestHyprland_SaveSyncsActivePreset(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()
	h, err := OpenHyprland(ctx, client, Options{})
	if err != nil {
		t.Fatalf("OpenHyprland error = %v", err)
	}
	defer h.Close()

	p, err := h.Presets().Create(ctx, "Work", "")
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	h.Set("general:gaps_out ", "20")
	if _, err := h.Save(ctx); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	// Clobber the live value behind the session's back, then restore the
	// preset: it must carry the synced edit.
	if _, err := client.BulkUpdate(ctx, map[string]any{"general:gaps_out ": 0}); err != nil {
		t.Fatalf("BulkUpdate error = %v", err)
	}
	if err := client.ActivatePreset(ctx, backend.ToolHyprland, p.ID); err != nil {
		t.Fatalf("ActivatePreset error = %v", err)
	}
	snap, _ := client.Config(ctx)
	if snap.Config["general:gaps_out "] != float64(20) {
		t.Errorf("preset gaps_out = %v, want 20", snap.Config["general:gaps_out "])
	}
}

func TestHyprland_SetColorKeepsFamily(t *testing.T) {
	h, err := OpenHyprland(context.Background(), newClient(t), Options{})
	if err != nil {
		t.Fatalf("OpenHyprland error = %v", err)
	}
	defer h.Close()

	if err := h.SetColor("general:col.inactive_border ", "#112233"); err != nil {
		t.Fatalf("SetColor error = %v", err)
	}
	if got := h.Value("general:col.inactive_border "); got != "rgba(112233aa)" {
		t.Errorf("value = %v, want rgba(112233aa)", got)
	}

	err = h.SetColor("general:col.active_border ", "#112233")
	if !errors.Is(err, hyprcolor.ErrGradientWriteBack) {
		t.Errorf("gradient error = %v, want ErrGradientWriteBack", err)
	}
	if h.Buffer().IsDirty("general:col.active_border ") {
		t.Error("rejected gradient edit left the path dirty")
	}
}

func TestHyprland_Autosave(t *testing.T) {
	client := newClient(t)
	rec := &notify.Recorder{}
	h, err := OpenHyprland(context.Background(), client, Options{
		Autosave:      true,
		AutosaveDelay: 10 * time.Millisecond,
		Notifier:      rec,
	})
	if err != nil {
		t.Fatalf("OpenHyprland error = %v", err)
	}
	defer h.Close()

	h.Set("general:gaps_in ", 1)
	h.Set("general:gaps_in ", 2)

	deadline := time.Now().Add(3 * time.Second)
	for h.Buffer().DirtyCount() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if h.Buffer().DirtyCount() != 0 {
		t.Fatal("autosave did not run")
	}
	snap, _ := client.Config(context.Background())
	if snap.Config["general:gaps_in "] != float64(2) {
		t.Errorf("server gaps_in = %v, want 2", snap.Config["general:gaps_in "])
	}

	for time.Now().Before(deadline) && len(rec.Notices()) == 0 {
		time.Sleep(10 * time.Millisecond)
	}
	notices := rec.Notices()
	if len(notices) == 0 || notices[len(notices)-1].Level != notify.Success {
		t.Errorf("notices = %+v, want a success", notices)
	}
}

func TestHyprland_SwitchPreset(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()
	confirm := false
	h, err := OpenHyprland(ctx, client, Options{
		Confirm: preset.ConfirmFunc(func(context.Context, string) (bool, error) { return confirm, nil }),
	})
	if err != nil {
		t.Fatalf("OpenHyprland error = %v", err)
	}
	defer h.Close()

	p, err := h.Presets().Create(ctx, "Default", "")
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	if err := h.Presets().Deactivate(ctx); err != nil {
		t.Fatalf("Deactivate error = %v", err)
	}

	h.Set("general:gaps_in ", 40)
	if err := h.Presets().Switch(ctx, p.ID); !errors.Is(err, preset.ErrDiscardDeclined) {
		t.Fatalf("Switch error = %v, want ErrDiscardDeclined", err)
	}
	if h.Buffer().DirtyCount() != 1 || h.Presets().Active() != "" {
		t.Errorf("declined switch changed state: dirty=%d active=%q", h.Buffer().DirtyCount(), h.Presets().Active())
	}

	confirm = true
	if err := h.Presets().Switch(ctx, p.ID); err != nil {
		t.Fatalf("Switch error = %v", err)
	}
	if h.Buffer().DirtyCount() != 0 {
		t.Error("approved switch kept pending edits")
	}
	if got := h.Value("general:gaps_in "); got != float64(5) {
		t.Errorf("gaps_in after switch = %v, want reloaded 5", got)
	}
	if h.Presets().Active() != p.ID {
		t.Errorf("Active = %q, want %q", h.Presets().Active(), p.ID)
	}
}

func TestHyprland_Entries(t *testing.T) {
	h, err := OpenHyprland(context.Background(), newClient(t), Options{})
	if err != nil {
		t.Fatalf("OpenHyprland error = %v", err)
	}
	defer h.Close()

	binds, err := h.Entries(entry.KindBinds)
	if err != nil {
		t.Fatalf("Entries error = %v", err)
	}
	records, err := binds.List(context.Background())
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(records) != 4 {
		t.Errorf("binds = %d, want 4", len(records))
	}
	if _, err := h.Entries("workspaces"); !errors.Is(err, entry.ErrUnknownKind) {
		t.Errorf("unknown kind error = %v", err)
	}
}

func TestLockscreen_EditSaveDiscard(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()
	l, err := OpenLockscreen(ctx, client, Options{})
	if err != nil {
		t.Fatalf("OpenLockscreen error = %v", err)
	}
	defer l.Close()

	if n := len(l.Scene().Widgets()); n != 3 {
		t.Fatalf("widgets = %d, want 3", n)
	}
	if l.DirtyCount() != 0 {
		t.Error("freshly opened scene is dirty")
	}

	if _, err := l.Scene().Add(scene.TypeShape); err != nil {
		t.Fatalf("Add error = %v", err)
	}
	if l.DirtyCount() != 1 {
		t.Fatal("edit did not mark the scene dirty")
	}
	if err := l.Save(ctx); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	if l.DirtyCount() != 0 {
		t.Error("save left the scene dirty")
	}

	var saved scene.LockscreenConfig
	if err := client.Lockscreen(ctx, &saved); err != nil {
		t.Fatalf("Lockscreen error = %v", err)
	}
	if len(saved.Shapes) != 1 {
		t.Errorf("server shapes = %d, want 1", len(saved.Shapes))
	}
	for _, d := range saved.Shapes {
		if _, ok := d["id"]; ok {
			t.Error("widget id leaked into the saved document")
		}
	}

	first := l.Scene().Widgets()[0]
	if err := l.Scene().Remove(first.ID); err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	l.Discard()
	if n := len(l.Scene().Widgets()); n != 4 || l.DirtyCount() != 0 {
		t.Errorf("after discard: widgets = %d, dirty = %d", n, l.DirtyCount())
	}
}

func TestLockscreen_SwitchNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	l, err := OpenLockscreen(ctx, newClient(t), Options{Confirm: approve(false)})
	if err != nil {
		t.Fatalf("OpenLockscreen error = %v", err)
	}
	defer l.Close()

	p, err := l.Presets().Create(ctx, "Minimal", "")
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	if err := l.Presets().Deactivate(ctx); err != nil {
		t.Fatalf("Deactivate error = %v", err)
	}
	if _, err := l.Scene().Add(scene.TypeLabel); err != nil {
		t.Fatalf("Add error = %v", err)
	}
	if err := l.Presets().Switch(ctx, p.ID); !errors.Is(err, preset.ErrDiscardDeclined) {
		t.Fatalf("Switch error = %v, want ErrDiscardDeclined", err)
	}
	if n := len(l.Scene().Widgets()); n != 4 {
		t.Errorf("declined switch changed the scene: %d widgets", n)
	}
}

func TestLockscreen_FailedSwitchKeepsEdits(t *testing.T) {
	ctx := context.Background()
	l, err := OpenLockscreen(ctx, newClient(t), Options{Confirm: approve(true)})
	if err != nil {
		t.Fatalf("OpenLockscreen error = %v", err)
	}
	defer l.Close()

	if _, err := l.Scene().Add(scene.TypeLabel); err != nil {
		t.Fatalf("Add error = %v", err)
	}
	err = l.Presets().Switch(ctx, "01ARYZ6S41TSV4RRFFQ69G5FAV")
	if !backend.IsNotFound(err) {
		t.Fatalf("Switch error = %v, want 404", err)
	}
	if l.DirtyCount() != 1 {
		t.Errorf("DirtyCount = %d, want 1 after failed activation", l.DirtyCount())
	}
	if n := len(l.Scene().Widgets()); n != 4 {
		t.Errorf("widgets = %d, want the added label kept", n)
	}
}

func TestWaybar_SetModule(t *testing.T) {
	ctx := context.Background()
	w, err := OpenWaybar(ctx, newClient(t), Options{})
	if err != nil {
		t.Fatalf("OpenWaybar error = %v", err)
	}
	defer w.Close()

	if err := w.SetModule(ctx, "clock", json.RawMessage(`{"format":"{:%H:%M:%S}"}`)); err != nil {
		t.Fatalf("SetModule error = %v", err)
	}
	m, err := w.Config().Module("clock")
	if err != nil {
		t.Fatalf("Module error = %v", err)
	}
	if !strings.Contains(string(m.Config), "%S") {
		t.Errorf("clock config = %s", m.Config)
	}
	if err := w.SetModule(ctx, "clock", json.RawMessage(`{nope`)); err == nil {
		t.Error("SetModule accepted invalid JSON")
	}
}
