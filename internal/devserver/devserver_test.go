package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/entry"
	"github.com/revati108/arch-board/internal/migration"
	"github.com/revati108/arch-board/internal/scene"
	"github.com/revati108/arch-board/internal/waybar"
)

func newTestBackend(t *testing.T, seed Seed) (*backend.Client, *State) {
	t.Helper()
	state, err := NewState(seed)
	if err != nil {
		t.Fatalf("NewState error = %v", err)
	}
	state.now = func() time.Time { return time.Date(2026, 3, 4, 19, 5, 0, 0, time.UTC) }
	srv := httptest.NewServer(NewRouter(NewHandler(state)))
	t.Cleanup(srv.Close)
	return backend.New(srv.URL, 5*time.Second), state
}

func TestBind_AddThenDeleteByReturnedRaw_EndToEnd(t *testing.T) {
	client, _ := newTestBackend(t, DefaultSeed())
	repo := entry.NewRepository[entry.Bind](client, entry.BindKind{})
	ctx := context.Background()

	before, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error = %v", err)
	}

	items, err := repo.Add(ctx, entry.Bind{Type: "bind", Mods: "SUPER SHIFT", Key: "F", Dispatcher: "togglefloating"})
	if err != nil {
		t.Fatalf("Add error = %v", err)
	}
	if len(items) != len(before)+1 {
		t.Fatalf("len after add = %d, want %d", len(items), len(before)+1)
	}
	added, ok := repo.Find(entry.Ref("SUPER SHIFT,F,togglefloating"))
	if !ok {
		t.Fatalf("added bind not listed: %+v", items)
	}
	if added.Dispatcher != "togglefloating" || added.Mods != "SUPER SHIFT" {
		t.Errorf("added = %+v", added)
	}

	items, err = repo.Delete(ctx, entry.Ref(added.Raw))
	if err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if len(items) != len(before) {
		t.Errorf("len after delete = %d, want %d", len(items), len(before))
	}
	if _, ok := repo.Find(entry.Ref(added.Raw)); ok {
		t.Error("deleted bind still listed")
	}
}

func TestBinds_InsertedAfterLastBind(t *testing.T) {
	client, state := newTestBackend(t, DefaultSeed())
	repo := entry.NewRepository[entry.Bind](client, entry.BindKind{})

	if _, err := repo.Add(context.Background(), entry.Bind{Type: "binde", Mods: "SUPER", Key: "L", Dispatcher: "resizeactive", Params: "10 0"}); err != nil {
		t.Fatalf("Add error = %v", err)
	}
	lines := state.conf.lines
	last := -1
	for i, l := range lines {
		if strings.HasPrefix(l.Key, "bind") {
			last = i
		}
	}
	if got := lines[last]; got.Key != "binde" || got.Value != "SUPER,L,resizeactive,10 0" {
		t.Errorf("last bind line = %+v", got)
	}
}

func TestEntries_Update(t *testing.T) {
	client, _ := newTestBackend(t, DefaultSeed())
	ctx := context.Background()

	execs := entry.NewRepository[entry.Exec](client, entry.ExecKind{})
	items, err := execs.Update(ctx, entry.Ref("exec-once = hypridle"), entry.Exec{Type: "exec-once", Command: "hypridle -c ~/.config/hypr/idle.conf"})
	if err != nil {
		t.Fatalf("exec Update error = %v", err)
	}
	if items[1].Command != "hypridle -c ~/.config/hypr/idle.conf" {
		t.Errorf("exec after update = %+v", items)
	}

	envs := entry.NewRepository[entry.Env](client, entry.EnvKind{})
	items2, err := envs.Update(ctx, entry.Ref("XCURSOR_SIZE,24"), entry.Env{Name: "XCURSOR_SIZE", Value: "32"})
	if err != nil {
		t.Fatalf("env Update error = %v", err)
	}
	if items2[0].Raw != "XCURSOR_SIZE,32" || items2[0].Value != "32" {
		t.Errorf("env after update = %+v", items2)
	}

	rules := entry.NewRepository[entry.WindowRule](client, entry.WindowRuleKind{})
	items3, err := rules.Add(ctx, entry.WindowRule{Type: "windowrule", Effect: "float on", Match: "match:class ^(mpv)$"})
	if err != nil {
		t.Fatalf("windowrule Add error = %v", err)
	}
	if got := items3[len(items3)-1]; got.Effect != "float on" || got.Match != "match:class ^(mpv)$" {
		t.Errorf("last rule = %+v", got)
	}
}

func TestMutateEntry_NoMatchIsUnsuccessful(t *testing.T) {
	client, _ := newTestBackend(t, DefaultSeed())

	err := client.MutateEntry(context.Background(), entry.KindBinds, map[string]any{"action": "delete", "old_raw": "SUPER,Z,nothing"})
	if !errors.Is(err, backend.ErrUnsuccessful) {
		t.Fatalf("error = %v, want ErrUnsuccessful", err)
	}
}

func TestListEntries_UnknownKind(t *testing.T) {
	client, _ := newTestBackend(t, DefaultSeed())

	var out []map[string]any
	err := client.ListEntries(context.Background(), "wallpapers", &out)
	if !backend.IsNotFound(err) {
		t.Fatalf("error = %v, want 404", err)
	}
}

func TestLayerRules_FollowFileSyntax(t *testing.T) {
	client, state := newTestBackend(t, DefaultSeed())
	ctx := context.Background()
	repo := entry.NewRepository[entry.LayerRule](client, entry.LayerRuleKind{})

	if _, err := repo.Add(ctx, entry.LayerRule{Effect: "ignorezero", Namespace: "rofi"}); err != nil {
		t.Fatalf("Add error = %v", err)
	}
	if got := state.conf.lines[len(state.conf.lines)-1]; got.Key != "gesture" {
		t.Errorf("layer rule appended at the end: %+v", got)
	}
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if items[1].Raw != "ignorezero, rofi" {
		t.Errorf("legacy add raw = %q, want %q", items[1].Raw, "ignorezero, rofi")
	}

	if _, err := client.Migrate(ctx); err != nil {
		t.Fatalf("Migrate error = %v", err)
	}
	items, err = repo.Add(ctx, entry.LayerRule{Effect: "blur", Namespace: "notifications"})
	if err != nil {
		t.Fatalf("Add after migrate error = %v", err)
	}
	last := items[len(items)-1]
	if last.Raw != "blur on, match:namespace notifications" || last.Namespace != "notifications" {
		t.Errorf("new-syntax add = %+v", last)
	}
}

func TestGestures_Parse(t *testing.T) {
	seed := DefaultSeed()
	seed.Lines = []migration.Line{
		{Key: "gesture", Value: "3, horizontal, workspace"},
		{Key: "gesture", Value: "4, up, mod: SUPER, scale: 1.5, dispatcher, exec, kitty"},
		{Key: "gesture", Value: "2, left"},
	}
	client, _ := newTestBackend(t, seed)

	items, err := entry.NewRepository[entry.Gesture](client, entry.GestureKind{}).List(context.Background())
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("gestures = %+v, want 2 (short line skipped)", items)
	}
	g := items[1]
	if g.Fingers != 4 || g.Mod != "SUPER" || g.Scale != "1.5" || g.Action != "dispatcher" || g.Dispatcher != "exec" || g.Params != "kitty" {
		t.Errorf("gesture = %+v", g)
	}
}

func TestGestures_AddWritesOptionalParts(t *testing.T) {
	client, state := newTestBackend(t, DefaultSeed())

	_, err := entry.NewRepository[entry.Gesture](client, entry.GestureKind{}).Add(context.Background(),
		entry.Gesture{Fingers: 3, Direction: "down", Action: "dispatcher", Dispatcher: "exec", Params: "rofi -show drun", Mod: "ALT"})
	if err != nil {
		t.Fatalf("Add error = %v", err)
	}
	gestures := state.conf.gestures()
	if got := gestures[len(gestures)-1].Raw; got != "3, down, mod: ALT, dispatcher, exec, rofi -show drun" {
		t.Errorf("raw = %q", got)
	}
}

func TestMonitorsAndWindows(t *testing.T) {
	seed := DefaultSeed()
	seed.Lines = append(seed.Lines, migration.Line{Key: "monitor", Value: "disable"})
	client, _ := newTestBackend(t, seed)
	ctx := context.Background()

	mons, err := client.Monitors(ctx)
	if err != nil {
		t.Fatalf("Monitors error = %v", err)
	}
	if len(mons) != 3 {
		t.Fatalf("monitors = %+v", mons)
	}
	if mons[1].Name != "HDMI-A-1" || len(mons[1].Extras) != 2 || mons[1].Extras[0] != "transform" {
		t.Errorf("second monitor = %+v", mons[1])
	}
	if !mons[2].Disabled {
		t.Errorf("disable line = %+v", mons[2])
	}

	wins, err := client.Windows(ctx)
	if err != nil {
		t.Fatalf("Windows error = %v", err)
	}
	if len(wins) != 3 || wins[1].Class != "firefox" {
		t.Errorf("windows = %+v", wins)
	}
}

func TestConfig_BulkUpdate(t *testing.T) {
	client, _ := newTestBackend(t, DefaultSeed())
	ctx := context.Background()

	results, err := client.BulkUpdate(ctx, map[string]any{
		"general:gaps_in ":         12,
		"decoration:blur:enabled ": false,
		"nonsense":                 1,
	})
	if err != nil {
		t.Fatalf("BulkUpdate error = %v", err)
	}
	if !results["general:gaps_in "].Success || results["nonsense"].Success {
		t.Errorf("results = %+v", results)
	}

	snap, err := client.Config(ctx)
	if err != nil {
		t.Fatalf("Config error = %v", err)
	}
	if snap.Config["general:gaps_in "] != float64(12) {
		t.Errorf("gaps_in = %v, want 12", snap.Config["general:gaps_in "])
	}
	if snap.Config["decoration:blur:enabled "] != false {
		t.Errorf("blur enabled = %v, want false", snap.Config["decoration:blur:enabled "])
	}
	// Unset options resolve to the schema default.
	if snap.Config["general:layout "] != "dwindle" {
		t.Errorf("layout = %v, want dwindle", snap.Config["general:layout "])
	}
	if snap.Path == "" {
		t.Error("Path is empty")
	}
}

func TestSchema(t *testing.T) {
	client, _ := newTestBackend(t, DefaultSeed())

	s, err := client.Schema(context.Background())
	if err != nil {
		t.Fatalf("Schema error = %v", err)
	}
	o, ok := s.Lookup("general:col.active_border ")
	if !ok || o.Type != "gradient" {
		t.Errorf("Lookup(col.active_border) = %+v, %v", o, ok)
	}
}

func TestMigration(t *testing.T) {
	client, _ := newTestBackend(t, DefaultSeed())
	ctx := context.Background()

	st, err := client.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("MigrationStatus error = %v", err)
	}
	if !st.NeedsMigration || !strings.Contains(st.Summary, "legacy window rules") {
		t.Errorf("status = %+v", st)
	}
	if st.Version == nil || st.Version.Version != "0.53.1" || !st.Version.SupportsNewWindowRules {
		t.Errorf("version = %+v", st.Version)
	}

	res, err := client.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate error = %v", err)
	}
	if !res.Migrated || res.MigratedRules != 2 {
		t.Errorf("result = %+v", res)
	}
	if !strings.HasSuffix(res.BackupPath, ".backup-20260304-190500") {
		t.Errorf("BackupPath = %q", res.BackupPath)
	}

	res, err = client.Migrate(ctx)
	if err != nil {
		t.Fatalf("second Migrate error = %v", err)
	}
	if res.Migrated || res.Message != "Config is already using new syntax" {
		t.Errorf("second result = %+v", res)
	}
}

func TestReload(t *testing.T) {
	client, state := newTestBackend(t, DefaultSeed())

	if err := client.Reload(context.Background()); err != nil {
		t.Fatalf("Reload error = %v", err)
	}
	if state.reloads != 1 {
		t.Errorf("reloads = %d, want 1", state.reloads)
	}
}

func TestLockscreen_RoundTrip(t *testing.T) {
	client, _ := newTestBackend(t, DefaultSeed())
	ctx := context.Background()

	var cfg scene.LockscreenConfig
	if err := client.Lockscreen(ctx, &cfg); err != nil {
		t.Fatalf("Lockscreen error = %v", err)
	}
	widgets := scene.Flatten(cfg)
	if len(widgets) != 3 {
		t.Fatalf("widgets = %+v", widgets)
	}

	widgets = append(widgets, scene.Widget{ID: "w-x", Type: scene.TypeShape, Data: scene.Defaults(scene.TypeShape)})
	if err := client.SaveLockscreen(ctx, scene.Unflatten(widgets, cfg)); err != nil {
		t.Fatalf("SaveLockscreen error = %v", err)
	}

	var got scene.LockscreenConfig
	if err := client.Lockscreen(ctx, &got); err != nil {
		t.Fatalf("Lockscreen error = %v", err)
	}
	if len(got.Shapes) != 1 || got.General["hide_cursor"] != true {
		t.Errorf("saved config = %+v", got)
	}
}

func TestWaybar_UpdateModule(t *testing.T) {
	client, _ := newTestBackend(t, DefaultSeed())
	ctx := context.Background()

	if err := waybar.UpdateModule(ctx, client, "clock", json.RawMessage(`{"format":"{:%I:%M %p}"}`)); err != nil {
		t.Fatalf("UpdateModule error = %v", err)
	}
	cfg, err := waybar.Load(ctx, client)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	m, err := cfg.Module("clock")
	if err != nil {
		t.Fatalf("Module error = %v", err)
	}
	if !strings.Contains(string(m.Config), "%I:%M %p") || m.Position != waybar.Center {
		t.Errorf("clock = %+v (%s)", m, m.Config)
	}
}

func TestWaybar_MissingValue(t *testing.T) {
	client, _ := newTestBackend(t, DefaultSeed())

	err := client.Post(context.Background(), "waybar/config/update", map[string]any{"module": "clock"}, nil)
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("error = %v, want 400", err)
	}
}
