package waybar

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

const singleBar = `{
  // top bar
  "layer": "top",
  "height": 30,
  "margin-top": 4,
  "modules-left": ["hyprland/workspaces", "custom/media"],
  "modules-center": ["clock"],
  "modules-right": ["pulseaudio", "clock"],
  "clock": {"format": "{:%H:%M}", "tooltip-format": "http://example.com"},
  "pulseaudio": {"format": "{volume}%"},
  /* unused */
  "battery": {"states": {"warning": 30}}
}`

func TestParse_StripsComments(t *testing.T) {
	cfg, err := Parse([]byte(singleBar))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if strings.Contains(string(cfg.Raw()), "top bar") {
		t.Error("line comment not stripped")
	}
	if got := gjson.GetBytes(cfg.Raw(), "clock.tooltip-format").String(); got != "http://example.com" {
		t.Errorf("string with // mangled: %q", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{`"bar"`, `[1, 2]`, `{"a":`} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Parse(%s) error = %v, want ErrInvalidConfig", in, err)
		}
	}
}

func TestModules_PlacementOrder(t *testing.T) {
	cfg, err := Parse([]byte(singleBar))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, m := range cfg.Modules() {
		got = append(got, m.Name+"@"+string(m.Position))
	}
	want := "hyprland/workspaces@left custom/media@left clock@center pulseaudio@right battery@"
	if strings.Join(got, " ") != want {
		t.Errorf("Modules = %s, want %s", strings.Join(got, " "), want)
	}

	media, err := cfg.Module("custom/media")
	if err != nil {
		t.Fatal(err)
	}
	if media.Defined || media.Config != nil {
		t.Errorf("custom/media = %+v, want undefined", media)
	}
	clock, _ := cfg.Module("clock")
	if !clock.Defined || !strings.Contains(string(clock.Config), "{:%H:%M}") {
		t.Errorf("clock = %+v", clock)
	}
}

func TestModule_NotFound(t *testing.T) {
	cfg, _ := Parse([]byte(singleBar))
	if _, err := cfg.Module("height"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("Module(height) error = %v, want ErrModuleNotFound", err)
	}
}

func TestSet_SingleBar(t *testing.T) {
	cfg, _ := Parse([]byte(singleBar))
	next, err := cfg.Set("clock", json.RawMessage(`{"format":"{:%I:%M %p}"}`))
	if err != nil {
		t.Fatalf("Set error = %v", err)
	}
	if got := gjson.GetBytes(next.Raw(), "clock.format").String(); got != "{:%I:%M %p}" {
		t.Errorf("clock.format = %q", got)
	}
	if gjson.GetBytes(next.Raw(), "clock.tooltip-format").Exists() {
		t.Error("Set merged instead of replacing")
	}
	if gjson.GetBytes(cfg.Raw(), "clock.format").String() != "{:%H:%M}" {
		t.Error("Set modified the receiver")
	}
}

func TestSet_ArrayPicksDefiningBar(t *testing.T) {
	doc := `[
	  {"output": "DP-1", "modules-left": ["clock"]},
	  {"output": "HDMI-A-1", "modules-left": ["clock#2"], "clock#2": {"format": "x"}}
	]`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bars() != 2 {
		t.Errorf("Bars = %d, want 2", cfg.Bars())
	}
	if got := cfg.UpdatePath("clock#2"); got != `1.clock\#2` {
		t.Errorf("UpdatePath(clock#2) = %q", got)
	}
	if got := cfg.UpdatePath("battery"); got != "0.battery" {
		t.Errorf("UpdatePath(battery) = %q, want first bar", got)
	}

	next, err := cfg.Set("clock#2", map[string]any{"format": "y"})
	if err != nil {
		t.Fatalf("Set error = %v", err)
	}
	m, err := next.Module("clock#2")
	if err != nil {
		t.Fatal(err)
	}
	if m.Bar != 1 || string(m.Config) != `{"format":"y"}` {
		t.Errorf("clock#2 = %+v", m)
	}
}

func TestParse_JSONC(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"line comment", "{\n// bar\n\"modules-left\": [\"clock\"], \"clock\": {\"format\": \"a//b\"}} // tail"},
		{"block comment", `{/* x */"modules-left": ["clock"], "clock": {"format": "a//b"}}`},
		{"trailing commas", "{ // bar\n \"modules-left\": [\"clock\",], \"clock\": {\"format\": \"a//b\",},\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("Parse error = %v", err)
			}
			m, err := cfg.Module("clock")
			if err != nil {
				t.Fatalf("Module(clock) error = %v", err)
			}
			if m.Position != Left || !m.Defined {
				t.Errorf("clock = %+v", m)
			}
			if got := gjson.GetBytes(m.Config, "format").String(); got != "a//b" {
				t.Errorf("format = %q, want comment markers inside strings kept", got)
			}
		})
	}
}

type fakeAPI struct {
	raw     string
	updated map[string]json.RawMessage
}

func (f *fakeAPI) WaybarConfig(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(f.raw), nil
}

func (f *fakeAPI) UpdateWaybarModule(ctx context.Context, module string, value any) error {
	if f.updated == nil {
		f.updated = map[string]json.RawMessage{}
	}
	f.updated[module] = value.(json.RawMessage)
	return nil
}

func TestService(t *testing.T) {
	api := &fakeAPI{raw: singleBar}
	cfg, err := Load(context.Background(), api)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if len(cfg.Modules()) != 5 {
		t.Errorf("Modules = %d, want 5", len(cfg.Modules()))
	}

	if err := UpdateModule(context.Background(), api, "clock", json.RawMessage(`{bad`)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("UpdateModule(bad JSON) error = %v", err)
	}
	if len(api.updated) != 0 {
		t.Error("invalid value was sent")
	}
	if err := UpdateModule(context.Background(), api, "clock", json.RawMessage(`{"format":"x"}`)); err != nil {
		t.Fatalf("UpdateModule error = %v", err)
	}
	if string(api.updated["clock"]) != `{"format":"x"}` {
		t.Errorf("updated = %s", api.updated["clock"])
	}
}
