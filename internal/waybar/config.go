// Package waybar reads a waybar config and locates and replaces the
// configuration of individual modules.
package waybar

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"
)

// Position is the bar section a module is placed in.
type Position string

const (
	Left   Position = "left"
	Center Position = "center"
	Right  Position = "right"
	// Unplaced modules are defined but not listed in any section.
	Unplaced Position = ""
)

var sections = []Position{Left, Center, Right}

// barKeys are top-level keys that configure the bar itself.
var barKeys = []string{
	"layer", "output", "position", "height", "width", "spacing", "margin",
	"margin-top", "margin-bottom", "margin-left", "margin-right",
	"name", "mode", "exclusive", "passthrough", "ipc", "include", "id",
	"gtk-layer-shell", "fixed-center", "start_hidden", "reload_style_on_change",
}

// Module is one module as seen by the editor.
type Module struct {
	Name     string          `json:"name"`
	Bar      int             `json:"bar"`
	Position Position        `json:"position"`
	Defined  bool            `json:"defined"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// Config is a parsed waybar config: one bar object or an array of them.
type Config struct {
	raw   []byte
	array bool
}

// Parse validates raw, which may be JSONC: // and /* */ comments and
// trailing commas are accepted.
func Parse(raw []byte) (*Config, error) {
	clean := jsonc.ToJSON(raw)
	if !gjson.ValidBytes(clean) {
		return nil, fmt.Errorf("%w: not JSON", ErrInvalidConfig)
	}
	root := gjson.ParseBytes(clean)
	switch {
	case root.IsObject():
		return &Config{raw: clean}, nil
	case root.IsArray():
		ok := true
		root.ForEach(func(_, bar gjson.Result) bool {
			ok = bar.IsObject()
			return ok
		})
		if !ok {
			return nil, fmt.Errorf("%w: array items must be bar objects", ErrInvalidConfig)
		}
		return &Config{raw: clean, array: true}, nil
	}
	return nil, fmt.Errorf("%w: expected an object or an array", ErrInvalidConfig)
}

// Raw returns the document as plain JSON.
func (c *Config) Raw() []byte { return c.raw }

// MarshalJSON writes the document as is.
func (c *Config) MarshalJSON() ([]byte, error) { return c.raw, nil }

func (c *Config) bars() []gjson.Result {
	root := gjson.ParseBytes(c.raw)
	if c.array {
		return root.Array()
	}
	return []gjson.Result{root}
}

// Bars is the number of bars configured.
func (c *Config) Bars() int { return len(c.bars()) }

// Modules lists every module of every bar: placed modules by section
// (left, center, right, in list order), then defined modules not placed
// anywhere, in document order.
func (c *Config) Modules() []Module {
	var out []Module
	for i, bar := range c.bars() {
		seen := map[string]bool{}
		for _, pos := range sections {
			for _, name := range bar.Get("modules-" + string(pos)).Array() {
				n := name.String()
				if seen[n] {
					continue
				}
				seen[n] = true
				out = append(out, module(bar, i, n, pos))
			}
		}
		bar.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if !seen[k] && isModuleKey(k, value) {
				seen[k] = true
				out = append(out, module(bar, i, k, Unplaced))
			}
			return true
		})
	}
	return out
}

func module(bar gjson.Result, i int, name string, pos Position) Module {
	m := Module{Name: name, Bar: i, Position: pos}
	if v := bar.Get(escape(name)); v.Exists() {
		m.Defined = true
		m.Config = json.RawMessage(v.Raw)
	}
	return m
}

func isModuleKey(key string, value gjson.Result) bool {
	if strings.HasPrefix(key, "modules-") || lo.Contains(barKeys, key) {
		return false
	}
	return value.IsObject()
}

// Module returns the first module named name.
func (c *Config) Module(name string) (Module, error) {
	m, ok := lo.Find(c.Modules(), func(m Module) bool { return m.Name == name })
	if !ok {
		return Module{}, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}
	return m, nil
}

// UpdatePath is where Set writes name: the module key of a single bar, or
// of the first bar that defines it, or of the first bar.
func (c *Config) UpdatePath(name string) string {
	if !c.array {
		return escape(name)
	}
	idx := 0
	for i, bar := range c.bars() {
		if bar.Get(escape(name)).Exists() {
			idx = i
			break
		}
	}
	return strconv.Itoa(idx) + "." + escape(name)
}

// Set returns a copy of the config with the module's configuration
// replaced by value.
func (c *Config) Set(name string, value any) (*Config, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: module name is required", ErrInvalidConfig)
	}
	var (
		out []byte
		err error
	)
	if raw, ok := value.(json.RawMessage); ok {
		if !json.Valid(raw) {
			return nil, fmt.Errorf("%w: module value is not JSON", ErrInvalidConfig)
		}
		out, err = sjson.SetRawBytes(c.raw, c.UpdatePath(name), raw)
	} else {
		out, err = sjson.SetBytes(c.raw, c.UpdatePath(name), value)
	}
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", name, err)
	}
	return &Config{raw: out, array: c.array}, nil
}

// escape quotes the characters gjson and sjson treat as path syntax.
func escape(key string) string {
	var b strings.Builder
	for _, r := range key {
		if strings.ContainsRune(`\.*?|#@!=<>%`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
