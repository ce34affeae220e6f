package devserver

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/entry"
	"github.com/revati108/arch-board/internal/migration"
	"github.com/revati108/arch-board/internal/schema"
)

// hyprConf is a Hyprland config held as "key = value" lines. Options are
// lines whose key is a "section:option" path; keywords (bind, exec, ...)
// are everything else.
type hyprConf struct {
	lines []migration.Line
}

func text(l migration.Line) string { return l.Key + " = " + l.Value }

func splitTrim(s, sep string, n int) []string {
	parts := strings.SplitN(s, sep, n)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func part(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// insertAfter appends l after the last line matching after, or at def
// when none does.
func (c *hyprConf) insertAfter(after func(migration.Line) bool, def int, l migration.Line) {
	idx := def
	for i, x := range c.lines {
		if after(x) {
			idx = i + 1
		}
	}
	c.lines = slices.Insert(c.lines, idx, l)
}

func (c *hyprConf) replaceFirst(match func(migration.Line) bool, l migration.Line) bool {
	for i, x := range c.lines {
		if match(x) {
			c.lines[i] = l
			return true
		}
	}
	return false
}

func (c *hyprConf) removeAll(match func(migration.Line) bool) bool {
	n := len(c.lines)
	c.lines = slices.DeleteFunc(c.lines, match)
	return len(c.lines) != n
}

func containsRaw(raw string) func(migration.Line) bool {
	return func(l migration.Line) bool { return raw != "" && strings.Contains(text(l), raw) }
}

func keyPrefix(prefix string) func(migration.Line) bool {
	return func(l migration.Line) bool { return strings.HasPrefix(l.Key, prefix) }
}

// --- options ---

func (c *hyprConf) option(path string) (string, bool) {
	key := strings.TrimSuffix(path, " ")
	for _, l := range c.lines {
		if l.Key == key {
			return l.Value, true
		}
	}
	return "", false
}

// values resolves every schema option, falling back to its default.
func (c *hyprConf) values(s schema.Schema) map[string]any {
	out := map[string]any{}
	for _, tab := range s {
		for _, sec := range tab.Sections {
			for _, o := range sec.Options {
				path := schema.Path(sec.Name, o.Name)
				if raw, ok := c.option(path); ok {
					out[path] = o.Coerce(raw)
				} else {
					out[path] = o.Default
				}
			}
		}
	}
	return out
}

func hyprValue(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func (c *hyprConf) setOption(path string, v any) bool {
	section, name, ok := schema.SplitPath(path)
	if !ok {
		return false
	}
	l := migration.Line{Key: section + ":" + name, Value: hyprValue(v)}
	if !c.replaceFirst(func(x migration.Line) bool { return x.Key == l.Key }, l) {
		c.lines = append(c.lines, l)
	}
	return true
}

// --- keyword listings ---

func (c *hyprConf) binds() []entry.Bind {
	var out []entry.Bind
	for _, l := range c.lines {
		if !strings.HasPrefix(l.Key, "bind") {
			continue
		}
		p := splitTrim(l.Value, ",", 4)
		out = append(out, entry.Bind{
			Type:       l.Key,
			Raw:        l.Value,
			Mods:       part(p, 0),
			Key:        part(p, 1),
			Dispatcher: part(p, 2),
			Params:     part(p, 3),
		})
	}
	return out
}

func (c *hyprConf) windowRules() []entry.WindowRule {
	var out []entry.WindowRule
	for _, l := range c.lines {
		if l.Key != "windowrule" && l.Key != "windowrulev2" {
			continue
		}
		p := splitTrim(l.Value, ",", 2)
		out = append(out, entry.WindowRule{Type: l.Key, Raw: l.Value, Effect: part(p, 0), Match: part(p, 1)})
	}
	return out
}

func (c *hyprConf) layerRules() []entry.LayerRule {
	var out []entry.LayerRule
	for _, l := range c.lines {
		if l.Key != "layerrule" {
			continue
		}
		p := splitTrim(l.Value, ",", 2)
		ns := part(p, 1)
		if i := strings.Index(strings.ToLower(ns), "match:namespace"); i >= 0 {
			rest := strings.TrimSpace(ns[i+len("match:namespace"):])
			ns = strings.TrimSpace(strings.Split(rest, ",")[0])
		}
		out = append(out, entry.LayerRule{Raw: l.Value, Effect: part(p, 0), Namespace: ns})
	}
	return out
}

func (c *hyprConf) execs() []entry.Exec {
	var out []entry.Exec
	for _, l := range c.lines {
		if l.Key == "exec" || l.Key == "exec-once" {
			out = append(out, entry.Exec{Type: l.Key, Command: l.Value})
		}
	}
	return out
}

func (c *hyprConf) envs() []entry.Env {
	var out []entry.Env
	for i, l := range c.lines {
		if l.Key != "env" {
			continue
		}
		p := splitTrim(l.Value, ",", 2)
		out = append(out, entry.Env{Index: i, Name: part(p, 0), Value: part(p, 1), Raw: l.Value})
	}
	return out
}

func (c *hyprConf) gestures() []entry.Gesture {
	var out []entry.Gesture
	for _, l := range c.lines {
		if l.Key != "gesture" {
			continue
		}
		p := splitTrim(l.Value, ",", -1)
		if len(p) < 3 {
			continue
		}
		fingers, _ := strconv.Atoi(p[0])
		g := entry.Gesture{Fingers: entry.FingerCount(fingers), Direction: p[1], Raw: l.Value}
		idx := 2
	opts:
		for ; idx < len(p); idx++ {
			switch {
			case strings.HasPrefix(p[idx], "mod:"):
				g.Mod = strings.TrimSpace(strings.TrimPrefix(p[idx], "mod:"))
			case strings.HasPrefix(p[idx], "scale:"):
				g.Scale = strings.TrimSpace(strings.TrimPrefix(p[idx], "scale:"))
			default:
				break opts
			}
		}
		if idx >= len(p) {
			continue
		}
		g.Action = p[idx]
		rest := p[idx+1:]
		if strings.EqualFold(g.Action, "dispatcher") && len(rest) > 0 {
			g.Action = "dispatcher"
			g.Dispatcher = rest[0]
			rest = rest[1:]
		}
		g.Params = strings.Join(rest, ",")
		out = append(out, g)
	}
	return out
}

func (c *hyprConf) monitors() []backend.Monitor {
	var out []backend.Monitor
	for _, l := range c.lines {
		if l.Key != "monitor" {
			continue
		}
		p := splitTrim(l.Value, ",", -1)
		switch {
		case len(p) >= 4:
			out = append(out, backend.Monitor{
				Raw:        l.Value,
				Name:       p[0],
				Resolution: p[1],
				Position:   p[2],
				Scale:      p[3],
				Extras:     p[4:],
			})
		case len(p) == 1 && p[0] == "disable":
			out = append(out, backend.Monitor{Raw: l.Value, Name: p[0], Disabled: true})
		}
	}
	return out
}

// --- keyword mutations ---

// mutation is the union of every kind's POST body.
type mutation struct {
	Action        entry.Action `json:"action"`
	Type          string       `json:"type"`
	Mods          string       `json:"mods"`
	Key           string       `json:"key"`
	Dispatcher    string       `json:"dispatcher"`
	Params        string       `json:"params"`
	Effect        string       `json:"effect"`
	Match         string       `json:"match"`
	Namespace     string       `json:"namespace"`
	Command       string       `json:"command"`
	OldCommand    string       `json:"old_command"`
	Name          string       `json:"name"`
	Value         string       `json:"value"`
	OldName       string       `json:"old_name"`
	Fingers       int          `json:"fingers"`
	Direction     string       `json:"direction"`
	GestureAction string       `json:"gesture_action"`
	Mod           string       `json:"mod"`
	Scale         string       `json:"scale"`
	OldRaw        string       `json:"old_raw"`
}

// rawLineEdit applies an add/update/delete for kinds addressed by a
// substring of the full line.
func (c *hyprConf) rawLineEdit(m mutation, l migration.Line, after func(migration.Line) bool) bool {
	switch m.Action {
	case entry.ActionAdd:
		c.insertAfter(after, len(c.lines), l)
		return true
	case entry.ActionUpdate:
		return c.replaceFirst(containsRaw(m.OldRaw), l)
	case entry.ActionDelete:
		return c.removeAll(containsRaw(m.OldRaw))
	}
	return false
}

func (c *hyprConf) mutateBind(m mutation) bool {
	value := m.Mods + "," + m.Key + "," + m.Dispatcher
	if m.Params != "" {
		value += "," + m.Params
	}
	typ := m.Type
	if typ == "" {
		typ = "bind"
	}
	return c.rawLineEdit(m, migration.Line{Key: typ, Value: value}, keyPrefix("bind"))
}

func (c *hyprConf) mutateWindowRule(m mutation) bool {
	typ := m.Type
	if typ == "" {
		typ = "windowrule"
	}
	return c.rawLineEdit(m, migration.Line{Key: typ, Value: m.Effect + "," + m.Match}, keyPrefix("windowrule"))
}

// mutateLayerRule writes the syntax the file already uses.
func (c *hyprConf) mutateLayerRule(m mutation) bool {
	modern := slices.ContainsFunc(c.lines, func(l migration.Line) bool {
		return l.Key == "layerrule" && strings.Contains(l.Value, "match:")
	})
	value := m.Effect + ", " + m.Namespace
	if modern {
		effect := m.Effect
		if !strings.Contains(effect, " ") {
			effect += " on"
		}
		value = effect + ", match:namespace " + m.Namespace
	}
	return c.rawLineEdit(m, migration.Line{Key: "layerrule", Value: value}, keyPrefix("layerrule"))
}

func (c *hyprConf) mutateExec(m mutation) bool {
	l := migration.Line{Key: m.Type, Value: m.Command}
	exact := func(cmd string) func(migration.Line) bool {
		want := strings.TrimSpace(m.Type + " = " + cmd)
		return func(x migration.Line) bool { return strings.TrimSpace(text(x)) == want }
	}
	switch m.Action {
	case entry.ActionAdd:
		c.insertAfter(keyPrefix("exec"), len(c.lines), l)
		return true
	case entry.ActionUpdate:
		return c.replaceFirst(exact(m.OldCommand), l)
	case entry.ActionDelete:
		return c.removeAll(exact(m.Command))
	}
	return false
}

func (c *hyprConf) mutateEnv(m mutation) bool {
	l := migration.Line{Key: "env", Value: m.Name + "," + m.Value}
	named := func(name string) func(migration.Line) bool {
		return func(x migration.Line) bool {
			return name != "" && strings.HasPrefix(text(x), "env = "+name+",")
		}
	}
	switch m.Action {
	case entry.ActionAdd:
		c.insertAfter(func(x migration.Line) bool { return x.Key == "env" }, 0, l)
		return true
	case entry.ActionUpdate:
		return c.replaceFirst(named(m.OldName), l)
	case entry.ActionDelete:
		return c.removeAll(named(m.Name))
	}
	return false
}

func (c *hyprConf) mutateGesture(m mutation) bool {
	parts := []string{strconv.Itoa(m.Fingers), m.Direction}
	if m.Mod != "" {
		parts = append(parts, "mod: "+m.Mod)
	}
	if m.Scale != "" {
		parts = append(parts, "scale: "+m.Scale)
	}
	if m.GestureAction == "dispatcher" {
		parts = append(parts, "dispatcher", m.Dispatcher)
	} else {
		parts = append(parts, m.GestureAction)
	}
	if m.Params != "" {
		parts = append(parts, m.Params)
	}
	l := migration.Line{Key: "gesture", Value: strings.Join(parts, ", ")}
	return c.rawLineEdit(m, l, keyPrefix("gesture"))
}

// mutate dispatches a POST hyprland/<kind> body. It reports whether any
// line changed.
func (c *hyprConf) mutate(kind string, m mutation) (bool, error) {
	switch kind {
	case entry.KindBinds:
		return c.mutateBind(m), nil
	case entry.KindWindowRules:
		return c.mutateWindowRule(m), nil
	case entry.KindLayerRules:
		return c.mutateLayerRule(m), nil
	case entry.KindExec:
		return c.mutateExec(m), nil
	case entry.KindEnv:
		return c.mutateEnv(m), nil
	case entry.KindGestures:
		return c.mutateGesture(m), nil
	}
	return false, ErrUnknownKind
}

func (c *hyprConf) clone() hyprConf {
	return hyprConf{lines: slices.Clone(c.lines)}
}
