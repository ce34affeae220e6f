package entry

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/revati108/arch-board/internal/validation"
)

// Collection names.
const (
	KindBinds       = "binds"
	KindWindowRules = "windowrules"
	KindLayerRules  = "layerrules"
	KindExec        = "exec"
	KindEnv         = "env"
	KindGestures    = "gestures"
)

// validateLines rejects values that would break the single config line an
// entry is written to.
func validateLines(c *validation.Collector, fields map[string]string) {
	names := lo.Keys(fields)
	slices.Sort(names)
	for _, name := range names {
		c.Add(validation.ValidateSingleLine(name, fields[name]))
		c.Add(validation.ValidateNoNullBytes(name, fields[name]))
		c.Add(validation.ValidateUTF8(name, fields[name]))
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

// --- binds ---

type Bind struct {
	Type       string `json:"type"`
	Mods       string `json:"mods"`
	Key        string `json:"key"`
	Dispatcher string `json:"dispatcher"`
	Params     string `json:"params"`
	Raw        string `json:"raw"`
}

type bindPayload struct {
	Action     Action `json:"action"`
	Type       string `json:"type"`
	Mods       string `json:"mods"`
	Key        string `json:"key"`
	Dispatcher string `json:"dispatcher"`
	Params     string `json:"params"`
	OldRaw     string `json:"old_raw,omitempty"`
}

type BindKind struct{}

func (BindKind) Name() string { return KindBinds }

func (BindKind) Fields() []string {
	return []string{"type", "mods", "key", "dispatcher", "params"}
}

func (BindKind) Parse(f map[string]string) (Bind, error) {
	return Bind{
		Type:       orDefault(f["type"], "bind"),
		Mods:       strings.TrimSpace(f["mods"]),
		Key:        strings.TrimSpace(f["key"]),
		Dispatcher: strings.TrimSpace(f["dispatcher"]),
		Params:     strings.TrimSpace(f["params"]),
	}, nil
}

func (BindKind) Values(b Bind) []string {
	return []string{b.Type, b.Mods, b.Key, b.Dispatcher, b.Params}
}

func (BindKind) Validate(b Bind) error {
	c := &validation.Collector{}
	if !strings.HasPrefix(b.Type, "bind") {
		c.Add(validation.New("type", "must be a bind variant (bind, binde, bindm, ...)"))
	}
	c.Add(validation.ValidateRequired("key", b.Key))
	validateLines(c, map[string]string{"mods": b.Mods, "key": b.Key, "dispatcher": b.Dispatcher, "params": b.Params})
	return c.Err()
}

func (BindKind) Serialize(action Action, next, prev Bind) any {
	switch action {
	case ActionDelete:
		return bindPayload{Action: action, OldRaw: prev.Raw}
	default:
		return bindPayload{
			Action:     action,
			Type:       next.Type,
			Mods:       next.Mods,
			Key:        next.Key,
			Dispatcher: next.Dispatcher,
			Params:     next.Params,
			OldRaw:     prev.Raw,
		}
	}
}

func (BindKind) Identify(b Bind) EntryRef { return Ref(b.Raw) }

// --- window rules ---

type WindowRule struct {
	Type   string `json:"type"`
	Effect string `json:"effect"`
	Match  string `json:"match"`
	Raw    string `json:"raw"`
}

type windowRulePayload struct {
	Action Action `json:"action"`
	Type   string `json:"type"`
	Effect string `json:"effect"`
	Match  string `json:"match"`
	OldRaw string `json:"old_raw,omitempty"`
}

type WindowRuleKind struct{}

func (WindowRuleKind) Name() string { return KindWindowRules }

func (WindowRuleKind) Fields() []string { return []string{"type", "effect", "match"} }

func (WindowRuleKind) Parse(f map[string]string) (WindowRule, error) {
	return WindowRule{
		Type:   orDefault(f["type"], "windowrule"),
		Effect: strings.TrimSpace(f["effect"]),
		Match:  strings.TrimSpace(f["match"]),
	}, nil
}

func (WindowRuleKind) Values(r WindowRule) []string {
	return []string{r.Type, r.Effect, r.Match}
}

func (WindowRuleKind) Validate(r WindowRule) error {
	c := &validation.Collector{}
	c.Add(validation.ValidateEnum("type", r.Type, []string{"windowrule", "windowrulev2"}))
	c.Add(validation.ValidateRequired("effect", r.Effect))
	c.Add(validation.ValidateRequired("match", r.Match))
	validateLines(c, map[string]string{"effect": r.Effect, "match": r.Match})
	return c.Err()
}

func (WindowRuleKind) Serialize(action Action, next, prev WindowRule) any {
	if action == ActionDelete {
		return windowRulePayload{Action: action, OldRaw: prev.Raw}
	}
	return windowRulePayload{Action: action, Type: next.Type, Effect: next.Effect, Match: next.Match, OldRaw: prev.Raw}
}

func (WindowRuleKind) Identify(r WindowRule) EntryRef { return Ref(r.Raw) }

// --- layer rules ---

type LayerRule struct {
	Effect    string `json:"effect"`
	Namespace string `json:"namespace"`
	Raw       string `json:"raw"`
}

type layerRulePayload struct {
	Action    Action `json:"action"`
	Effect    string `json:"effect"`
	Namespace string `json:"namespace"`
	OldRaw    string `json:"old_raw,omitempty"`
}

type LayerRuleKind struct{}

func (LayerRuleKind) Name() string { return KindLayerRules }

func (LayerRuleKind) Fields() []string { return []string{"effect", "namespace"} }

func (LayerRuleKind) Parse(f map[string]string) (LayerRule, error) {
	return LayerRule{Effect: strings.TrimSpace(f["effect"]), Namespace: strings.TrimSpace(f["namespace"])}, nil
}

func (LayerRuleKind) Values(r LayerRule) []string { return []string{r.Effect, r.Namespace} }

func (LayerRuleKind) Validate(r LayerRule) error {
	c := &validation.Collector{}
	c.Add(validation.ValidateRequired("effect", r.Effect))
	c.Add(validation.ValidateRequired("namespace", r.Namespace))
	validateLines(c, map[string]string{"effect": r.Effect, "namespace": r.Namespace})
	return c.Err()
}

func (LayerRuleKind) Serialize(action Action, next, prev LayerRule) any {
	if action == ActionDelete {
		return layerRulePayload{Action: action, OldRaw: prev.Raw}
	}
	return layerRulePayload{Action: action, Effect: next.Effect, Namespace: next.Namespace, OldRaw: prev.Raw}
}

func (LayerRuleKind) Identify(r LayerRule) EntryRef { return Ref(r.Raw) }

// --- exec ---

// Exec is an exec or exec-once line. The backend sends no raw field; the
// line itself ("exec-once = waybar") is the identity.
type Exec struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

func (e Exec) Raw() string { return e.Type + " = " + e.Command }

type execPayload struct {
	Action     Action `json:"action"`
	Type       string `json:"type"`
	Command    string `json:"command"`
	OldCommand string `json:"old_command,omitempty"`
}

var execTypes = []string{"exec", "exec-once"}

type ExecKind struct{}

func (ExecKind) Name() string { return KindExec }

func (ExecKind) Fields() []string { return []string{"type", "command"} }

func (ExecKind) Parse(f map[string]string) (Exec, error) {
	return Exec{Type: orDefault(f["type"], "exec-once"), Command: strings.TrimSpace(f["command"])}, nil
}

func (ExecKind) Values(e Exec) []string { return []string{e.Type, e.Command} }

func (ExecKind) Validate(e Exec) error {
	c := &validation.Collector{}
	c.Add(validation.ValidateEnum("type", e.Type, execTypes))
	c.Add(validation.ValidateRequired("command", e.Command))
	validateLines(c, map[string]string{"command": e.Command})
	return c.Err()
}

func (ExecKind) Serialize(action Action, next, prev Exec) any {
	switch action {
	case ActionDelete:
		return execPayload{Action: action, Type: prev.Type, Command: prev.Command}
	case ActionUpdate:
		return execPayload{Action: action, Type: next.Type, Command: next.Command, OldCommand: prev.Command}
	default:
		return execPayload{Action: action, Type: next.Type, Command: next.Command}
	}
}

func (ExecKind) Identify(e Exec) EntryRef { return Ref(e.Raw()) }

// --- env ---

type Env struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Raw   string `json:"raw"`
}

// envPayload always carries value; the backend writes "env = NAME,VALUE"
// even for an empty value.
type envPayload struct {
	Action  Action `json:"action"`
	Name    string `json:"name"`
	Value   string `json:"value"`
	OldName string `json:"old_name,omitempty"`
}

type EnvKind struct{}

func (EnvKind) Name() string { return KindEnv }

func (EnvKind) Fields() []string { return []string{"name", "value"} }

func (EnvKind) Parse(f map[string]string) (Env, error) {
	return Env{Name: strings.TrimSpace(f["name"]), Value: strings.TrimSpace(f["value"])}, nil
}

func (EnvKind) Values(e Env) []string { return []string{e.Name, e.Value} }

func (EnvKind) Validate(e Env) error {
	c := &validation.Collector{}
	c.Add(validation.ValidateRequired("name", e.Name))
	if strings.ContainsAny(e.Name, ", \t") {
		c.Add(validation.New("name", "must not contain commas or spaces"))
	}
	validateLines(c, map[string]string{"name": e.Name, "value": e.Value})
	return c.Err()
}

func (EnvKind) Serialize(action Action, next, prev Env) any {
	switch action {
	case ActionDelete:
		return envPayload{Action: action, Name: prev.Name}
	case ActionUpdate:
		return envPayload{Action: action, Name: next.Name, Value: next.Value, OldName: prev.Name}
	default:
		return envPayload{Action: action, Name: next.Name, Value: next.Value}
	}
}

func (EnvKind) Identify(e Env) EntryRef { return Ref(e.Raw) }

// --- gestures ---

// FingerCount decodes from a JSON number or a numeric string; the backend
// lists fingers as text but expects an integer on write.
type FingerCount int

func (f *FingerCount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*f = FingerCount(n)
	return nil
}

type Gesture struct {
	Fingers    FingerCount `json:"fingers"`
	Direction  string      `json:"direction"`
	Action     string      `json:"action"`
	Dispatcher string      `json:"dispatcher"`
	Params     string      `json:"params"`
	Mod        string      `json:"mod"`
	Scale      string      `json:"scale"`
	Raw        string      `json:"raw"`
}

type gesturePayload struct {
	Action        Action `json:"action"`
	Fingers       int    `json:"fingers"`
	Direction     string `json:"direction"`
	GestureAction string `json:"gesture_action"`
	Dispatcher    string `json:"dispatcher"`
	Params        string `json:"params"`
	Mod           string `json:"mod"`
	Scale         string `json:"scale"`
	OldRaw        string `json:"old_raw,omitempty"`
}

// GestureActions are the actions Hyprland accepts after the direction.
var GestureActions = []string{"workspace", "move", "resize", "special", "close", "fullscreen", "float", "dispatcher", "unset"}

type GestureKind struct{}

func (GestureKind) Name() string { return KindGestures }

func (GestureKind) Fields() []string {
	return []string{"fingers", "direction", "action", "dispatcher", "params", "mod", "scale"}
}

func (GestureKind) Parse(f map[string]string) (Gesture, error) {
	var fingers int
	if s := strings.TrimSpace(f["fingers"]); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Gesture{}, validation.New("fingers", "must be a whole number")
		}
		fingers = n
	}
	return Gesture{
		Fingers:    FingerCount(fingers),
		Direction:  strings.TrimSpace(f["direction"]),
		Action:     strings.TrimSpace(f["action"]),
		Dispatcher: strings.TrimSpace(f["dispatcher"]),
		Params:     strings.TrimSpace(f["params"]),
		Mod:        strings.TrimSpace(f["mod"]),
		Scale:      strings.TrimSpace(f["scale"]),
	}, nil
}

func (GestureKind) Values(g Gesture) []string {
	return []string{strconv.Itoa(int(g.Fingers)), g.Direction, g.Action, g.Dispatcher, g.Params, g.Mod, g.Scale}
}

func (GestureKind) Validate(g Gesture) error {
	c := &validation.Collector{}
	c.Add(validation.ValidateMin("fingers", int(g.Fingers), 1))
	c.Add(validation.ValidateRequired("direction", g.Direction))
	c.Add(validation.ValidateEnum("action", g.Action, GestureActions))
	if g.Action == "dispatcher" {
		c.Add(validation.ValidateRequired("dispatcher", g.Dispatcher))
	}
	if g.Scale != "" {
		if _, err := strconv.ParseFloat(g.Scale, 64); err != nil {
			c.Add(validation.New("scale", "must be a number"))
		}
	}
	validateLines(c, map[string]string{"direction": g.Direction, "params": g.Params, "mod": g.Mod})
	return c.Err()
}

func (GestureKind) Serialize(action Action, next, prev Gesture) any {
	if action == ActionDelete {
		return gesturePayload{Action: action, OldRaw: prev.Raw}
	}
	return gesturePayload{
		Action:        action,
		Fingers:       int(next.Fingers),
		Direction:     next.Direction,
		GestureAction: next.Action,
		Dispatcher:    next.Dispatcher,
		Params:        next.Params,
		Mod:           next.Mod,
		Scale:         next.Scale,
		OldRaw:        prev.Raw,
	}
}

func (GestureKind) Identify(g Gesture) EntryRef { return Ref(g.Raw) }
