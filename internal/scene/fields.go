package scene

import (
	"slices"
	"strconv"
	"strings"

	"github.com/revati108/arch-board/internal/schema"
	"github.com/revati108/arch-board/internal/validation"
)

// FieldKind selects the editor for a widget field.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldMultiline
	FieldColor
	FieldPath
	FieldSelect
	FieldBool
	FieldNumber
	FieldVec2
)

func (k FieldKind) String() string {
	return [...]string{"text", "multiline", "color", "path", "select", "bool", "number", "vec2"}[k]
}

// FieldSpec describes one editable field.
type FieldSpec struct {
	Key     string
	Kind    FieldKind
	Choices []string
}

var (
	halignChoices    = []string{"left", "center", "right", "none"}
	valignChoices    = []string{"top", "center", "bottom", "none"}
	textAlignChoices = []string{"left", "center", "right"}
)

// fieldKinds enumerates every known hyprlock field. Keys missing here are
// edited as plain text.
var fieldKinds = map[string]FieldSpec{
	"path":             {Kind: FieldPath},
	"text":             {Kind: FieldMultiline},
	"placeholder_text": {Kind: FieldMultiline},
	"fail_text":        {Kind: FieldMultiline},
	"halign":           {Kind: FieldSelect, Choices: halignChoices},
	"valign":           {Kind: FieldSelect, Choices: valignChoices},
	"text_align":       {Kind: FieldSelect, Choices: textAlignChoices},
	"position":         {Kind: FieldVec2},
	"size":             {Kind: FieldVec2},

	"color":                 {Kind: FieldColor},
	"border_color":          {Kind: FieldColor},
	"outer_color":           {Kind: FieldColor},
	"inner_color":           {Kind: FieldColor},
	"font_color":            {Kind: FieldColor},
	"check_color":           {Kind: FieldColor},
	"fail_color":            {Kind: FieldColor},
	"shadow_color":          {Kind: FieldColor},
	"hide_input_base_color": {Kind: FieldColor},
	"capslock_color":        {Kind: FieldColor},
	"numlock_color":         {Kind: FieldColor},
	"bothlock_color":        {Kind: FieldColor},

	"fade_on_empty":   {Kind: FieldBool},
	"hide_input":      {Kind: FieldBool},
	"dots_center":     {Kind: FieldBool},
	"xray":            {Kind: FieldBool},
	"invert_numlock":  {Kind: FieldBool},
	"swap_font_color": {Kind: FieldBool},

	"zindex":            {Kind: FieldNumber},
	"rotate":            {Kind: FieldNumber},
	"font_size":         {Kind: FieldNumber},
	"border_size":       {Kind: FieldNumber},
	"outline_thickness": {Kind: FieldNumber},
	"blur_passes":       {Kind: FieldNumber},
	"blur_size":         {Kind: FieldNumber},
	"shadow_passes":     {Kind: FieldNumber},
	"shadow_size":       {Kind: FieldNumber},
	"shadow_boost":      {Kind: FieldNumber},
	"rounding":          {Kind: FieldNumber},
	"dots_rounding":     {Kind: FieldNumber},
	"fade_timeout":      {Kind: FieldNumber},
	"contrast":          {Kind: FieldNumber},
	"brightness":        {Kind: FieldNumber},
	"vibrancy":          {Kind: FieldNumber},
	"vibrancy_darkness": {Kind: FieldNumber},
	"noise":             {Kind: FieldNumber},
	"reload_time":       {Kind: FieldNumber},
	"crossfade_time":    {Kind: FieldNumber},
	"dots_size":         {Kind: FieldNumber},
	"dots_spacing":      {Kind: FieldNumber},
}

// Field returns the spec for key on a widget of type t. An image's size is
// a single number; every other size is a vec2.
func Field(t WidgetType, key string) FieldSpec {
	spec, ok := fieldKinds[key]
	if !ok {
		spec = FieldSpec{Kind: FieldText}
	}
	if t == TypeImage && key == "size" {
		spec = FieldSpec{Kind: FieldNumber}
	}
	spec.Key = key
	return spec
}

// Coerce converts an edited value to the type stored for the field.
// Strings from text inputs are parsed for number and bool fields.
func (f FieldSpec) Coerce(v any) (any, error) {
	switch f.Kind {
	case FieldNumber:
		n, ok := number(v)
		if !ok {
			return nil, validation.New(f.Key, "must be a number")
		}
		return n, nil
	case FieldBool:
		if s, ok := v.(string); ok {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "true", "yes", "1", "on":
				return true, nil
			case "false", "no", "0", "off", "":
				return false, nil
			}
			return nil, validation.New(f.Key, "must be true or false")
		}
		return schema.Truthy(v), nil
	case FieldSelect:
		s := str(v)
		if !slices.Contains(f.Choices, s) {
			return nil, validation.ValidateEnum(f.Key, s, f.Choices)
		}
		return s, nil
	case FieldVec2:
		x, y, ok := parseVec2(str(v))
		if !ok {
			return nil, validation.New(f.Key, `must be "x, y"`)
		}
		return FormatVec2(x, y), nil
	default:
		return str(v), nil
	}
}

// Group is a titled set of fields in the properties panel.
type Group struct {
	Name   string
	Fields []string
}

var (
	positionGroup = Group{Name: "Position", Fields: []string{"position", "halign", "valign", "zindex"}}
	shadowGroup   = Group{Name: "Shadow", Fields: []string{"shadow_passes", "shadow_size", "shadow_color", "shadow_boost"}}
)

// Groups returns the properties panel layout for t.
func Groups(t WidgetType) []Group {
	switch t {
	case TypeBackground:
		return []Group{
			{Name: "Appearance", Fields: []string{"path", "color"}},
			{Name: "Blur", Fields: []string{"blur_passes", "blur_size", "noise", "contrast", "brightness", "vibrancy", "vibrancy_darkness"}},
			{Name: "Options", Fields: []string{"reload_time", "reload_cmd", "crossfade_time", "zindex"}},
		}
	case TypeImage:
		return []Group{
			{Name: "Source", Fields: []string{"path", "size"}},
			{Name: "Style", Fields: []string{"rounding", "border_size", "border_color", "rotate"}},
			positionGroup, shadowGroup,
		}
	case TypeShape:
		return []Group{
			{Name: "Appearance", Fields: []string{"size", "color", "rounding", "rotate"}},
			{Name: "Border", Fields: []string{"border_size", "border_color", "xray"}},
			positionGroup, shadowGroup,
		}
	case TypeInputField:
		return []Group{
			{Name: "Size & Shape", Fields: []string{"size", "outline_thickness", "rounding"}},
			{Name: "Colors", Fields: []string{"outer_color", "inner_color", "font_color", "check_color", "fail_color"}},
			{Name: "Dots", Fields: []string{"dots_size", "dots_spacing", "dots_center", "dots_rounding"}},
			{Name: "Text", Fields: []string{"font_family", "placeholder_text", "fail_text"}},
			{Name: "Behavior", Fields: []string{"fade_on_empty", "fade_timeout", "hide_input"}},
			positionGroup, shadowGroup,
		}
	case TypeLabel:
		return []Group{
			{Name: "Content", Fields: []string{"text", "text_align"}},
			{Name: "Style", Fields: []string{"color", "font_size", "font_family", "rotate"}},
			positionGroup, shadowGroup,
		}
	}
	return nil
}

// Property is one resolved row of the properties panel.
type Property struct {
	Group string
	Spec  FieldSpec
	Value any
}

// Properties resolves the panel for w, filling unset fields with defaults.
func Properties(w Widget) []Property {
	var out []Property
	for _, g := range Groups(w.Type) {
		for _, key := range g.Fields {
			v, ok := w.Data[key]
			if !ok || v == nil {
				v = DefaultValue(w.Type, key)
			}
			out = append(out, Property{Group: g.Name, Spec: Field(w.Type, key), Value: v})
		}
	}
	return out
}

// FormatValue renders a field value for display.
func FormatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return str(v)
	}
}
