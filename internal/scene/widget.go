// Package scene models the hyprlock layout as a flat list of typed widgets
// and converts it to and from the five categorized lists the backend stores.
package scene

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// WidgetType is the hyprlock block name of a widget.
type WidgetType string

const (
	TypeBackground WidgetType = "background"
	TypeInputField WidgetType = "input-field"
	TypeLabel      WidgetType = "label"
	TypeImage      WidgetType = "image"
	TypeShape      WidgetType = "shape"
)

// Types lists widget types in flatten order.
var Types = []WidgetType{TypeBackground, TypeInputField, TypeLabel, TypeImage, TypeShape}

// ParseType validates a widget type name.
func ParseType(s string) (WidgetType, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWidgetType, s)
}

// Data holds a widget's fields as decoded from JSON.
type Data = map[string]any

// Widget is one element on the lock screen. ID is local to this process
// and never sent to the backend.
type Widget struct {
	ID   string     `json:"id"`
	Type WidgetType `json:"type"`
	Data Data       `json:"data"`
}

// LockscreenConfig is the hyprlock/config document. General, Auth and
// Animations pass through untouched.
type LockscreenConfig struct {
	General     Data   `json:"general"`
	Auth        Data   `json:"auth"`
	Animations  Data   `json:"animations"`
	Backgrounds []Data `json:"backgrounds"`
	InputFields []Data `json:"input_fields"`
	Labels      []Data `json:"labels"`
	Images      []Data `json:"images"`
	Shapes      []Data `json:"shapes"`
}

func (c *LockscreenConfig) list(t WidgetType) *[]Data {
	switch t {
	case TypeBackground:
		return &c.Backgrounds
	case TypeInputField:
		return &c.InputFields
	case TypeLabel:
		return &c.Labels
	case TypeImage:
		return &c.Images
	case TypeShape:
		return &c.Shapes
	}
	return nil
}

// Flatten lists every widget of cfg, categories concatenated in Types order
// and order kept within a category. IDs are "w-0", "w-1", ...
func Flatten(cfg LockscreenConfig) []Widget {
	var (
		out []Widget
		n   int
	)
	for _, t := range Types {
		for _, item := range *cfg.list(t) {
			out = append(out, Widget{ID: "w-" + strconv.Itoa(n), Type: t, Data: orEmpty(maps.Clone(item))})
			n++
		}
	}
	return out
}

// Unflatten partitions widgets back into the five lists. Structural
// sections are copied from base. Every list is non-nil.
func Unflatten(widgets []Widget, base LockscreenConfig) LockscreenConfig {
	cfg := LockscreenConfig{
		General:    orEmpty(base.General),
		Auth:       orEmpty(base.Auth),
		Animations: orEmpty(base.Animations),
	}
	for _, t := range Types {
		*cfg.list(t) = []Data{}
	}
	for _, w := range widgets {
		if l := cfg.list(w.Type); l != nil {
			*l = append(*l, maps.Clone(w.Data))
		}
	}
	return cfg
}

func orEmpty(d Data) Data {
	if d == nil {
		return Data{}
	}
	return d
}

// number reads a numeric field. Strings are parsed; booleans are not numbers.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func str(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
