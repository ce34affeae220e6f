package scene

import "maps"

var shadowDefaults = Data{
	"shadow_passes": 0.0,
	"shadow_size":   3.0,
	"shadow_color":  "rgb(0,0,0)",
	"shadow_boost":  1.2,
}

var typeDefaults = map[WidgetType]Data{
	TypeLabel: {
		"monitor":     "",
		"text":        "Sample Text",
		"text_align":  "center",
		"color":       "rgba(254, 254, 254, 1.0)",
		"font_size":   16.0,
		"font_family": "Sans",
		"rotate":      0.0,
		"zindex":      0.0,
	},
	TypeInputField: {
		"monitor":           "",
		"size":              "400, 90",
		"outline_thickness": 4.0,
		"dots_size":         0.25,
		"dots_spacing":      0.15,
		"dots_center":       true,
		"dots_rounding":     -1.0,
		"outer_color":       "rgba(17, 17, 17, 1.0)",
		"inner_color":       "rgba(200, 200, 200, 1.0)",
		"font_color":        "rgba(10, 10, 10, 1.0)",
		"font_family":       "Noto Sans",
		"fade_on_empty":     true,
		"fade_timeout":      2000.0,
		"placeholder_text":  "<i>Input Password...</i>",
		"hide_input":        false,
		"rounding":          -1.0,
		"check_color":       "rgba(204, 136, 34, 1.0)",
		"fail_color":        "rgba(204, 34, 34, 1.0)",
		"fail_text":         "<i>$FAIL <b>($ATTEMPTS)</b></i>",
		"zindex":            0.0,
	},
	TypeShape: {
		"monitor":      "",
		"size":         "100, 100",
		"color":        "rgba(17, 17, 17, 1.0)",
		"rounding":     -1.0,
		"rotate":       0.0,
		"border_size":  0.0,
		"border_color": "rgba(0, 207, 230, 1.0)",
		"xray":         false,
		"zindex":       0.0,
	},
	TypeImage: {
		"monitor":      "",
		"path":         "",
		"size":         150.0,
		"rounding":     -1.0,
		"border_size":  4.0,
		"border_color": "rgba(221, 221, 221, 1.0)",
		"rotate":       0.0,
		"reload_time":  -1.0,
		"reload_cmd":   "",
		"zindex":       0.0,
	},
	TypeBackground: {
		"monitor":           "",
		"path":              "",
		"color":             "rgba(17, 17, 17, 1.0)",
		"blur_passes":       0.0,
		"blur_size":         7.0,
		"noise":             0.0117,
		"contrast":          0.8916,
		"brightness":        0.8172,
		"vibrancy":          0.1696,
		"vibrancy_darkness": 0.05,
		"reload_time":       -1.0,
		"reload_cmd":        "",
		"crossfade_time":    -1.0,
		"zindex":            -1.0,
	},
}

// Defaults returns the field values of a freshly added widget of type t,
// placed at the canvas center.
func Defaults(t WidgetType) Data {
	d := maps.Clone(typeDefaults[t])
	if d == nil {
		d = Data{}
	}
	if t != TypeBackground {
		maps.Copy(d, shadowDefaults)
	}
	d["position"] = "0, 0"
	d["halign"] = "center"
	d["valign"] = "center"
	return d
}

// DefaultValue is shown for a field the widget does not set.
func DefaultValue(t WidgetType, key string) any {
	switch key {
	case "zindex":
		return DefaultZ(t)
	case "halign", "valign":
		return "center"
	case "position":
		return "0, 0"
	case "rounding":
		return -1.0
	case "rotate", "border_size", "blur_passes":
		return 0.0
	case "blur_size":
		return 7.0
	case "size":
		if t == TypeImage {
			return 150.0
		}
		return "100, 100"
	}
	if v, ok := shadowDefaults[key]; ok {
		return v
	}
	return ""
}

// DefaultZ is the stacking value used when a widget sets no zindex.
func DefaultZ(t WidgetType) float64 {
	if t == TypeBackground {
		return -1
	}
	return 0
}
