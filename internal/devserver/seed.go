package devserver

import (
	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/migration"
	"github.com/revati108/arch-board/internal/scene"
	"github.com/revati108/arch-board/internal/schema"
)

// Seed is the initial content of a State.
type Seed struct {
	ConfigPath string
	Lines      []migration.Line
	Schema     schema.Schema
	Windows    []backend.Window
	// VersionOutput is what `hyprctl version` would print.
	VersionOutput string
	Lockscreen    scene.LockscreenConfig
	Waybar        []byte
}

func ptr(f float64) *float64 { return &f }

var defaultSchema = schema.Schema{
	{
		ID:    "general",
		Title: "General",
		Icon:  "settings",
		Sections: []schema.Section{
			{
				Name:  "general",
				Title: "General",
				Options: []schema.Option{
					{Name: "gaps_in", Type: schema.TypeInt, Default: 5.0, Min: ptr(0), Max: ptr(50), Step: ptr(1), Description: "Gaps between windows"},
					{Name: "gaps_out", Type: schema.TypeInt, Default: 20.0, Min: ptr(0), Max: ptr(100), Step: ptr(1), Description: "Gaps between windows and monitor edges"},
					{Name: "border_size", Type: schema.TypeInt, Default: 2.0, Min: ptr(0), Max: ptr(10), Step: ptr(1), Description: "Size of the border around windows"},
					{Name: "col.active_border", Type: schema.TypeGradient, Default: "rgba(33ccffee) rgba(00ff99ee) 45deg", Description: "Border color for the active window"},
					{Name: "col.inactive_border", Type: schema.TypeColor, Default: "rgba(595959aa)", Description: "Border color for inactive windows"},
					{Name: "layout", Type: schema.TypeEnum, Default: "dwindle", Choices: []string{"dwindle", "master"}, Description: "Which layout to use"},
					{Name: "allow_tearing", Type: schema.TypeBool, Default: false, Description: "Master switch for allowing tearing"},
				},
			},
		},
	},
	{
		ID:    "decoration",
		Title: "Decoration",
		Icon:  "palette",
		Sections: []schema.Section{
			{
				Name:  "decoration",
				Title: "Decoration",
				Options: []schema.Option{
					{Name: "rounding", Type: schema.TypeInt, Default: 10.0, Min: ptr(0), Max: ptr(30), Step: ptr(1), Description: "Rounded corners radius"},
					{Name: "active_opacity", Type: schema.TypeFloat, Default: 1.0, Min: ptr(0), Max: ptr(1), Step: ptr(0.05), Description: "Opacity of active windows"},
					{Name: "dim_inactive", Type: schema.TypeBool, Default: false, Description: "Dim inactive windows"},
				},
			},
			{
				Name:  "decoration:blur",
				Title: "Blur",
				Options: []schema.Option{
					{Name: "enabled", Type: schema.TypeBool, Default: true, Description: "Enable kawase window background blur"},
					{Name: "size", Type: schema.TypeInt, Default: 8.0, Min: ptr(1), Max: ptr(20), Step: ptr(1), Description: "Blur size (distance)"},
				},
			},
		},
	},
	{
		ID:    "input",
		Title: "Input",
		Icon:  "keyboard",
		Sections: []schema.Section{
			{
				Name:  "input",
				Title: "Input",
				Options: []schema.Option{
					{Name: "kb_layout", Type: schema.TypeString, Default: "us", Description: "Keyboard layout"},
					{Name: "sensitivity", Type: schema.TypeFloat, Default: 0.0, Min: ptr(-1), Max: ptr(1), Step: ptr(0.1), Description: "Mouse sensitivity"},
					{Name: "follow_mouse", Type: schema.TypeEnum, Default: "1", Choices: []string{"0", "1", "2", "3"}, Description: "Focus follows mouse mode"},
				},
			},
			{
				Name:  "cursor",
				Title: "Cursor",
				Options: []schema.Option{
					{Name: "hotspot_padding", Type: schema.TypeVec2, Default: "1 1", Description: "Padding around the cursor hotspot"},
				},
			},
		},
	},
	{
		ID:    "misc",
		Title: "Misc",
		Icon:  "more",
		Sections: []schema.Section{
			{
				Name:  "misc",
				Title: "Misc",
				Options: []schema.Option{
					{Name: "disable_hyprland_logo", Type: schema.TypeBool, Default: false, Description: "Disable the random wallpaper logo"},
					{Name: "on_focus_under_fullscreen", Type: schema.TypeInt, Default: 2.0, Min: ptr(0), Max: ptr(2), Step: ptr(1), Description: "What happens when a window opens under a fullscreen one"},
				},
			},
		},
	},
}

var defaultLines = []migration.Line{
	{Key: "monitor", Value: "DP-1,2560x1440@144,0x0,1"},
	{Key: "monitor", Value: "HDMI-A-1,1920x1080@60,2560x0,1,transform,1"},
	{Key: "env", Value: "XCURSOR_SIZE,24"},
	{Key: "env", Value: "QT_QPA_PLATFORMTHEME,qt6ct"},
	{Key: "exec-once", Value: "waybar & hyprpaper"},
	{Key: "exec-once", Value: "hypridle"},
	{Key: "general:gaps_in", Value: "5"},
	{Key: "general:gaps_out", Value: "10"},
	{Key: "general:col.active_border", Value: "rgba(33ccffee) rgba(00ff99ee) 45deg"},
	{Key: "general:col.inactive_border", Value: "rgba(595959aa)"},
	{Key: "decoration:rounding", Value: "8"},
	{Key: "decoration:blur:enabled", Value: "true"},
	{Key: "input:kb_layout", Value: "us"},
	{Key: "bind", Value: "SUPER,Q,exec,kitty"},
	{Key: "bind", Value: "SUPER,C,killactive"},
	{Key: "bind", Value: "SUPER,1,workspace,1"},
	{Key: "bindm", Value: "SUPER,mouse:272,movewindow"},
	{Key: "windowrule", Value: "float on, match:class ^(pavucontrol)$"},
	{Key: "windowrulev2", Value: "opacity 0.9, class:^(kitty)$"},
	{Key: "layerrule", Value: "blur, waybar"},
	{Key: "gesture", Value: "3, horizontal, workspace"},
}

var defaultWindows = []backend.Window{
	{Title: "~/src/arch-board", Class: "kitty", InitialClass: "kitty", InitialTitle: "kitty", Address: "0x5581a1c0", Workspace: "1"},
	{Title: "Mozilla Firefox", Class: "firefox", InitialClass: "firefox", InitialTitle: "Mozilla Firefox", Address: "0x5581b2d0", Workspace: "2"},
	{Title: "Volume Control", Class: "org.pulseaudio.pavucontrol", InitialClass: "org.pulseaudio.pavucontrol", InitialTitle: "Volume Control", Address: "0x5581c3e0", Workspace: "2"},
}

const defaultVersionOutput = `Hyprland 0.53.1 built from branch main at commit 1f2e3d4c (version: bump to v0.53.1).
Date: Tue Jan 13 18:22:10 2026
Tag: v0.53.1, commits: 6412`

const defaultWaybar = `{
  // main bar
  "layer": "top",
  "position": "top",
  "height": 30,
  "modules-left": ["hyprland/workspaces", "custom/media"],
  "modules-center": ["clock"],
  "modules-right": ["pulseaudio", "battery"],
  "hyprland/workspaces": {"format": "{icon}", "on-click": "activate"},
  "clock": {"format": "{:%H:%M}", "tooltip-format": "{:%Y-%m-%d}"},
  "pulseaudio": {"format": "{volume}% {icon}", "on-click": "pavucontrol"},
  "battery": {"format": "{capacity}% {icon}", "states": {"warning": 30, "critical": 15}}
}`

func defaultLockscreen() scene.LockscreenConfig {
	label := scene.Defaults(scene.TypeLabel)
	label["text"] = "$TIME"
	label["position"] = "0, 200"
	return scene.LockscreenConfig{
		General:     scene.Data{"hide_cursor": true, "grace": 0.0},
		Auth:        scene.Data{"pam:enabled": true},
		Animations:  scene.Data{"enabled": true},
		Backgrounds: []scene.Data{scene.Defaults(scene.TypeBackground)},
		InputFields: []scene.Data{scene.Defaults(scene.TypeInputField)},
		Labels:      []scene.Data{label},
		Images:      []scene.Data{},
		Shapes:      []scene.Data{},
	}
}

// DefaultSeed is a small but complete desktop config.
func DefaultSeed() Seed {
	return Seed{
		ConfigPath:    "/home/archboard/.config/hypr/hyprland.conf",
		Lines:         append([]migration.Line(nil), defaultLines...),
		Schema:        defaultSchema,
		Windows:       append([]backend.Window(nil), defaultWindows...),
		VersionOutput: defaultVersionOutput,
		Lockscreen:    defaultLockscreen(),
		Waybar:        []byte(defaultWaybar),
	}
}
