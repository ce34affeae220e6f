package schema

import (
	"sort"

	"github.com/samber/lo"
)

// Dispatcher describes a compositor dispatcher usable in binds and gestures.
type Dispatcher struct {
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Param    string `json:"param"`
	Category string `json:"category"`
}

var dispatcherCategoryOrder = []string{
	"Commands", "Window Actions", "Focus & Movement", "Workspaces",
	"Resize", "Groups", "System", "Layout",
}

var dispatchers = []Dispatcher{
	{"exec", "Execute shell command", "command (e.g., kitty, firefox)", "Commands"},
	{"execr", "Execute raw shell command", "command", "Commands"},
	{"pass", "Pass key to window", "window", "Commands"},
	{"sendshortcut", "Send keys to window", "mod, key[, window]", "Commands"},
	{"global", "Execute Global Shortcut", "name", "Commands"},

	{"killactive", "Close active window", "none", "Window Actions"},
	{"forcekillactive", "Force kill active window", "none", "Window Actions"},
	{"closewindow", "Close specified window", "window", "Window Actions"},
	{"togglefloating", "Toggle floating state", "empty/window", "Window Actions"},
	{"setfloating", "Set floating", "empty/window", "Window Actions"},
	{"settiled", "Set tiled", "empty/window", "Window Actions"},
	{"fullscreen", "Toggle fullscreen", "0=full, 1=maximize", "Window Actions"},
	{"pin", "Pin window to all workspaces", "empty/window", "Window Actions"},
	{"centerwindow", "Center floating window", "none/1", "Window Actions"},

	{"movefocus", "Move focus direction", "l/r/u/d", "Focus & Movement"},
	{"movewindow", "Move window direction/monitor", "l/r/u/d or mon:NAME", "Focus & Movement"},
	{"swapwindow", "Swap with window in direction", "l/r/u/d or window", "Focus & Movement"},
	{"focuswindow", "Focus specific window", "window (class:, title:, etc)", "Focus & Movement"},
	{"focusmonitor", "Focus a monitor", "monitor (l/r/+1/-1/name)", "Focus & Movement"},
	{"cyclenext", "Focus next/prev window", "none/prev/tiled/floating", "Focus & Movement"},
	{"swapnext", "Swap with next window", "none/prev", "Focus & Movement"},
	{"bringactivetotop", "Bring window to top", "none", "Focus & Movement"},
	{"alterzorder", "Change window stack order", "top/bottom[,window]", "Focus & Movement"},

	{"workspace", "Switch workspace", "ID/+1/-1/name:X/special", "Workspaces"},
	{"movetoworkspace", "Move window to workspace", "workspace[,window]", "Workspaces"},
	{"movetoworkspacesilent", "Move without switching", "workspace[,window]", "Workspaces"},
	{"togglespecialworkspace", "Toggle scratchpad", "none/name", "Workspaces"},
	{"focusworkspaceoncurrentmonitor", "Focus workspace on current", "workspace", "Workspaces"},
	{"movecurrentworkspacetomonitor", "Move workspace to monitor", "monitor", "Workspaces"},
	{"swapactiveworkspaces", "Swap workspaces between monitors", "monitor1 monitor2", "Workspaces"},

	{"resizeactive", "Resize active window", "X Y (e.g., 10 -10, 20%)", "Resize"},
	{"moveactive", "Move active window", "X Y", "Resize"},
	{"resizewindowpixel", "Resize specific window", "X Y,window", "Resize"},
	{"movewindowpixel", "Move specific window", "X Y,window", "Resize"},
	{"splitratio", "Change split ratio", "+0.1/-0.1/exact 0.5", "Resize"},

	{"togglegroup", "Toggle window group", "none", "Groups"},
	{"changegroupactive", "Switch in group", "b/f or index", "Groups"},
	{"lockgroups", "Lock all groups", "lock/unlock/toggle", "Groups"},
	{"lockactivegroup", "Lock current group", "lock/unlock/toggle", "Groups"},
	{"moveintogroup", "Move into group", "l/r/u/d", "Groups"},
	{"moveoutofgroup", "Move out of group", "empty/window", "Groups"},

	{"exit", "Exit Hyprland", "none", "System"},
	{"dpms", "Toggle DPMS", "on/off/toggle", "System"},
	{"forcerendererreload", "Reload renderer", "none", "System"},
	{"submap", "Switch submap", "reset/name", "System"},

	{"togglesplit", "Toggle split orientation", "none", "Layout"},
	{"pseudo", "Toggle pseudo-tiling", "none", "Layout"},
	{"layoutmsg", "Send layout message", "message", "Layout"},
}

// LookupDispatcher returns the catalog entry for name.
func LookupDispatcher(name string) (Dispatcher, bool) {
	return lo.Find(dispatchers, func(d Dispatcher) bool { return d.Name == name })
}

// ParamHint returns the parameter hint for a dispatcher, or "parameters"
// for names outside the catalog.
func ParamHint(name string) string {
	if d, ok := LookupDispatcher(name); ok {
		return d.Param
	}
	return "parameters"
}

// DispatcherGroup is one category of the dispatcher catalog.
type DispatcherGroup struct {
	Category    string       `json:"category"`
	Dispatchers []Dispatcher `json:"dispatchers"`
}

// DispatchersByCategory returns the catalog grouped in display order.
func DispatchersByCategory() []DispatcherGroup {
	grouped := lo.GroupBy(dispatchers, func(d Dispatcher) string { return d.Category })
	cats := lo.Keys(grouped)
	rank := func(c string) int {
		if i := lo.IndexOf(dispatcherCategoryOrder, c); i >= 0 {
			return i
		}
		return len(dispatcherCategoryOrder)
	}
	sort.SliceStable(cats, func(i, j int) bool {
		if rank(cats[i]) != rank(cats[j]) {
			return rank(cats[i]) < rank(cats[j])
		}
		return cats[i] < cats[j]
	})
	out := make([]DispatcherGroup, 0, len(cats))
	for _, c := range cats {
		out = append(out, DispatcherGroup{Category: c, Dispatchers: grouped[c]})
	}
	return out
}
