package backend

import (
	"context"
	"net/url"
	"time"
)

// Tools with presets.
const (
	ToolHyprland = "hyprland"
	ToolHyprlock = "hyprlock"
	ToolWaybar   = "waybar"
)

// Preset is a named snapshot of a tool's configuration.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Created parses CreatedAt. The backend emits ISO timestamps with or
// without a zone; zoneless values are read as local time.
func (p Preset) Created() (time.Time, bool) {
	for _, layout := range createdLayouts {
		if t, err := time.ParseInLocation(layout, p.CreatedAt, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PresetList is the GET presets/{tool} body.
type PresetList struct {
	Presets      []Preset `json:"presets"`
	ActivePreset *string  `json:"active_preset"`
}

// PresetInput is the create/update body.
type PresetInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func presetPath(tool string, parts ...string) string {
	p := "presets/" + url.PathEscape(tool)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// Presets lists the presets of tool and the active preset id.
func (c *Client) Presets(ctx context.Context, tool string) (*PresetList, error) {
	var resp PresetList
	if err := c.Get(ctx, presetPath(tool), &resp); err != nil {
		return nil, err
	}
	if resp.Presets == nil {
		resp.Presets = []Preset{}
	}
	return &resp, nil
}

// CreatePreset snapshots the live config of tool into a new preset.
func (c *Client) CreatePreset(ctx context.Context, tool string, in PresetInput) (*Preset, error) {
	var resp Preset
	if err := c.Post(ctx, presetPath(tool), in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdatePreset renames or re-describes a preset.
func (c *Client) UpdatePreset(ctx context.Context, tool, id string, in PresetInput) (*Preset, error) {
	var resp Preset
	if err := c.Put(ctx, presetPath(tool, id), in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeletePreset removes a preset.
func (c *Client) DeletePreset(ctx context.Context, tool, id string) error {
	return c.Delete(ctx, presetPath(tool, id), nil)
}

// ActivatePreset makes id authoritative. The backend backs up the current
// config before overwriting it.
func (c *Client) ActivatePreset(ctx context.Context, tool, id string) error {
	body := map[string]bool{"backup_current": true}
	return c.Post(ctx, presetPath(tool, id, "activate"), body, nil)
}

// DeactivatePreset clears the active preset of tool.
func (c *Client) DeactivatePreset(ctx context.Context, tool string) error {
	return c.Post(ctx, presetPath(tool, "deactivate"), nil, nil)
}

// UpdatePresetContent copies the saved live config into preset id.
func (c *Client) UpdatePresetContent(ctx context.Context, tool, id string) error {
	return c.Post(ctx, presetPath(tool, id, "update-content"), nil, nil)
}
