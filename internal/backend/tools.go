package backend

import (
	"context"
	"encoding/json"
)

// Lockscreen fetches the full hyprlock config into out.
func (c *Client) Lockscreen(ctx context.Context, out any) error {
	return c.Get(ctx, "hyprlock/config", out)
}

// SaveLockscreen replaces the full hyprlock config.
func (c *Client) SaveLockscreen(ctx context.Context, cfg any) error {
	return c.Post(ctx, "hyprlock/config", cfg, nil)
}

// WaybarConfig returns the raw waybar config document.
func (c *Client) WaybarConfig(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, "waybar/config", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// UpdateWaybarModule replaces the config object of one waybar module.
func (c *Client) UpdateWaybarModule(ctx context.Context, module string, value any) error {
	body := map[string]any{"module": module, "value": value}
	return c.Post(ctx, "waybar/config/update", body, nil)
}
