package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revati108/arch-board/internal/schema"
)

// ConfigSnapshot is the GET hyprland/config body.
type ConfigSnapshot struct {
	Config map[string]any `json:"config"`
	Path   string         `json:"path"`
}

// BulkResult reports the per-path outcome of a bulk write.
type BulkResult struct {
	Success bool `json:"success"`
	Value   any  `json:"value"`
}

// Window is one currently open client as reported by the compositor.
type Window struct {
	Title        string `json:"title"`
	Class        string `json:"class"`
	InitialClass string `json:"initialClass"`
	InitialTitle string `json:"initialTitle"`
	Address      string `json:"address"`
	Workspace    any    `json:"workspace"`
}

// Monitor is a read-only monitor line.
type Monitor struct {
	Name       string   `json:"name"`
	Resolution string   `json:"resolution,omitempty"`
	Position   string   `json:"position,omitempty"`
	Scale      string   `json:"scale,omitempty"`
	Extras     []string `json:"extras,omitempty"`
	Disabled   bool     `json:"disabled,omitempty"`
	Raw        string   `json:"raw"`
}

// Version is the detected compositor version.
type Version struct {
	Version                string `json:"version"`
	SupportsNewWindowRules bool   `json:"supports_new_window_rules"`
}

// MigrationStatus is the GET hyprland/migration/status body.
type MigrationStatus struct {
	NeedsMigration bool     `json:"needs_migration"`
	Summary        string   `json:"summary"`
	Version        *Version `json:"version"`
	ConfigPath     string   `json:"config_path,omitempty"`
}

// MigrationResult is the POST hyprland/migration/migrate body.
type MigrationResult struct {
	Success        bool   `json:"success"`
	Migrated       bool   `json:"migrated"`
	MigratedRules  int    `json:"migrated_rules"`
	RenamedOptions int    `json:"renamed_options"`
	BackupPath     string `json:"backup_path,omitempty"`
	Message        string `json:"message,omitempty"`
}

// Schema fetches the option schema.
func (c *Client) Schema(ctx context.Context) (schema.Schema, error) {
	var resp struct {
		Schema schema.Schema `json:"schema"`
	}
	if err := c.Get(ctx, "hyprland/schema", &resp); err != nil {
		return nil, err
	}
	return resp.Schema, nil
}

// Config fetches the current option values keyed by "section:option " path.
func (c *Client) Config(ctx context.Context) (*ConfigSnapshot, error) {
	var resp ConfigSnapshot
	if err := c.Get(ctx, "hyprland/config", &resp); err != nil {
		return nil, err
	}
	if resp.Config == nil {
		resp.Config = map[string]any{}
	}
	return &resp, nil
}

// BulkUpdate writes every path in updates in one request.
func (c *Client) BulkUpdate(ctx context.Context, updates map[string]any) (map[string]BulkResult, error) {
	var resp struct {
		Result
		Results map[string]BulkResult `json:"results"`
	}
	body := map[string]any{"updates": updates}
	if err := c.Post(ctx, "hyprland/config/bulk", body, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("bulk update"); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ListEntries fetches GET hyprland/<kind> and decodes the <kind> array into out.
func (c *Client) ListEntries(ctx context.Context, kind string, out any) error {
	var resp map[string]json.RawMessage
	if err := c.Get(ctx, "hyprland/"+kind, &resp); err != nil {
		return err
	}
	raw, ok := resp[kind]
	if !ok || string(raw) == "null" {
		raw = json.RawMessage("[]")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s list: %w", kind, err)
	}
	return nil
}

// MutateEntry posts an add/update/delete payload for one entry kind.
func (c *Client) MutateEntry(ctx context.Context, kind string, payload any) error {
	var resp Result
	if err := c.Post(ctx, "hyprland/"+kind, payload, &resp); err != nil {
		return err
	}
	return resp.check(kind)
}

// Windows lists currently open windows.
func (c *Client) Windows(ctx context.Context) ([]Window, error) {
	var out []Window
	if err := c.ListEntries(ctx, "windows", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Monitors lists monitor lines.
func (c *Client) Monitors(ctx context.Context) ([]Monitor, error) {
	var out []Monitor
	if err := c.ListEntries(ctx, "monitors", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reload asks the backend to reload the compositor config.
func (c *Client) Reload(ctx context.Context) error {
	var resp Result
	if err := c.Post(ctx, "hyprland/reload", nil, &resp); err != nil {
		return err
	}
	return resp.check("reload")
}

// MigrationStatus reports whether the config uses legacy syntax.
func (c *Client) MigrationStatus(ctx context.Context) (*MigrationStatus, error) {
	var resp MigrationStatus
	if err := c.Get(ctx, "hyprland/migration/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Migrate upgrades legacy syntax. The backend writes a backup first.
func (c *Client) Migrate(ctx context.Context) (*MigrationResult, error) {
	var resp MigrationResult
	if err := c.Post(ctx, "hyprland/migration/migrate", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
