package waybar

import (
	"context"
	"encoding/json"
	"fmt"
)

// API is the backend surface for waybar.
type API interface {
	WaybarConfig(ctx context.Context) (json.RawMessage, error)
	UpdateWaybarModule(ctx context.Context, module string, value any) error
}

// Load fetches and parses the live waybar config.
func Load(ctx context.Context, api API) (*Config, error) {
	raw, err := api.WaybarConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load waybar config: %w", err)
	}
	return Parse(raw)
}

// UpdateModule validates value locally and writes it as the module's
// configuration.
func UpdateModule(ctx context.Context, api API, name string, value json.RawMessage) error {
	if name == "" {
		return fmt.Errorf("%w: module name is required", ErrInvalidConfig)
	}
	if !json.Valid(value) {
		return fmt.Errorf("%w: value for %s is not JSON", ErrInvalidConfig, name)
	}
	if err := api.UpdateWaybarModule(ctx, name, value); err != nil {
		return fmt.Errorf("update waybar module %s: %w", name, err)
	}
	return nil
}
