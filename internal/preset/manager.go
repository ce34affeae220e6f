// Package preset manages the named configuration snapshots of a tool and
// which of them is active.
package preset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/validation"
)

// API is the subset of the backend client presets use.
type API interface {
	Presets(ctx context.Context, tool string) (*backend.PresetList, error)
	CreatePreset(ctx context.Context, tool string, in backend.PresetInput) (*backend.Preset, error)
	UpdatePreset(ctx context.Context, tool, id string, in backend.PresetInput) (*backend.Preset, error)
	DeletePreset(ctx context.Context, tool, id string) error
	ActivatePreset(ctx context.Context, tool, id string) error
	DeactivatePreset(ctx context.Context, tool string) error
	UpdatePresetContent(ctx context.Context, tool, id string) error
}

// Confirmer asks the user to approve an action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Pending exposes a tool's unsaved edits.
type Pending interface {
	DirtyCount() int
	Discard()
}

// Hooks connect the manager to the tool it belongs to. Any may be nil.
type Hooks struct {
	// Save writes the tool's working state to its live config.
	Save func(ctx context.Context) error
	// Reload refetches the tool's state after the live config changed.
	Reload func(ctx context.Context) error
	// Pending reports unsaved edits that activation would overwrite.
	Pending Pending
	// Confirm approves discarding pending edits.
	Confirm Confirmer
}

// Manager tracks the presets of one tool. It is safe for concurrent use.
type Manager struct {
	api   API
	tool  string
	hooks Hooks

	mu      sync.Mutex
	presets []backend.Preset
	active  string
}

// NewManager returns a Manager for tool ("hyprland", "hyprlock", ...).
func NewManager(api API, tool string, hooks Hooks) *Manager {
	return &Manager{api: api, tool: tool, hooks: hooks}
}

// Tool is the tool name this manager serves.
func (m *Manager) Tool() string { return m.tool }

// Load fetches the preset list and active pointer.
func (m *Manager) Load(ctx context.Context) ([]backend.Preset, error) {
	list, err := m.api.Presets(ctx, m.tool)
	if err != nil {
		return nil, fmt.Errorf("list %s presets: %w", m.tool, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presets = list.Presets
	m.active = lo.FromPtr(list.ActivePreset)
	return slices.Clone(m.presets), nil
}

// Presets returns the last loaded list.
func (m *Manager) Presets() []backend.Preset {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.presets)
}

// Active returns the active preset id, or "" when none is active.
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Find returns the preset with the given id from the last loaded list.
func (m *Manager) Find(id string) (backend.Preset, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Find(m.presets, func(p backend.Preset) bool { return p.ID == id })
}

func validateInput(name, description string) (backend.PresetInput, error) {
	in := backend.PresetInput{Name: strings.TrimSpace(name), Description: strings.TrimSpace(description)}
	var c validation.Collector
	c.Add(validation.ValidateRequired("name", in.Name))
	c.Add(validation.ValidateSingleLine("name", in.Name))
	c.Add(validation.ValidateUTF8("name", in.Name))
	c.Add(validation.ValidateMaxLength("name", in.Name, 100))
	c.Add(validation.ValidateUTF8("description", in.Description))
	c.Add(validation.ValidateMaxLength("description", in.Description, 1000))
	return in, c.Err()
}

// Create snapshots the live config as a new preset and marks it active.
func (m *Manager) Create(ctx context.Context, name, description string) (*backend.Preset, error) {
	in, err := validateInput(name, description)
	if err != nil {
		return nil, err
	}
	p, err := m.api.CreatePreset(ctx, m.tool, in)
	if err != nil {
		return nil, fmt.Errorf("create preset %q: %w", in.Name, err)
	}
	m.mu.Lock()
	m.presets = append(m.presets, *p)
	m.active = p.ID
	m.mu.Unlock()
	slog.Info("preset created", "tool", m.tool, "id", p.ID, "name", p.Name)
	return p, nil
}

// Update changes a preset's name and description.
func (m *Manager) Update(ctx context.Context, id, name, description string) (*backend.Preset, error) {
	in, err := validateInput(name, description)
	if err != nil {
		return nil, err
	}
	p, err := m.api.UpdatePreset(ctx, m.tool, id, in)
	if err != nil {
		return nil, fmt.Errorf("update preset %s: %w", id, err)
	}
	m.mu.Lock()
	if i := slices.IndexFunc(m.presets, func(x backend.Preset) bool { return x.ID == id }); i >= 0 {
		m.presets[i] = *p
	}
	m.mu.Unlock()
	return p, nil
}

// Delete removes a preset. Deleting the active preset also deactivates it.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.api.DeletePreset(ctx, m.tool, id); err != nil {
		return fmt.Errorf("delete preset %s: %w", id, err)
	}

	m.mu.Lock()
	m.presets = slices.DeleteFunc(m.presets, func(p backend.Preset) bool { return p.ID == id })
	wasActive := m.active == id
	if wasActive {
		m.active = ""
	}
	m.mu.Unlock()

	if wasActive {
		if err := m.api.DeactivatePreset(ctx, m.tool); err != nil {
			return fmt.Errorf("deactivate deleted preset %s: %w", id, err)
		}
	}
	return nil
}

// Activate makes id the live config. The backend keeps a backup of the
// config it replaces. On failure the active pointer keeps its prior value.
func (m *Manager) Activate(ctx context.Context, id string) error {
	if err := m.api.ActivatePreset(ctx, m.tool, id); err != nil {
		return fmt.Errorf("activate preset %s: %w", id, err)
	}
	m.mu.Lock()
	m.active = id
	m.mu.Unlock()
	slog.Info("preset activated", "tool", m.tool, "id", id)
	return nil
}

// Deactivate clears the active preset. The live config is left as is.
func (m *Manager) Deactivate(ctx context.Context) error {
	if err := m.api.DeactivatePreset(ctx, m.tool); err != nil {
		return fmt.Errorf("deactivate %s preset: %w", m.tool, err)
	}
	m.mu.Lock()
	m.active = ""
	m.mu.Unlock()
	return nil
}

// SyncContentToActive copies the saved live config into the active preset.
func (m *Manager) SyncContentToActive(ctx context.Context) error {
	id := m.Active()
	if id == "" {
		return ErrNoActivePreset
	}
	if err := m.api.UpdatePresetContent(ctx, m.tool, id); err != nil {
		return fmt.Errorf("sync preset %s: %w", id, err)
	}
	return nil
}

// SyncIfActive is SyncContentToActive without the error for no preset.
// It runs after every autosave.
func (m *Manager) SyncIfActive(ctx context.Context) error {
	err := m.SyncContentToActive(ctx)
	if errors.Is(err, ErrNoActivePreset) {
		return nil
	}
	return err
}

// Switch is the preset selector flow. An empty id deactivates. With
// unsaved edits the Confirmer must approve discarding them first; a
// declined or missing confirmation returns ErrDiscardDeclined before any
// request. Edits are dropped only once activation succeeded, then the tool
// is reloaded.
func (m *Manager) Switch(ctx context.Context, id string) error {
	if id == "" {
		return m.Deactivate(ctx)
	}
	if id == m.Active() {
		return nil
	}

	p := m.hooks.Pending
	dirty := p != nil && p.DirtyCount() > 0
	if dirty {
		prompt := fmt.Sprintf("Discard %d unsaved change(s) and switch preset?", p.DirtyCount())
		ok := false
		if m.hooks.Confirm != nil {
			var err error
			if ok, err = m.hooks.Confirm.Confirm(ctx, prompt); err != nil {
				return fmt.Errorf("confirm discard: %w", err)
			}
		}
		if !ok {
			return ErrDiscardDeclined
		}
	}

	if err := m.Activate(ctx, id); err != nil {
		return err
	}
	if dirty {
		p.Discard()
	}
	if m.hooks.Reload != nil {
		if err := m.hooks.Reload(ctx); err != nil {
			return fmt.Errorf("reload after activating %s: %w", id, err)
		}
	}
	return nil
}

// SaveAsNew writes the working state, then snapshots it as a new active
// preset.
func (m *Manager) SaveAsNew(ctx context.Context, name, description string) (*backend.Preset, error) {
	if _, err := validateInput(name, description); err != nil {
		return nil, err
	}
	if err := m.save(ctx); err != nil {
		return nil, err
	}
	return m.Create(ctx, name, description)
}

// SaveAndSync writes the working state and, when a preset is active,
// copies it into that preset.
func (m *Manager) SaveAndSync(ctx context.Context) error {
	if err := m.save(ctx); err != nil {
		return err
	}
	return m.SyncIfActive(ctx)
}

func (m *Manager) save(ctx context.Context) error {
	if m.hooks.Save == nil {
		return nil
	}
	if err := m.hooks.Save(ctx); err != nil {
		return fmt.Errorf("save before preset change: %w", err)
	}
	return nil
}
