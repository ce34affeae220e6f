package devserver

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/lo"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/entry"
	"github.com/revati108/arch-board/internal/migration"
	"github.com/revati108/arch-board/internal/scene"
	"github.com/revati108/arch-board/internal/schema"
	"github.com/revati108/arch-board/internal/validation"
	"github.com/revati108/arch-board/internal/waybar"
)

// Tool names with presets.
const (
	ToolHyprland = backend.ToolHyprland
	ToolHyprlock = backend.ToolHyprlock
	ToolWaybar   = backend.ToolWaybar
)

// Tools lists every tool the server knows.
var Tools = []string{ToolHyprland, ToolHyprlock, ToolWaybar}

type presetRecord struct {
	backend.Preset
	content []byte
}

type presetBook struct {
	presets []*presetRecord
	active  *string
	backup  []byte
}

func (b *presetBook) find(id string) (*presetRecord, error) {
	p, ok := lo.Find(b.presets, func(p *presetRecord) bool { return p.ID == id })
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
	}
	return p, nil
}

// State is the whole in-memory backend. Every method is safe for
// concurrent use.
type State struct {
	mu         sync.Mutex
	configPath string
	conf       hyprConf
	schema     schema.Schema
	windows    []backend.Window
	version    string
	lock       scene.LockscreenConfig
	bar        *waybar.Config
	books      map[string]*presetBook
	backups    map[string][]migration.Line
	reloads    int
	now        func() time.Time
}

// NewState builds a State from seed.
func NewState(seed Seed) (*State, error) {
	bar, err := waybar.Parse(seed.Waybar)
	if err != nil {
		return nil, fmt.Errorf("seed waybar config: %w", err)
	}
	s := &State{
		configPath: seed.ConfigPath,
		conf:       hyprConf{lines: slices.Clone(seed.Lines)},
		schema:     seed.Schema,
		windows:    seed.Windows,
		version:    seed.VersionOutput,
		lock:       seed.Lockscreen,
		bar:        bar,
		books:      map[string]*presetBook{},
		backups:    map[string][]migration.Line{},
		now:        time.Now,
	}
	for _, t := range Tools {
		s.books[t] = &presetBook{}
	}
	return s, nil
}

// --- hyprland ---

func (s *State) Schema() schema.Schema {
	return s.schema
}

func (s *State) Config() backend.ConfigSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return backend.ConfigSnapshot{Config: s.conf.values(s.schema), Path: s.configPath}
}

// BulkUpdate writes each path. Paths that do not name an option are
// reported as failed and left out.
func (s *State) BulkUpdate(updates map[string]any) map[string]backend.BulkResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]backend.BulkResult, len(updates))
	for path, v := range updates {
		out[path] = backend.BulkResult{Success: s.conf.setOption(path, v), Value: v}
	}
	return out
}

// Entries lists one keyword collection.
func (s *State) Entries(kind string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case entry.KindBinds:
		return nonNil(s.conf.binds()), nil
	case entry.KindWindowRules:
		return nonNil(s.conf.windowRules()), nil
	case entry.KindLayerRules:
		return nonNil(s.conf.layerRules()), nil
	case entry.KindExec:
		return nonNil(s.conf.execs()), nil
	case entry.KindEnv:
		return nonNil(s.conf.envs()), nil
	case entry.KindGestures:
		return nonNil(s.conf.gestures()), nil
	case "monitors":
		return nonNil(s.conf.monitors()), nil
	case "windows":
		return nonNil(slices.Clone(s.windows)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

// Mutate applies one add/update/delete and reports whether a line changed.
func (s *State) Mutate(kind string, m mutation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conf.mutate(kind, m)
}

func (s *State) Reload() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloads++
	return s.reloads
}

func (s *State) versionInfo() *backend.Version {
	v, err := migration.ParseVersion(s.version)
	if err != nil {
		return nil
	}
	return &backend.Version{Version: v.String(), SupportsNewWindowRules: migration.SupportsNewWindowRules(v)}
}

func (s *State) MigrationStatus() backend.MigrationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	needs := migration.NeedsMigration(s.conf.lines)
	st := backend.MigrationStatus{NeedsMigration: needs, Version: s.versionInfo(), ConfigPath: s.configPath}
	if needs {
		st.Summary = migration.Summary(s.conf.lines)
	}
	return st
}

// Migrate rewrites legacy syntax after keeping a backup of the lines.
func (s *State) Migrate() backend.MigrationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !migration.NeedsMigration(s.conf.lines) {
		return backend.MigrationResult{Success: true, Message: "Config is already using new syntax"}
	}
	backupPath := s.configPath + ".backup-" + s.now().Format("20060102-150405")
	s.backups[backupPath] = slices.Clone(s.conf.lines)
	res := migration.Migrate(s.conf.lines)
	return backend.MigrationResult{
		Success:        true,
		Migrated:       true,
		MigratedRules:  res.MigratedRules,
		RenamedOptions: res.RenamedOptions,
		BackupPath:     backupPath,
		Message: fmt.Sprintf("Migrated %d rules, renamed %d options. Backup saved to %s",
			res.MigratedRules, res.RenamedOptions, filepath.Base(backupPath)),
	}
}

// --- hyprlock and waybar ---

func (s *State) Lockscreen() scene.LockscreenConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lock
}

func (s *State) SetLockscreen(cfg scene.LockscreenConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lock = cfg
}

func (s *State) Waybar() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bar.Raw()
}

func (s *State) UpdateWaybarModule(name string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.bar.Set(name, value)
	if err != nil {
		return err
	}
	s.bar = next
	return nil
}

// --- presets ---

func (s *State) book(tool string) (*presetBook, error) {
	b, ok := s.books[tool]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}
	return b, nil
}

// snapshot serializes the live config of tool. Callers hold s.mu.
func (s *State) snapshot(tool string) ([]byte, error) {
	switch tool {
	case ToolHyprland:
		return json.Marshal(s.conf.lines)
	case ToolHyprlock:
		return json.Marshal(s.lock)
	case ToolWaybar:
		return slices.Clone(s.bar.Raw()), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTool, tool)
}

func (s *State) restore(tool string, data []byte) error {
	switch tool {
	case ToolHyprland:
		var lines []migration.Line
		if err := json.Unmarshal(data, &lines); err != nil {
			return fmt.Errorf("restore %s: %w", tool, err)
		}
		s.conf = hyprConf{lines: lines}
	case ToolHyprlock:
		var cfg scene.LockscreenConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("restore %s: %w", tool, err)
		}
		s.lock = cfg
	case ToolWaybar:
		bar, err := waybar.Parse(data)
		if err != nil {
			return fmt.Errorf("restore %s: %w", tool, err)
		}
		s.bar = bar
	default:
		return fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}
	return nil
}

func validatePreset(in backend.PresetInput) error {
	c := &validation.Collector{}
	c.Add(validation.ValidateRequired("name", in.Name))
	c.Add(validation.ValidateMaxLength("name", in.Name, 100))
	c.Add(validation.ValidateMaxLength("description", in.Description, 1000))
	return c.Err()
}

func (s *State) Presets(tool string) (backend.PresetList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.book(tool)
	if err != nil {
		return backend.PresetList{}, err
	}
	list := backend.PresetList{
		Presets: lo.Map(b.presets, func(p *presetRecord, _ int) backend.Preset { return p.Preset }),
	}
	if b.active != nil {
		list.ActivePreset = lo.ToPtr(*b.active)
	}
	return list, nil
}

// CreatePreset snapshots the live config of tool. The new preset becomes
// the active one.
func (s *State) CreatePreset(tool string, in backend.PresetInput) (backend.Preset, error) {
	if err := validatePreset(in); err != nil {
		return backend.Preset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.book(tool)
	if err != nil {
		return backend.Preset{}, err
	}
	content, err := s.snapshot(tool)
	if err != nil {
		return backend.Preset{}, err
	}
	p := &presetRecord{
		Preset: backend.Preset{
			ID:          ulid.Make().String(),
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			CreatedAt:   s.now().UTC().Format(time.RFC3339),
		},
		content: content,
	}
	b.presets = append(b.presets, p)
	b.active = lo.ToPtr(p.ID)
	return p.Preset, nil
}

func (s *State) UpdatePreset(tool, id string, in backend.PresetInput) (backend.Preset, error) {
	if err := validatePreset(in); err != nil {
		return backend.Preset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.book(tool)
	if err != nil {
		return backend.Preset{}, err
	}
	p, err := b.find(id)
	if err != nil {
		return backend.Preset{}, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	return p.Preset, nil
}

func (s *State) DeletePreset(tool, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.book(tool)
	if err != nil {
		return err
	}
	if _, err := b.find(id); err != nil {
		return err
	}
	b.presets = slices.DeleteFunc(b.presets, func(p *presetRecord) bool { return p.ID == id })
	if lo.FromPtr(b.active) == id {
		b.active = nil
	}
	return nil
}

// ActivatePreset overwrites the live config of tool with the preset
// content, keeping the previous config as the tool's backup when asked.
func (s *State) ActivatePreset(tool, id string, backupCurrent bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.book(tool)
	if err != nil {
		return err
	}
	p, err := b.find(id)
	if err != nil {
		return err
	}
	if backupCurrent {
		if b.backup, err = s.snapshot(tool); err != nil {
			return err
		}
	}
	if err := s.restore(tool, p.content); err != nil {
		return err
	}
	b.active = lo.ToPtr(id)
	return nil
}

func (s *State) DeactivatePreset(tool string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.book(tool)
	if err != nil {
		return err
	}
	b.active = nil
	return nil
}

// UpdatePresetContent copies the live config of tool into preset id.
func (s *State) UpdatePresetContent(tool, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.book(tool)
	if err != nil {
		return err
	}
	p, err := b.find(id)
	if err != nil {
		return err
	}
	content, err := s.snapshot(tool)
	if err != nil {
		return err
	}
	p.content = content
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
