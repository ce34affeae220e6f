package scene

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/revati108/arch-board/internal/hyprcolor"
)

// Scene is the editor's working copy of a lock screen. It is safe for
// concurrent use; change listeners run outside the lock.
type Scene struct {
	mu       sync.Mutex
	base     LockscreenConfig
	widgets  []Widget
	zoom     float64
	onChange []func(LockscreenConfig)
}

// New returns an empty scene at the default zoom.
func New() *Scene {
	return &Scene{zoom: DefaultZoom}
}

// Load replaces the scene with the widgets of cfg. Listeners are not
// notified; loading is not an edit.
func (s *Scene) Load(cfg LockscreenConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = cfg
	s.widgets = Flatten(cfg)
}

// OnChange registers fn to receive the document after every edit.
func (s *Scene) OnChange(fn func(LockscreenConfig)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Widgets returns a copy of the widget list in list order.
func (s *Scene) Widgets() []Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Widget, len(s.widgets))
	for i, w := range s.widgets {
		out[i] = Widget{ID: w.ID, Type: w.Type, Data: maps.Clone(w.Data)}
	}
	return out
}

// Get returns a copy of the widget with the given id.
func (s *Scene) Get(id string) (Widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index(id)
	if err != nil {
		return Widget{}, err
	}
	w := s.widgets[i]
	return Widget{ID: w.ID, Type: w.Type, Data: maps.Clone(w.Data)}, nil
}

// Config returns the document the scene currently describes.
func (s *Scene) Config() LockscreenConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Unflatten(s.widgets, s.base)
}

// Add appends a widget of type t with its defaults.
func (s *Scene) Add(t WidgetType) (Widget, error) {
	if _, err := ParseType(string(t)); err != nil {
		return Widget{}, err
	}
	w := Widget{ID: "w-" + ulid.Make().String(), Type: t, Data: Defaults(t)}
	s.edit(func() error {
		s.widgets = append(s.widgets, w)
		return nil
	})
	return Widget{ID: w.ID, Type: t, Data: maps.Clone(w.Data)}, nil
}

// Remove deletes the widget with the given id.
func (s *Scene) Remove(id string) error {
	return s.edit(func() error {
		i, err := s.index(id)
		if err != nil {
			return err
		}
		s.widgets = slices.Delete(s.widgets, i, i+1)
		return nil
	})
}

// Update sets one field, coercing the value to the field's kind.
func (s *Scene) Update(id, key string, value any) error {
	return s.edit(func() error {
		i, err := s.index(id)
		if err != nil {
			return err
		}
		v, err := Field(s.widgets[i].Type, key).Coerce(value)
		if err != nil {
			return err
		}
		s.widgets[i].Data[key] = v
		return nil
	})
}

// SetColor writes a picked #rrggbb into a color field, keeping the
// encoding of the value it replaces.
func (s *Scene) SetColor(id, key, hex string) error {
	return s.edit(func() error {
		i, err := s.index(id)
		if err != nil {
			return err
		}
		w := s.widgets[i]
		if Field(w.Type, key).Kind != FieldColor {
			return fmt.Errorf("%s is not a color field of %s", key, w.Type)
		}
		v, err := hyprcolor.FormatUpdate(str(w.Data[key]), hex)
		if err != nil {
			return err
		}
		w.Data[key] = v
		return nil
	})
}

// Move applies a drag of (dx, dy) screen pixels at the current zoom and
// returns the new stored position.
func (s *Scene) Move(id string, dx, dy float64) (x, y float64, err error) {
	err = s.edit(func() error {
		i, err := s.index(id)
		if err != nil {
			return err
		}
		w := s.widgets[i]
		if w.Type == TypeBackground {
			return fmt.Errorf("%w: %s", ErrNotDraggable, id)
		}
		x0, y0 := ParseVec2(w.Data["position"])
		x, y = Drag(x0, y0, dx, dy, s.zoom)
		w.Data["position"] = FormatVec2(x, y)
		return nil
	})
	return x, y, err
}

// Zoom is the current canvas scale.
func (s *Scene) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

// SetZoom clamps and stores the canvas scale, returning the value kept.
func (s *Scene) SetZoom(z float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = ClampZoom(z)
	return s.zoom
}

// edit runs fn under the lock and, when it succeeds, notifies listeners
// with the resulting document.
func (s *Scene) edit(fn func() error) error {
	s.mu.Lock()
	if err := fn(); err != nil {
		s.mu.Unlock()
		return err
	}
	cfg := Unflatten(s.widgets, s.base)
	listeners := slices.Clone(s.onChange)
	s.mu.Unlock()

	for _, l := range listeners {
		l(cfg)
	}
	return nil
}

func (s *Scene) index(id string) (int, error) {
	i := slices.IndexFunc(s.widgets, func(w Widget) bool { return w.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
	}
	return i, nil
}
