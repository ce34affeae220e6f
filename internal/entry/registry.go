package entry

import (
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Factory builds a collection bound to a backend.
type Factory func(api Backend) Collection

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register adds a collection factory under name.
// Panics if name is already registered.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := factories[name]; exists {
		panic("entry kind already registered: " + name)
	}
	factories[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := factories[name]
	return f, ok
}

// Names returns the registered kind names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := lo.Keys(factories)
	slices.Sort(names)
	return names
}

// Reset clears the registry. Only for testing.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories = make(map[string]Factory)
}

func register[T any](kind Kind[T]) {
	Register(kind.Name(), func(api Backend) Collection {
		return NewRepository(api, kind).Collection()
	})
}

// RegisterDefaults registers the six mutating Hyprland kinds.
// Call once during start-up.
func RegisterDefaults() {
	register[Bind](BindKind{})
	register[WindowRule](WindowRuleKind{})
	register[LayerRule](LayerRuleKind{})
	register[Exec](ExecKind{})
	register[Env](EnvKind{})
	register[Gesture](GestureKind{})
}
