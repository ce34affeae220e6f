// Package pipeline buffers edits to Hyprland options and writes them back
// in bulk, either on demand or after a quiet period.
package pipeline

import (
	"maps"
	"slices"
	"sync"
)

// Buffer holds the known option values and the edits not yet saved.
// It is safe for concurrent use.
type Buffer struct {
	mu      sync.Mutex
	values  map[string]any
	pending map[string]any
	// gen records the edit sequence number of each pending path, so a save
	// can tell whether a path changed while its request was in flight.
	gen       map[string]uint64
	seq       uint64
	listeners []func(path string)
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		values:  map[string]any{},
		pending: map[string]any{},
		gen:     map[string]uint64{},
	}
}

// Load replaces the cached values and drops every pending edit.
func (b *Buffer) Load(values map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values = maps.Clone(values)
	if b.values == nil {
		b.values = map[string]any{}
	}
	clear(b.pending)
	clear(b.gen)
}

// OnSet registers fn to run after every Set, outside the lock.
func (b *Buffer) OnSet(fn func(path string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Set records an edit. The path is marked pending even when v equals the
// cached value.
func (b *Buffer) Set(path string, v any) {
	b.mu.Lock()
	b.seq++
	b.values[path] = v
	b.pending[path] = v
	b.gen[path] = b.seq
	listeners := slices.Clone(b.listeners)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
}

// Value returns the cached value of path, edited or not.
func (b *Buffer) Value(path string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[path]
	return v, ok
}

// Values returns a copy of every cached value.
func (b *Buffer) Values() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.values)
}

// Pending returns a copy of the unsaved edits.
func (b *Buffer) Pending() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.pending)
}

// DirtyCount is the number of pending paths.
func (b *Buffer) DirtyCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// IsDirty reports whether path has an unsaved edit.
func (b *Buffer) IsDirty(path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.pending[path]
	return ok
}

// Discard drops every pending edit. Cached values keep the edited values
// until the next Load.
func (b *Buffer) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.pending)
	clear(b.gen)
}

// batch is what one save request carries.
type batch struct {
	updates map[string]any
	gen     map[string]uint64
}

func (b *Buffer) snapshot() batch {
	b.mu.Lock()
	defer b.mu.Unlock()
	return batch{updates: maps.Clone(b.pending), gen: maps.Clone(b.gen)}
}

// settle clears the paths a successful request covered. Under ClearSaved a
// path edited again while the request was in flight stays pending, and so
// does a path the backend rejected.
func (b *Buffer) settle(sent batch, failed []string, mode ClearMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if mode == ClearAll {
		clear(b.pending)
		clear(b.gen)
		return
	}
	for path, g := range sent.gen {
		if b.gen[path] != g || slices.Contains(failed, path) {
			continue
		}
		delete(b.pending, path)
		delete(b.gen, path)
	}
}

// newerThan reports whether a pending path was not part of sent or was
// edited after it was sent.
func (b *Buffer) newerThan(sent batch) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for path, g := range b.gen {
		if sg, ok := sent.gen[path]; !ok || g > sg {
			return true
		}
	}
	return false
}
