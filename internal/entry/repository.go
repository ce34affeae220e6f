package entry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Backend is the slice of the backend client a Repository needs.
type Backend interface {
	ListEntries(ctx context.Context, kind string, out any) error
	MutateEntry(ctx context.Context, kind string, payload any) error
}

// Repository holds the last fetched collection of one kind.
type Repository[T any] struct {
	api  Backend
	kind Kind[T]

	mu     sync.Mutex
	items  []T
	loaded bool
}

func NewRepository[T any](api Backend, kind Kind[T]) *Repository[T] {
	return &Repository[T]{api: api, kind: kind}
}

// Kind returns the capability set the repository was built with.
func (r *Repository[T]) Kind() Kind[T] { return r.kind }

// List fetches the collection and replaces the cached copy.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.api.ListEntries(ctx, r.kind.Name(), &items); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind.Name(), err)
	}
	r.mu.Lock()
	r.items = items
	r.loaded = true
	r.mu.Unlock()
	return slices.Clone(items), nil
}

// Items returns the cached collection without a request.
func (r *Repository[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}

// Find looks ref up in the cached collection.
func (r *Repository[T]) Find(ref EntryRef) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.Find(r.items, func(item T) bool {
		return r.kind.Identify(item).Equal(ref)
	})
}

// Add validates item, creates it and returns the refetched collection.
func (r *Repository[T]) Add(ctx context.Context, item T) ([]T, error) {
	if err := r.kind.Validate(item); err != nil {
		return nil, err
	}
	var zero T
	if err := r.mutate(ctx, ActionAdd, item, zero); err != nil {
		return nil, err
	}
	return r.List(ctx)
}

// Update replaces the entry addressed by ref with item.
func (r *Repository[T]) Update(ctx context.Context, ref EntryRef, item T) ([]T, error) {
	if err := r.kind.Validate(item); err != nil {
		return nil, err
	}
	prev, err := r.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := r.mutate(ctx, ActionUpdate, item, prev); err != nil {
		return nil, err
	}
	return r.List(ctx)
}

// Delete removes the entry addressed by ref.
func (r *Repository[T]) Delete(ctx context.Context, ref EntryRef) ([]T, error) {
	prev, err := r.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	var zero T
	if err := r.mutate(ctx, ActionDelete, zero, prev); err != nil {
		return nil, err
	}
	return r.List(ctx)
}

// resolve finds the record ref points at, fetching the collection first if
// it has never been listed. A ref that matches nothing is stale.
func (r *Repository[T]) resolve(ctx context.Context, ref EntryRef) (T, error) {
	r.mu.Lock()
	loaded := r.loaded
	r.mu.Unlock()
	if !loaded {
		if _, err := r.List(ctx); err != nil {
			var zero T
			return zero, err
		}
	}
	prev, ok := r.Find(ref)
	if !ok {
		return prev, &StaleAddressError{Kind: r.kind.Name(), Ref: ref}
	}
	return prev, nil
}

func (r *Repository[T]) mutate(ctx context.Context, action Action, next, prev T) error {
	payload := r.kind.Serialize(action, next, prev)
	if err := r.api.MutateEntry(ctx, r.kind.Name(), payload); err != nil {
		return fmt.Errorf("%s %s: %w", action, r.kind.Name(), err)
	}
	slog.Debug("entry mutated", "kind", r.kind.Name(), "action", string(action))
	return nil
}
