package entry

import (
	"context"
	"fmt"
	"maps"

	"github.com/samber/lo"
)

// Record is a kind-independent view of one entry for listings.
type Record struct {
	Ref    EntryRef `json:"ref"`
	Values []string `json:"values"`
	Item   any      `json:"item"`
}

// Collection is the type-erased face of a Repository, driven by field maps.
type Collection interface {
	Name() string
	Fields() []string
	List(ctx context.Context) ([]Record, error)
	Add(ctx context.Context, fields map[string]string) ([]Record, error)
	// Update overlays fields onto the entry addressed by ref; fields not
	// given keep their current value.
	Update(ctx context.Context, ref EntryRef, fields map[string]string) ([]Record, error)
	Delete(ctx context.Context, ref EntryRef) ([]Record, error)
}

// Collection adapts r for callers that do not know T.
func (r *Repository[T]) Collection() Collection {
	return collection[T]{repo: r}
}

type collection[T any] struct {
	repo *Repository[T]
}

func (c collection[T]) Name() string     { return c.repo.kind.Name() }
func (c collection[T]) Fields() []string { return c.repo.kind.Fields() }

func (c collection[T]) records(items []T) []Record {
	return lo.Map(items, func(item T, _ int) Record {
		return Record{
			Ref:    c.repo.kind.Identify(item),
			Values: c.repo.kind.Values(item),
			Item:   item,
		}
	})
}

func (c collection[T]) List(ctx context.Context) ([]Record, error) {
	items, err := c.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return c.records(items), nil
}

func (c collection[T]) Add(ctx context.Context, fields map[string]string) ([]Record, error) {
	item, err := c.repo.kind.Parse(fields)
	if err != nil {
		return nil, err
	}
	items, err := c.repo.Add(ctx, item)
	if err != nil {
		return nil, err
	}
	return c.records(items), nil
}

func (c collection[T]) Update(ctx context.Context, ref EntryRef, fields map[string]string) ([]Record, error) {
	prev, err := c.repo.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]string, len(c.Fields()))
	for i, v := range c.repo.kind.Values(prev) {
		merged[c.Fields()[i]] = v
	}
	maps.Copy(merged, fields)
	item, err := c.repo.kind.Parse(merged)
	if err != nil {
		return nil, err
	}
	items, err := c.repo.Update(ctx, ref, item)
	if err != nil {
		return nil, err
	}
	return c.records(items), nil
}

func (c collection[T]) Delete(ctx context.Context, ref EntryRef) ([]Record, error) {
	items, err := c.repo.Delete(ctx, ref)
	if err != nil {
		return nil, err
	}
	return c.records(items), nil
}

// Open returns the collection registered under name, bound to api.
func Open(name string, api Backend) (Collection, error) {
	factory, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	return factory(api), nil
}
