// Package fallback implements the local fallback store: named, persisted
// entity lists the editing screens use when no backend session exists.
package fallback

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/storage/kv"
)

// List is a persisted entity list bound to a storage key and a seed.
// The first read with no persisted value writes the seed and returns it;
// absence of a prior value is a normal first-run condition, not an error.
type List[T any] struct {
	store *kv.Store
	key   string
	seed  []T

	items  []T
	loaded bool
}

func NewList[T any](store *kv.Store, key string, seed []T) *List[T] {
	return &List[T]{store: store, key: key, seed: seed}
}

// Items returns the current list, loading (and seeding) it on first use.
// The returned slice is a copy; mutations do not leak into the store.
func (l *List[T]) Items() ([]T, error) {
	if !l.loaded {
		if err := l.load(); err != nil {
			return nil, err
		}
	}
	items := make([]T, len(l.items))
	copy(items, l.items)
	return items, nil
}

// Set persists the new list synchronously and updates the in-memory view.
func (l *List[T]) Set(items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "marshalling %q", l.key)
	}
	if err = l.store.Set(l.key, data); err != nil {
		return err
	}
	l.items = items
	l.loaded = true
	return nil
}

func (l *List[T]) load() error {
	data, err := l.store.Get(l.key)
	if err == kv.ErrNotFound {
		return l.Set(l.seed)
	}
	if err != nil {
		return err
	}
	var items []T
	if err = json.Unmarshal(data, &items); err != nil {
		return errors.Wrapf(err, "unmarshalling %q", l.key)
	}
	l.items = items
	l.loaded = true
	return nil
}
