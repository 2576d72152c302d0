// Package editing implements the dual-source pattern behind the
// category, course, quiz and employee screens: reads come from the
// remote API when a session token exists, else from the local fallback
// store, and writes go back to whichever source served the read.
package editing

import "context"

// Controller owns one screen's in-memory list for one mount. The source
// is fixed for the controller's lifetime: remote and local data are
// never merged.
type Controller[T Entity[T]] struct {
	src   Source[T]
	items []T
}

// Mount picks the source from token presence and loads the list.
func Mount[T Entity[T]](ctx context.Context, token string, remote, local Source[T]) (*Controller[T], error) {
	src := local
	if token != "" {
		src = remote
	}
	c := &Controller[T]{src: src}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// SourceName reports which source the screen mounted against.
func (c *Controller[T]) SourceName() string { return c.src.Name() }

// Items returns a copy of the visible list.
func (c *Controller[T]) Items() []T {
	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}

// Refresh reloads the list from the mounted source.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	items, err := c.src.List(ctx)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}

// Create writes through the mounted source, then prepends the stored
// shape. A failed write leaves the visible list untouched.
func (c *Controller[T]) Create(ctx context.Context, item T) (T, error) {
	created, err := c.src.Create(ctx, item)
	if err != nil {
		return created, err
	}
	c.items = append([]T{created}, c.items...)
	return created, nil
}

// Update writes through the mounted source, then patches the matching
// item in place. A failed write leaves the visible list untouched.
func (c *Controller[T]) Update(ctx context.Context, id string, item T) (T, error) {
	updated, err := c.src.Update(ctx, id, item)
	if err != nil {
		return updated, err
	}
	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items[i] = updated
			break
		}
	}
	return updated, nil
}

// Delete removes through the mounted source, then drops the item from
// the visible list. A failed delete leaves it in place.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if err := c.src.Delete(ctx, id); err != nil {
		return err
	}
	kept := c.items[:0]
	for _, item := range c.items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return nil
}

// Patch applies fn to the matching visible item without a source write;
// used after out-of-band remote operations (activate/deactivate
// endpoints) that already succeeded.
func (c *Controller[T]) Patch(id string, fn func(T) T) {
	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items[i] = fn(c.items[i])
			return
		}
	}
}
