// Package catalog implements the admin category and course screens.
package catalog

import (
	"context"
	"time"

	"github.com/elimu-lms/elimu/core/editing"
	"github.com/elimu-lms/elimu/services/api"
	"github.com/elimu-lms/elimu/storage/fallback"
	"github.com/elimu-lms/elimu/storage/kv"
)

type CategoryScreen struct {
	*editing.Controller[Category]
}

// MountCategories chooses the screen's data source from token presence
// and loads the category list.
func MountCategories(ctx context.Context, client *api.Client, eps api.Endpoints, kvStore *kv.Store, token string) (*CategoryScreen, error) {
	remote := editing.NewRemote[Category](client, token, editing.Paths{
		List:   eps.Categories(),
		Create: eps.Categories(),
		Item:   eps.Category,
	}, []string{"categories"}, []string{"category"})
	local := editing.NewLocal(fallback.NewList(kvStore, categoriesKey, SeedCategories()))

	ctrl, err := editing.Mount[Category](ctx, token, remote, local)
	if err != nil {
		return nil, err
	}
	return &CategoryScreen{Controller: ctrl}, nil
}

func (s *CategoryScreen) CreateCategory(ctx context.Context, form CategoryForm) (Category, error) {
	if err := form.Validate(); err != nil {
		return Category{}, err
	}
	return s.Create(ctx, Category{
		Name:      form.Name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *CategoryScreen) UpdateCategory(ctx context.Context, id string, form CategoryForm) (Category, error) {
	if err := form.Validate(); err != nil {
		return Category{}, err
	}
	cat := Category{Name: form.Name}
	for _, existing := range s.Items() {
		if existing.ID == id {
			cat = existing
			cat.Name = form.Name
			break
		}
	}
	return s.Update(ctx, id, cat)
}

func (s *CategoryScreen) DeleteCategory(ctx context.Context, id string) error {
	return s.Delete(ctx, id)
}
