package dal

import (
	"context"
	"fmt"
	"strings"

	"papapizza/internal/models"
)

type MenuRepository interface {
	GetAllMenu(ctx context.Context) ([]models.MenuItem, error)
	GetMenuItemByName(ctx context.Context, name string) (models.MenuItem, error)
}

// menuRepository is the fixed catalog loaded at startup. It is never
// written after construction.
type menuRepository struct {
	items []models.MenuItem
}

func NewMenuRepository(items []models.MenuItem) (MenuRepository, error) {
	seen := make(map[string]struct{}, len(items))
	catalog := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item.Name)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateMenuItem, item.Name)
		}
		seen[key] = struct{}{}
		catalog = append(catalog, item)
	}
	return &menuRepository{items: catalog}, nil
}

func (r *menuRepository) GetAllMenu(ctx context.Context) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, len(r.items))
	copy(items, r.items)
	return items, nil
}

func (r *menuRepository) GetMenuItemByName(ctx context.Context, name string) (models.MenuItem, error) {
	for _, item := range r.items {
		if item.Matches(name) {
			return item, nil
		}
	}
	return models.MenuItem{}, fmt.Errorf("%w: %q", models.ErrUnknownMenuItem, strings.TrimSpace(name))
}
