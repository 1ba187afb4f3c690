package service

import (
	"context"
	"strings"

	"papapizza/internal/dal"
	"papapizza/internal/models"
)

type MenuService interface {
	GetAllMenu(ctx context.Context) ([]models.MenuItem, error)
	GetMenuItemByName(ctx context.Context, name string) (models.MenuItem, error)
}

type menuService struct {
	menuRepo dal.MenuRepository
}

func NewMenuService(menuRepo dal.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) GetAllMenu(ctx context.Context) ([]models.MenuItem, error) {
	return s.menuRepo.GetAllMenu(ctx)
}

func (s *menuService) GetMenuItemByName(ctx context.Context, name string) (models.MenuItem, error) {
	if strings.TrimSpace(name) == "" {
		return models.MenuItem{}, models.ErrUnknownMenuItem
	}
	return s.menuRepo.GetMenuItemByName(ctx, name)
}
