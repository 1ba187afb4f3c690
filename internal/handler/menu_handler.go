package handler

import (
	"context"

	"papapizza/internal/console"
	"papapizza/internal/service"
)

type MenuHandler struct {
	menuService service.MenuService
	console     *console.Console
	storeName   string
}

func NewMenuHandler(menuService service.MenuService, c *console.Console, storeName string) *MenuHandler {
	return &MenuHandler{menuService: menuService, console: c, storeName: storeName}
}

// ShowMenu prints the catalog grouped by category, in catalog order.
func (h *MenuHandler) ShowMenu(ctx context.Context, args []string) error {
	items, err := h.menuService.GetAllMenu(ctx)
	if err != nil {
		return respondWithError(h.console, err)
	}

	h.console.Print(console.StylePlain, "%s's famous menu", h.storeName)

	category := ""
	for _, item := range items {
		if item.Category != category {
			category = item.Category
			h.console.Plain("")
			h.console.Heading("%s:", category)
		}
		h.console.Success("%s: $%s", item.Name, item.Price.StringFixed(2))
	}
	return nil
}
