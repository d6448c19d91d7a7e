package repository

import (
	"context"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"
)

// キャッシュ無しのカタログ読み取り。
type CatalogReaderGorm struct {
	categories repo.CategoryRepository
	menuItems  repo.MenuItemRepository
}

func NewCatalogReaderGorm(categories repo.CategoryRepository, menuItems repo.MenuItemRepository) *CatalogReaderGorm {
	return &CatalogReaderGorm{categories: categories, menuItems: menuItems}
}

func (r *CatalogReaderGorm) ListActiveCategories(ctx context.Context) ([]model.Category, error) {
	return r.categories.List(ctx, true)
}

func (r *CatalogReaderGorm) ListAvailableMenuItems(ctx context.Context, categoryID string) ([]model.MenuItem, error) {
	return r.menuItems.List(ctx, repo.MenuItemListQuery{CategoryID: categoryID, OnlyAvailable: true})
}
