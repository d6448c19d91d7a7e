package repository

import (
	"context"

	"cafepos/internal/domain/model"
)

// レジ画面向けの読み取り専用カタログ。キャッシュを挟める。
type CatalogReader interface {
	ListActiveCategories(ctx context.Context) ([]model.Category, error)
	// categoryIDが空なら全カテゴリ
	ListAvailableMenuItems(ctx context.Context, categoryID string) ([]model.MenuItem, error)
}

// カタログ更新後にキャッシュを捨てる
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context) error
}
