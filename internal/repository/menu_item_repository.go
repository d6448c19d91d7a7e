package repository

import (
	"context"

	"cafepos/internal/domain/model"
)

// メニュー一覧の条件
type MenuItemListQuery struct {
	CategoryID    string
	OnlyAvailable bool
}

type MenuItemRepository interface {
	List(ctx context.Context, q MenuItemListQuery) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id string) (model.MenuItem, error)
	FindByName(ctx context.Context, name string) (model.MenuItem, error)

	Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error)
	Update(ctx context.Context, m model.MenuItem) error
	SoftDelete(ctx context.Context, id string) error
	// カテゴリ配下をまとめて論理削除。消した件数を返す。
	SoftDeleteByCategory(ctx context.Context, categoryID string) (int64, error)
}
