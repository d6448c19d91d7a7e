package repository

import (
	"context"

	"cafepos/internal/domain/model"
)

// カテゴリの保存・取得。削除は論理削除。
type CategoryRepository interface {
	// 名前順。onlyActiveなら有効なものだけ
	List(ctx context.Context, onlyActive bool) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (model.Category, error)
	// 削除されていないものから名前で探す
	FindByName(ctx context.Context, name string) (model.Category, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	SoftDelete(ctx context.Context, id string) error
}
